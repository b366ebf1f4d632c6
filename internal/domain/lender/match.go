package lender

import "slices"

// Criteria are the optional match signals for lender search. Zero values mean
// "no criterion" and contribute nothing to the score.
type Criteria struct {
	State        string
	Amount       float64
	PropertyType string
}

// MatchScore is an additive integer score across independent signals:
// state +2 (literal) or +1 (nationwide coverage only), amount within the
// lender's bounds +2 (a missing bound is unbounded), property type +2.
func (l *Lender) MatchScore(c Criteria) int {
	score := 0

	if c.State != "" {
		switch {
		case slices.Contains(l.CoverageStates, c.State):
			score += 2
		case slices.Contains(l.CoverageStates, Nationwide):
			score++
		}
	}

	if c.Amount > 0 {
		minOK := l.MinLoanAmount == nil || *l.MinLoanAmount <= c.Amount
		maxOK := l.MaxLoanAmount == nil || *l.MaxLoanAmount >= c.Amount
		if minOK && maxOK {
			score += 2
		}
	}

	if c.PropertyType != "" && slices.Contains(l.PropertyTypes, c.PropertyType) {
		score += 2
	}

	return score
}
