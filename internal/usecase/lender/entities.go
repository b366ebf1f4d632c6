package lender

import (
	domain "loanflow-backend/internal/domain/lender"
)

// SearchInput carries the optional match criteria. Zero values mean the
// signal is absent and contributes nothing to scoring.
type SearchInput struct {
	State        string  `query:"state"`
	LoanAmount   float64 `query:"loan_amount"`
	PropertyType string  `query:"property_type"`
	Name         string  `query:"name"`
	Limit        int     `query:"limit"`
}

// Match is one scored row in a search result.
type Match struct {
	Lender domain.Lender `json:"lender"`
	Score  int           `json:"score"`
}

// SearchResult pairs the scored page with the unfiltered active-lender count
// so callers can tell "few matches" from "few lenders".
type SearchResult struct {
	Matches     []Match `json:"matches"`
	TotalActive int64   `json:"total_active"`
}

type AssignInput struct {
	DealID   string `json:"-"`
	LenderID string `json:"lender_id"`
}

// ImportReport summarizes a CSV import run.
type ImportReport struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
