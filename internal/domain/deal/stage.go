package deal

import "fmt"

type Stage string

const (
	StageSubmitted    Stage = "SUBMITTED"
	StageUnderReview  Stage = "UNDER_REVIEW"
	StageProcessing   Stage = "PROCESSING"
	StageQuoting      Stage = "QUOTING"
	StageQuoted       Stage = "QUOTED"
	StageAccepted     Stage = "ACCEPTED"
	StageUnderwriting Stage = "UNDERWRITING"
	StageApproved     Stage = "APPROVED"
	StageClosing      Stage = "CLOSING"
	StageClosed       Stage = "CLOSED"
	StageDeclined     Stage = "DECLINED"
	StageLost         Stage = "LOST"
)

// transitions is the fixed business policy: every non-terminal stage has one
// forward edge (listed first) and one reject edge. Terminal stages map to an
// empty list. Initialized once; nothing mutates it at runtime.
var transitions = map[Stage][]Stage{
	StageSubmitted:    {StageUnderReview, StageDeclined},
	StageUnderReview:  {StageProcessing, StageDeclined},
	StageProcessing:   {StageQuoting, StageLost},
	StageQuoting:      {StageQuoted, StageLost},
	StageQuoted:       {StageAccepted, StageLost},
	StageAccepted:     {StageUnderwriting, StageLost},
	StageUnderwriting: {StageApproved, StageLost},
	StageApproved:     {StageClosing, StageLost},
	StageClosing:      {StageClosed, StageLost},
	StageClosed:       {},
	StageDeclined:     {},
	StageLost:         {},
}

// progressStages is the happy-path sequence the borrower progress bar walks.
// DECLINED and LOST are rendered separately.
var progressStages = []Stage{
	StageSubmitted, StageUnderReview, StageProcessing, StageQuoting,
	StageQuoted, StageAccepted, StageUnderwriting, StageApproved,
	StageClosing, StageClosed,
}

var stageLabels = map[Stage]string{
	StageSubmitted:    "Submitted",
	StageUnderReview:  "Under Review",
	StageProcessing:   "Processing",
	StageQuoting:      "Quoting",
	StageQuoted:       "Quoted",
	StageAccepted:     "Accepted",
	StageUnderwriting: "Underwriting",
	StageApproved:     "Approved",
	StageClosing:      "Closing",
	StageClosed:       "Closed",
	StageDeclined:     "Declined",
	StageLost:         "Lost",
}

// AllowedTransitions returns the ordered legal next stages for s, forward
// edge first. Empty for terminal stages and unknown input.
func AllowedTransitions(s Stage) []Stage {
	next := transitions[s]
	out := make([]Stage, len(next))
	copy(out, next)
	return out
}

func CanTransition(from, to Stage) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func IsTerminal(s Stage) bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func IsTerminalNegative(s Stage) bool {
	return s == StageDeclined || s == StageLost
}

// ProgressPercent maps a stage to percentage-complete for status display.
// Terminal negative stages report 100; callers distinguish them via
// IsTerminalNegative.
func ProgressPercent(s Stage) float64 {
	if IsTerminalNegative(s) {
		return 100
	}
	for i, ps := range progressStages {
		if ps == s {
			return float64(i+1) / float64(len(progressStages)) * 100
		}
	}
	return 0
}

func (s Stage) Label() string {
	if l, ok := stageLabels[s]; ok {
		return l
	}
	return string(s)
}

// ParseStage validates external input against the known stage set.
func ParseStage(raw string) (Stage, error) {
	s := Stage(raw)
	if _, ok := transitions[s]; !ok {
		return "", fmt.Errorf("%w: unknown stage %q", ErrValidation, raw)
	}
	return s, nil
}
