package progress

import "github.com/lemanjenny/GoalSpark2.0/internal/domain"

// Transition records a caller-asserted status change. Status is human
// judgment: it is never derived from the computed percentage, and no
// check ties the two together.
type Transition struct {
	From    domain.GoalStatus
	To      domain.GoalStatus
	Changed bool
}

func ClassifyTransition(previous, submitted domain.GoalStatus) Transition {
	return Transition{
		From:    previous,
		To:      submitted,
		Changed: previous != submitted,
	}
}

func ValidStatus(status domain.GoalStatus) bool {
	switch status {
	case domain.StatusOnTrack, domain.StatusAtRisk, domain.StatusOffTrack:
		return true
	default:
		return false
	}
}

func ValidComparison(comparison domain.Comparison) bool {
	switch comparison {
	case domain.ComparisonGreaterThan, domain.ComparisonLessThan, domain.ComparisonEqualTo:
		return true
	default:
		return false
	}
}
