package progress

import (
	"math"

	"github.com/lemanjenny/GoalSpark2.0/internal/domain"
)

// equalToTolerance is the fraction of the target inside which an
// EQUAL_TO goal still scores above zero.
const equalToTolerance = 0.10

// Percentage converts a (current, target) pair into a completion
// percentage under the goal's comparison mode. The result is always a
// finite number in [0,100]; degenerate targets are special-cased rather
// than dividing by zero. Unknown comparison values fall back to
// greater-than semantics.
func Percentage(current, target float64, comparison domain.Comparison) float64 {
	switch comparison {
	case domain.ComparisonLessThan:
		return lessThanPercent(current, target)
	case domain.ComparisonEqualTo:
		return equalToPercent(current, target)
	default:
		return greaterThanPercent(current, target)
	}
}

func greaterThanPercent(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return clampPercent(current / target * 100)
}

// lessThanPercent scores lower-is-better goals: 100 at zero, falling to
// 0 as current approaches or exceeds the target.
func lessThanPercent(current, target float64) float64 {
	if target <= 0 {
		if current <= 0 {
			return 100
		}
		return 0
	}
	remaining := math.Max(target-current, 0)
	return clampPercent(remaining / target * 100)
}

func equalToPercent(current, target float64) float64 {
	if target == 0 {
		if current == 0 {
			return 100
		}
		return 0
	}
	distance := math.Abs(current - target)
	tolerance := math.Abs(target) * equalToTolerance
	if distance > tolerance {
		return 0
	}
	return 100 - distance/tolerance*100
}

func clampPercent(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 100 {
		return 100
	}
	return value
}
