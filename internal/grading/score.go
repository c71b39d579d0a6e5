package grading

import "fmt"

// NormalizeScore clamps v into [0,1].
func NormalizeScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatScore renders a [0,1] score as a rounded percentage, e.g. "85%".
func FormatScore(score float64) string {
	return fmt.Sprintf("%d%%", int(score*100+0.5))
}

// ScoreColor maps a composite score onto the presentation color classes the
// frontend expects. The band boundaries are part of the grading contract.
func ScoreColor(score float64) string {
	switch {
	case score >= 0.8:
		return "text-green-600"
	case score >= 0.6:
		return "text-yellow-600"
	case score >= 0.4:
		return "text-orange-600"
	default:
		return "text-red-600"
	}
}

// ScoreLabel maps a composite score onto its verbal grade.
func ScoreLabel(score float64) string {
	switch {
	case score >= 0.9:
		return "excellent"
	case score >= 0.8:
		return "very good"
	case score >= 0.7:
		return "good"
	case score >= 0.6:
		return "satisfactory"
	case score >= 0.5:
		return "sufficient"
	case score >= 0.3:
		return "poor"
	default:
		return "insufficient"
	}
}
