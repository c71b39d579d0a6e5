package grading

import (
	"fmt"
	"math"

	"github.com/nlpds/nlpds-server/internal/textproc"
)

// DefaultTolerance is the relative tolerance for numeric matching (5%).
const DefaultTolerance = 0.05

// NumberMatch pairs an expected number with the user value that satisfied it.
type NumberMatch struct {
	Expected float64 `json:"expected"`
	Found    float64 `json:"found"`
}

// NumericResult is the outcome of the numeric side-channel used for
// calculation questions.
type NumericResult struct {
	Score          float64       `json:"score"`
	Feedback       string        `json:"feedback"`
	MatchedNumbers []NumberMatch `json:"matched_numbers"`
	MissingNumbers []float64     `json:"missing_numbers"`
}

// EvaluateNumerical extracts the numbers from both answers and scores the
// share of expected numbers the user reproduced within the relative
// tolerance. Callers grading calculation questions combine this with the
// free-text score by taking the maximum.
func EvaluateNumerical(userAnswer, expectedAnswer string, tolerance float64) NumericResult {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	userNumbers := textproc.ExtractNumbers(userAnswer)
	expectedNumbers := textproc.ExtractNumbers(expectedAnswer)

	if len(userNumbers) == 0 {
		return NumericResult{
			Feedback:       "No numeric values found in the answer.",
			MatchedNumbers: []NumberMatch{},
			MissingNumbers: expectedNumbers,
		}
	}

	matched := []NumberMatch{}
	missing := []float64{}
	for _, expected := range expectedNumbers {
		found := false
		for _, user := range userNumbers {
			if math.Abs(user-expected) <= math.Abs(expected*tolerance) {
				matched = append(matched, NumberMatch{Expected: expected, Found: user})
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, expected)
		}
	}

	score := 0.0
	if len(expectedNumbers) > 0 {
		score = float64(len(matched)) / float64(len(expectedNumbers))
	}
	return NumericResult{
		Score:          score,
		Feedback:       fmt.Sprintf("%d of %d numbers correct.", len(matched), len(expectedNumbers)),
		MatchedNumbers: matched,
		MissingNumbers: missing,
	}
}
