package grading_test

import (
	"strings"
	"testing"

	"github.com/nlpds/nlpds-server/internal/grading"
)

func TestEvaluateSingleChoice(t *testing.T) {
	q := grading.Question{
		Kind:           grading.KindSingleChoice,
		Options:        []string{"A) RNN", "B) Transformer", "C) CNN"},
		CorrectOptions: []string{"B"},
	}

	cases := []struct {
		answer string
		want   float64
	}{
		{"B", 1},
		{"b", 1},
		{"A", 0},
		{"B, C", 0}, // one selection only
		{"", 0},
	}
	for _, tc := range cases {
		res := grading.Evaluate(tc.answer, q)
		if res.Score != tc.want {
			t.Errorf("answer %q scored %v, want %v", tc.answer, res.Score, tc.want)
		}
	}
}

func TestEvaluateMultiChoiceExactSet(t *testing.T) {
	q := grading.Question{
		Kind:           grading.KindMultiChoice,
		Options:        []string{"A", "B", "C", "D"},
		CorrectOptions: []string{"A", "C"},
	}

	cases := []struct {
		answer string
		want   float64
	}{
		{"A, C", 1},
		{"C A", 1},
		{"a;c", 1},
		{"A", 0},       // subset
		{"A, B, C", 0}, // superset
		{"B, D", 0},
	}
	for _, tc := range cases {
		res := grading.Evaluate(tc.answer, q)
		if res.Score != tc.want {
			t.Errorf("answer %q scored %v, want %v", tc.answer, res.Score, tc.want)
		}
	}
}

func TestChoiceFallbackAnswerKey(t *testing.T) {
	q := grading.Question{
		Kind:        grading.KindSingleChoice,
		Options:     []string{"A", "B", "C"},
		GivenAnswer: "Correct: B. The transformer architecture drops recurrence entirely.",
	}
	if res := grading.Evaluate("B", q); res.Score != 1 {
		t.Fatalf("answer key parsed from the reference text should accept B, got %v", res.Score)
	}
	res := grading.Evaluate("A", q)
	if res.Score != 0 {
		t.Fatalf("wrong option accepted: %v", res.Score)
	}
	if !strings.Contains(res.Feedback, "Correct: B") {
		t.Fatalf("feedback should reveal the key, got %q", res.Feedback)
	}
}

func TestChoiceIgnoresTextHeuristics(t *testing.T) {
	q := grading.Question{
		Kind:           grading.KindMultiChoice,
		Options:        []string{"A", "B"},
		CorrectOptions: []string{"A", "B"},
	}
	res := grading.Evaluate("A B", q)
	if res.Label != "correct" {
		t.Fatalf("label = %q, want correct", res.Label)
	}
	if res.Breakdown != (grading.Breakdown{}) {
		t.Fatalf("choice grading must not produce text sub-scores: %+v", res.Breakdown)
	}
}
