package grading_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/nlpds/nlpds-server/internal/grading"
)

var attentionQuestion = grading.Question{
	Topic: "Transformer/Attention",
	Kind:  grading.KindFreeText,
	Text:  "Explain how self-attention computes its weights.",
	GivenAnswer: "Self-Attention berechnet Gewichte über Softmax. " +
		"Die Query und Key Vektoren bestimmen die Attention Scores.",
}

func TestEvaluateDeterministic(t *testing.T) {
	answer := "Attention nutzt Softmax über Query und Key Vektoren um Gewichte zu berechnen."
	a := grading.Evaluate(answer, attentionQuestion)
	b := grading.Evaluate(answer, attentionQuestion)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical evaluations must return identical results")
	}
}

func TestEvaluateScoreBounds(t *testing.T) {
	answers := []string{
		"Völlig anderes Thema ohne jede Übereinstimmung mit der Referenz.",
		attentionQuestion.GivenAnswer,
		strings.Repeat("softmax attention query key ", 50),
	}
	for _, answer := range answers {
		res := grading.Evaluate(answer, attentionQuestion)
		if res.Score < 0 || res.Score > 1 {
			t.Errorf("score out of range for %q: %v", answer[:20], res.Score)
		}
		for _, sub := range []float64{res.Breakdown.Keywords, res.Breakdown.Jaccard, res.Breakdown.Math, res.Breakdown.Length} {
			if sub < 0 || sub > 1 {
				t.Errorf("sub-score out of range: %+v", res.Breakdown)
			}
		}
	}
}

func TestEvaluateSelfMatch(t *testing.T) {
	res := grading.Evaluate(attentionQuestion.GivenAnswer, attentionQuestion)
	if res.Score < 0.95 {
		t.Fatalf("reference answer against itself scored %v, want >= 0.95", res.Score)
	}
}

func TestEvaluateTooShort(t *testing.T) {
	res := grading.Evaluate("zu kurz", attentionQuestion)
	if res.Score != 0 {
		t.Fatalf("short answer must score 0, got %v", res.Score)
	}
	if res.Label != "insufficient" {
		t.Fatalf("short answer label = %q, want insufficient", res.Label)
	}
	if len(res.Suggestions) == 0 {
		t.Fatal("short answer should carry a suggestion")
	}
}

func TestEvaluateLengthGateCountsRunes(t *testing.T) {
	// 9 characters but 12 UTF-8 bytes; the gate must count characters.
	res := grading.Evaluate("Größe übt", attentionQuestion)
	if res.Score != 0 {
		t.Fatalf("9-character answer passed the 10-character gate, score %v", res.Score)
	}
	if res.Feedback != "The answer is too short or empty." {
		t.Fatalf("expected the too-short result, got feedback %q", res.Feedback)
	}

	// 10 characters, 13 bytes: exactly at the minimum, so it grades normally.
	long := grading.Evaluate("Größe übte", attentionQuestion)
	if long.Feedback == "The answer is too short or empty." {
		t.Fatal("10-character answer must pass the gate")
	}
}

func TestEvaluateEmptyAnswerAlwaysTooShort(t *testing.T) {
	for _, answer := range []string{"", "   "} {
		res := grading.Evaluate(answer, attentionQuestion, grading.WithMinAnswerLength(0))
		if res.Score != 0 || res.Feedback != "The answer is too short or empty." {
			t.Fatalf("empty answer %q must stay too short at minimum 0: score %v, feedback %q",
				answer, res.Score, res.Feedback)
		}
	}
}

func TestLengthScoreCountsRunes(t *testing.T) {
	q := grading.Question{
		Kind:        grading.KindFreeText,
		GivenAnswer: strings.Repeat("ä", 24), // 24 characters, 48 bytes
	}
	res := grading.Evaluate(strings.Repeat("a", 12), q, grading.WithWeights(0, 0, 0, 1))
	// 12/24 characters is the ideal band; 12/48 bytes would not be.
	if res.Breakdown.Length != 1.0 {
		t.Fatalf("length ratio must be computed over characters, got %v", res.Breakdown.Length)
	}
}

func TestEvaluateFuzzyKeywordMatch(t *testing.T) {
	q := grading.Question{
		Topic:       "Embeddings",
		Kind:        grading.KindFreeText,
		GivenAnswer: "Ein Embedding bildet Wörter auf dichte Vektoren ab.",
	}
	res := grading.Evaluate("Ein Embeddng bildet Wörter auf dichte Vektoren ab.", q)

	for _, kw := range res.MissingKeywords {
		if kw == "embedding" {
			t.Fatalf("typo within the fuzzy threshold should not count as missing: %v", res.MissingKeywords)
		}
	}
	if res.Breakdown.Keywords >= 1.0 {
		t.Fatalf("fuzzy matches earn partial credit only, got %v", res.Breakdown.Keywords)
	}
}

func TestEvaluateWithWeights(t *testing.T) {
	answer := "Attention nutzt Softmax über Query und Key Vektoren um die Gewichte zu berechnen."
	lengthOnly := grading.Evaluate(answer, attentionQuestion, grading.WithWeights(0, 0, 0, 1))
	if lengthOnly.Score != lengthOnly.Breakdown.Length {
		t.Fatalf("with only the length weight the total must equal the length sub-score: %v vs %v",
			lengthOnly.Score, lengthOnly.Breakdown.Length)
	}
}

func TestEvaluateWithMinAnswerLength(t *testing.T) {
	res := grading.Evaluate("kurz", attentionQuestion, grading.WithMinAnswerLength(2))
	if res.Feedback == "The answer is too short or empty." {
		t.Fatal("lowered minimum length should bypass the short-answer gate")
	}
}

func TestEvaluateMissingKeywordsReported(t *testing.T) {
	res := grading.Evaluate("Dieser Text behandelt ein anderes Thema ausführlich.", attentionQuestion)
	if len(res.MissingKeywords) == 0 {
		t.Fatal("an off-topic answer should report missing keywords")
	}
	if !strings.Contains(res.Feedback, "Missing important terms") {
		t.Fatalf("feedback should list missing terms: %q", res.Feedback)
	}
}
