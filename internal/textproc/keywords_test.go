package textproc_test

import (
	"reflect"
	"testing"

	"github.com/nlpds/nlpds-server/internal/textproc"
)

func TestExtractKeywordsFrequencyOrder(t *testing.T) {
	text := "Attention berechnet Gewichte. Attention nutzt Softmax."
	got := textproc.ExtractKeywords(text, 10)
	if len(got) == 0 || got[0] != "attention" {
		t.Fatalf("expected most frequent keyword first, got %v", got)
	}
}

func TestExtractKeywordsCap(t *testing.T) {
	text := "alpha beta gamma delta epsilon zeta"
	got := textproc.ExtractKeywords(text, 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %v", got)
	}
	if got := textproc.ExtractKeywords(text, 0); got != nil {
		t.Fatalf("max 0 should yield nil, got %v", got)
	}
}

func TestExtractMathTerms(t *testing.T) {
	text := `Die Softmax über \frac{QK^T}{\sqrt{d_k}} nutzt das Embedding $x_i$`
	got := textproc.ExtractMathTerms(text)

	for _, want := range []string{`\frac`, `\sqrt`, "softmax", "embedding", "$x_i$"} {
		found := false
		for _, term := range got {
			if term == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected %q in math terms %v", want, got)
		}
	}
}

func TestExtractMathTermsDedup(t *testing.T) {
	got := textproc.ExtractMathTerms("Softmax softmax SOFTMAX")
	if len(got) != 1 || got[0] != "softmax" {
		t.Fatalf("expected lowercased dedupe, got %v", got)
	}
}

func TestExtractNumbers(t *testing.T) {
	got := textproc.ExtractNumbers("42.5 und -3 sowie 1.5e3 Ergebnisse")
	want := []float64{42.5, -3, 1500}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractNumbers = %v, want %v", got, want)
	}
	if got := textproc.ExtractNumbers("keine Zahlen"); len(got) != 0 {
		t.Fatalf("expected no numbers, got %v", got)
	}
}
