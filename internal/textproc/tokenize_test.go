package textproc_test

import (
	"reflect"
	"testing"

	"github.com/nlpds/nlpds-server/internal/textproc"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"punctuation stripped", "Hello, world! (Test)", []string{"hello", "world", "(test)"}},
		{"umlauts kept", "Wörter über Maße", []string{"wörter", "über", "maße"}},
		{"math symbols kept", "x^2 = y ≤ z", []string{"x^2", "=", "y", "≤", "z"}},
		{"lowercasing", "BERT GPT", []string{"bert", "gpt"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := textproc.Tokenize(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestRemoveStopwords(t *testing.T) {
	tokens := []string{"die", "attention", "is", "wichtig"}
	got := textproc.RemoveStopwords(tokens, textproc.StopwordsDE)
	want := []string{"attention", "is", "wichtig"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("RemoveStopwords = %v, want %v", got, want)
	}
}

func TestStem(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"bedeutung", "bedeut"},
		{"gewichte", "gewicht"},
		{"tokens", "token"},
		{"häuser", "häus"},
		{"modelle", "modell"},
		{"rot", "rot"},         // too short to stem
		{"jung", "jung"},       // stripping would leave no stem
		{"wichtig", "wichtig"}, // no known suffix
	}
	for _, tc := range cases {
		if got := textproc.Stem(tc.in); got != tc.want {
			t.Errorf("Stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestProcessText(t *testing.T) {
	got := textproc.ProcessText("Die Gewichte der Attention sind wichtig.", true)
	want := []string{"gewicht", "attention", "wichtig"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ProcessText = %v, want %v", got, want)
	}

	unstemmed := textproc.ProcessText("Die Gewichte", false)
	if !reflect.DeepEqual(unstemmed, []string{"gewichte"}) {
		t.Fatalf("ProcessText without stemming = %v", unstemmed)
	}
}
