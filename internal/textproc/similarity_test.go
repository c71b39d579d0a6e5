package textproc_test

import (
	"math"
	"testing"

	"github.com/nlpds/nlpds-server/internal/textproc"
)

func TestJaccardSimilarity(t *testing.T) {
	cases := []struct {
		name string
		a, b []string
		want float64
	}{
		{"both empty", nil, nil, 1.0},
		{"one empty", []string{"a"}, nil, 0.0},
		{"identical", []string{"a", "b"}, []string{"b", "a"}, 1.0},
		{"disjoint", []string{"a"}, []string{"b"}, 0.0},
		{"half overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"duplicates collapse", []string{"a", "a", "b"}, []string{"a", "b"}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := textproc.JaccardSimilarity(tc.a, tc.b)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("JaccardSimilarity = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"kitten", "sitting", 3},
		{"gleich", "gleich", 0},
		{"maß", "mass", 2}, // rune-wise: ß vs s plus the extra s
	}
	for _, tc := range cases {
		if got := textproc.LevenshteinDistance(tc.a, tc.b); got != tc.want {
			t.Errorf("LevenshteinDistance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestLevenshteinSimilarity(t *testing.T) {
	if got := textproc.LevenshteinSimilarity("", ""); got != 1.0 {
		t.Fatalf("empty strings should be identical, got %v", got)
	}
	got := textproc.LevenshteinSimilarity("embeddng", "embedding")
	if got <= 0.8 {
		t.Fatalf("one dropped letter should stay above the fuzzy threshold, got %v", got)
	}
	if got := textproc.LevenshteinSimilarity("abc", "xyz"); got != 0.0 {
		t.Fatalf("completely different strings should score 0, got %v", got)
	}
}
