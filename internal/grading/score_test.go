package grading_test

import (
	"testing"

	"github.com/nlpds/nlpds-server/internal/grading"
)

func TestNormalizeScore(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, tc := range cases {
		if got := grading.NormalizeScore(tc.in); got != tc.want {
			t.Errorf("NormalizeScore(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestFormatScore(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0%"},
		{0.856, "86%"},
		{0.854, "85%"},
		{1, "100%"},
	}
	for _, tc := range cases {
		if got := grading.FormatScore(tc.in); got != tc.want {
			t.Errorf("FormatScore(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScoreColorBands(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0.95, "text-green-600"},
		{0.8, "text-green-600"},
		{0.79, "text-yellow-600"},
		{0.6, "text-yellow-600"},
		{0.59, "text-orange-600"},
		{0.4, "text-orange-600"},
		{0.39, "text-red-600"},
		{0, "text-red-600"},
	}
	for _, tc := range cases {
		if got := grading.ScoreColor(tc.in); got != tc.want {
			t.Errorf("ScoreColor(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestScoreLabelBands(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{1, "excellent"},
		{0.9, "excellent"},
		{0.85, "very good"},
		{0.75, "good"},
		{0.65, "satisfactory"},
		{0.55, "sufficient"},
		{0.35, "poor"},
		{0.29, "insufficient"},
		{0, "insufficient"},
	}
	for _, tc := range cases {
		if got := grading.ScoreLabel(tc.in); got != tc.want {
			t.Errorf("ScoreLabel(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
