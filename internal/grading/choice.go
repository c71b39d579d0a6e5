package grading

import (
	"fmt"
	"regexp"
	"strings"
)

// Legacy question data sometimes encodes the answer key inside the reference
// answer text ("Correct: B" or "Correct: B, C") instead of a structured
// field. The structured CorrectOptions field always wins when present.
var correctPattern = regexp.MustCompile(`(?i)Correct\s*:\s*([A-Z](?:\s*,\s*[A-Z])*)`)

var (
	selectionSplit = regexp.MustCompile(`[\s,;]+`)
	commaSplit     = regexp.MustCompile(`\s*,\s*`)
)

// evaluateChoice grades single- and multi-select choice answers. The score
// is binary: multi-select requires exact set equality, single-select exactly
// one selected member of the correct set.
func evaluateChoice(userAnswer string, q Question) Result {
	correct := correctOptionSet(q)
	selection := parseSelection(userAnswer)

	var isCorrect bool
	if q.Kind == KindMultiChoice {
		isCorrect = setsEqual(correct, selection)
	} else {
		isCorrect = len(selection) == 1 && contains(correct, selection[0])
	}

	res := Result{
		Breakdown:       Breakdown{},
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Suggestions:     []string{},
		Diagnostics:     Diagnostics{Selection: selection, Correct: correct},
	}
	if isCorrect {
		res.Score = 1
		res.Color = "text-green-600"
		res.Label = "correct"
		res.Feedback = "Correct selection."
	} else {
		res.Score = 0
		res.Color = "text-red-600"
		res.Label = "incorrect"
		res.Feedback = fmt.Sprintf("Correct: %s", strings.Join(correct, ", "))
		res.Suggestions = []string{"Wrong selection. Try again."}
	}
	return res
}

func correctOptionSet(q Question) []string {
	if len(q.CorrectOptions) > 0 {
		out := make([]string, len(q.CorrectOptions))
		for i, v := range q.CorrectOptions {
			out[i] = strings.ToUpper(v)
		}
		return out
	}
	if m := correctPattern.FindStringSubmatch(q.GivenAnswer); m != nil {
		parts := commaSplit.Split(m[1], -1)
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.ToUpper(p))
		}
		return out
	}
	return nil
}

func parseSelection(userAnswer string) []string {
	parts := selectionSplit.Split(strings.TrimSpace(userAnswer), -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, strings.ToUpper(p))
		}
	}
	return out
}

func setsEqual(a, b []string) bool {
	sa := toSet(a)
	sb := toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for k := range sa {
		if _, ok := sb[k]; !ok {
			return false
		}
	}
	return true
}

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func toSet(arr []string) map[string]struct{} {
	m := make(map[string]struct{}, len(arr))
	for _, s := range arr {
		m[s] = struct{}{}
	}
	return m
}
