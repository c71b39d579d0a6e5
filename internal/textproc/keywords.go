package textproc

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ExtractKeywords returns up to max keywords from text, ranked by frequency
// of the stemmed, stopword-filtered tokens. Ties keep first-occurrence order.
func ExtractKeywords(text string, max int) []string {
	tokens := ProcessText(text, true)
	if len(tokens) == 0 || max <= 0 {
		return nil
	}

	freq := make(map[string]int, len(tokens))
	order := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if freq[t] == 0 {
			order = append(order, t)
		}
		freq[t]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})

	if len(order) > max {
		order = order[:max]
	}
	return order
}

var (
	latexCommand = regexp.MustCompile(`\\[a-zA-Z]+`)
	inlineDollar = regexp.MustCompile(`\$[^$]+\$`)
	inlineLatex  = regexp.MustCompile(`\\\([^)]+\\\)`)

	// NLP/ML jargon counted as mathematical content, matched as whole words.
	jargonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(softmax|attention|transformer|bert|gpt|lstm|rnn|cnn)\b`),
		regexp.MustCompile(`(?i)\b(embedding|token|vector|matrix|tensor)\b`),
		regexp.MustCompile(`(?i)\b(gradient|backprop|forward|loss|optimizer)\b`),
		regexp.MustCompile(`(?i)\b(accuracy|precision|recall|f1|auc|perplexity)\b`),
	}
)

// ExtractMathTerms collects LaTeX commands, whitelisted NLP/ML jargon words,
// $...$ spans and \(...\) spans from text. Results are lowercased and
// deduplicated, keeping first-seen order.
func ExtractMathTerms(text string) []string {
	var raw []string
	raw = append(raw, latexCommand.FindAllString(text, -1)...)
	for _, p := range jargonPatterns {
		raw = append(raw, p.FindAllString(text, -1)...)
	}
	raw = append(raw, inlineDollar.FindAllString(text, -1)...)
	raw = append(raw, inlineLatex.FindAllString(text, -1)...)

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, term := range raw {
		term = strings.ToLower(term)
		if _, ok := seen[term]; ok {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}

var numberPattern = regexp.MustCompile(`[-+]?(?:\d+\.?\d*|\.\d+)(?:[eE][-+]?\d+)?`)

// ExtractNumbers pulls all numeric literals (including scientific notation)
// out of text, in order of appearance.
func ExtractNumbers(text string) []float64 {
	matches := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
