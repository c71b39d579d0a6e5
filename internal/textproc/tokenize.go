// Package textproc holds the text-processing primitives the answer grader
// is built on: tokenization, stopword filtering, a rough German stemmer,
// keyword/math-term extraction and string similarity measures. Everything
// here is a pure function; grading behavior depends on the exact constants
// below, so changing a suffix list or stopword set changes scores.
package textproc

import (
	"regexp"
	"strings"
)

// StopwordsDE is a small German stopword set used for mixed-language answers.
var StopwordsDE = newSet(
	"der", "die", "das", "und", "oder", "aber", "ist", "sind", "war", "waren",
	"ein", "eine", "den", "dem", "des", "in", "von", "zu", "mit", "auf",
	"für", "als", "bei", "nach", "über", "unter", "durch", "vor", "zwischen",
	"ohne", "gegen", "um", "an", "aus", "nicht", "nur", "auch", "noch",
	"so", "sehr", "wenn", "wie", "was", "wo", "wer", "wann", "warum",
	"kann", "wird", "werden", "hat", "haben", "sein", "seine", "ihrer",
)

// StopwordsEN is the English counterpart of StopwordsDE.
var StopwordsEN = newSet(
	"the", "and", "or", "but", "is", "are", "was", "were", "a", "an",
	"in", "of", "to", "with", "on", "for", "as", "at", "by", "from",
	"up", "about", "into", "through", "during", "before", "after",
	"above", "below", "between", "among", "since", "without", "under",
	"not", "only", "also", "still", "if", "how", "what", "where",
	"when", "why", "who", "which", "can", "will", "would", "has", "have",
	"had", "his", "her", "their", "this", "that", "these", "those",
)

// combinedStopwords unions both languages; built once at init.
var combinedStopwords = union(StopwordsDE, StopwordsEN)

// nonToken matches every character that is not a word character, whitespace,
// a German umlaut/ß, or one of the whitelisted math and set-theory symbols.
var nonToken = regexp.MustCompile(`[^\w\säöüß\\^{}()\[\]=<>≤≥±∞∑∏∈∉⊆⊇∪∩]`)

// Tokenize lowercases text, replaces everything outside the token alphabet
// with spaces and splits on whitespace runs. Empty input yields a nil slice.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	cleaned := nonToken.ReplaceAllString(strings.ToLower(text), " ")
	return strings.Fields(cleaned)
}

// RemoveStopwords drops tokens contained in stopwords, preserving order.
func RemoveStopwords(tokens []string, stopwords map[string]struct{}) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := stopwords[t]; !ok {
			out = append(out, t)
		}
	}
	return out
}

// stemSuffixes is checked in order; only the first match is stripped.
var stemSuffixes = []string{"ung", "lich", "keit", "heit", "isch", "end", "est", "er", "en", "em", "e", "s"}

// Stem strips one common German suffix from word. Words of three runes or
// fewer pass through, and a suffix is only removed when the word is long
// enough that a meaningful stem remains.
func Stem(word string) string {
	r := []rune(word)
	if len(r) <= 3 {
		return word
	}
	for _, suffix := range stemSuffixes {
		if strings.HasSuffix(word, suffix) && len(r) > len([]rune(suffix))+2 {
			return string(r[:len(r)-len([]rune(suffix))])
		}
	}
	return word
}

// ProcessText runs the full pipeline: tokenize, drop combined DE+EN
// stopwords and optionally stem each token.
func ProcessText(text string, stem bool) []string {
	tokens := RemoveStopwords(Tokenize(text), combinedStopwords)
	if !stem {
		return tokens
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = Stem(t)
	}
	return out
}

func newSet(words ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}

func union(sets ...map[string]struct{}) map[string]struct{} {
	m := map[string]struct{}{}
	for _, s := range sets {
		for k := range s {
			m[k] = struct{}{}
		}
	}
	return m
}
