// Package grading implements the heuristic answer-evaluation engine: a
// deterministic blend of keyword overlap, token-set Jaccard similarity,
// math-term overlap and length plausibility, graded against a question's
// reference answer. Choice questions short-circuit to exact set matching.
package grading

import (
	"strings"
	"unicode/utf8"

	"github.com/nlpds/nlpds-server/internal/textproc"
)

// Default tuning constants. Heuristic values carried over unchanged from the
// original grading behavior; override per call via Options.
const (
	DefaultKeywordWeight   = 0.4
	DefaultJaccardWeight   = 0.3
	DefaultMathWeight      = 0.2
	DefaultLengthWeight    = 0.1
	DefaultMinAnswerLength = 10

	answerKeywordCap = 12 // keywords taken from the reference answer
	userKeywordCap   = 15 // keywords taken from the user answer

	fuzzyThreshold = 0.8 // Levenshtein similarity above which keywords match
	fuzzyCredit    = 0.8 // partial credit for a fuzzy keyword match
)

// Breakdown holds the four sub-scores, each in [0,1].
type Breakdown struct {
	Keywords float64 `json:"keywords"`
	Jaccard  float64 `json:"jaccard"`
	Math     float64 `json:"math"`
	Length   float64 `json:"length"`
}

// Diagnostics exposes the raw token and keyword sets behind a result. For
// debugging output only; nothing downstream may score against it.
type Diagnostics struct {
	UserTokens      []string `json:"user_tokens,omitempty"`
	AnswerTokens    []string `json:"answer_tokens,omitempty"`
	UserKeywords    []string `json:"user_keywords,omitempty"`
	AnswerKeywords  []string `json:"answer_keywords,omitempty"`
	UserMathTerms   []string `json:"user_math_terms,omitempty"`
	AnswerMathTerms []string `json:"answer_math_terms,omitempty"`
	Selection       []string `json:"selection,omitempty"`
	Correct         []string `json:"correct,omitempty"`
}

// Result is the outcome of evaluating a single answer. It has no identity
// and no lifecycle; callers render or persist it and move on.
type Result struct {
	Score           float64     `json:"score"`
	Breakdown       Breakdown   `json:"breakdown"`
	MatchedKeywords []string    `json:"matched_keywords"`
	MissingKeywords []string    `json:"missing_keywords"`
	Suggestions     []string    `json:"suggestions"`
	Color           string      `json:"color"`
	Label           string      `json:"label"`
	Feedback        string      `json:"feedback"`
	Diagnostics     Diagnostics `json:"diagnostics"`
}

// Option configures a single evaluation.
type Option func(*config)

type config struct {
	keywordWeight   float64
	jaccardWeight   float64
	mathWeight      float64
	lengthWeight    float64
	minAnswerLength int
	forceChoice     bool
}

func defaultConfig() config {
	return config{
		keywordWeight:   DefaultKeywordWeight,
		jaccardWeight:   DefaultJaccardWeight,
		mathWeight:      DefaultMathWeight,
		lengthWeight:    DefaultLengthWeight,
		minAnswerLength: DefaultMinAnswerLength,
	}
}

// WithWeights overrides the four component weights.
func WithWeights(keyword, jaccard, math, length float64) Option {
	return func(c *config) {
		c.keywordWeight = keyword
		c.jaccardWeight = jaccard
		c.mathWeight = math
		c.lengthWeight = length
	}
}

// WithMinAnswerLength overrides the minimum character count for free text.
func WithMinAnswerLength(n int) Option {
	return func(c *config) { c.minAnswerLength = n }
}

// WithMultipleChoice forces the choice-grading path regardless of kind.
func WithMultipleChoice() Option {
	return func(c *config) { c.forceChoice = true }
}

// Evaluate grades userAnswer against q's reference answer. It is a pure
// function of its inputs: identical calls return identical results.
func Evaluate(userAnswer string, q Question, opts ...Option) Result {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.forceChoice || q.Kind.IsChoice() || len(q.Options) > 0 {
		return evaluateChoice(userAnswer, q)
	}

	// Length is counted in characters, not bytes; umlauts must not widen an
	// answer past the gate. An empty answer is always too short.
	trimmed := strings.TrimSpace(userAnswer)
	if trimmed == "" || utf8.RuneCountInString(trimmed) < cfg.minAnswerLength {
		return tooShortResult()
	}

	userTokens := textproc.ProcessText(userAnswer, true)
	answerTokens := textproc.ProcessText(q.GivenAnswer, true)

	answerKeywords := textproc.ExtractKeywords(q.GivenAnswer, answerKeywordCap)
	userKeywords := textproc.ExtractKeywords(userAnswer, userKeywordCap)

	answerMathTerms := textproc.ExtractMathTerms(q.GivenAnswer)
	userMathTerms := textproc.ExtractMathTerms(userAnswer)
	for _, block := range q.MathBlocks {
		answerMathTerms = append(answerMathTerms, textproc.ExtractMathTerms(block)...)
	}

	breakdown := Breakdown{
		Keywords: keywordScore(userKeywords, answerKeywords),
		Jaccard:  textproc.JaccardSimilarity(userTokens, answerTokens),
		Math:     mathScore(userMathTerms, answerMathTerms),
		Length:   lengthScore(userAnswer, q.GivenAnswer),
	}

	total := NormalizeScore(
		breakdown.Keywords*cfg.keywordWeight +
			breakdown.Jaccard*cfg.jaccardWeight +
			breakdown.Math*cfg.mathWeight +
			breakdown.Length*cfg.lengthWeight)

	matched, missing := splitKeywords(userKeywords, answerKeywords)

	return Result{
		Score:           total,
		Breakdown:       breakdown,
		MatchedKeywords: matched,
		MissingKeywords: missing,
		Suggestions:     buildSuggestions(breakdown, missing, q),
		Color:           ScoreColor(total),
		Label:           ScoreLabel(total),
		Feedback:        buildFeedback(total, breakdown, matched, missing),
		Diagnostics: Diagnostics{
			UserTokens:      userTokens,
			AnswerTokens:    answerTokens,
			UserKeywords:    userKeywords,
			AnswerKeywords:  answerKeywords,
			UserMathTerms:   userMathTerms,
			AnswerMathTerms: answerMathTerms,
		},
	}
}

func tooShortResult() Result {
	return Result{
		Score:           0,
		Breakdown:       Breakdown{},
		MatchedKeywords: []string{},
		MissingKeywords: []string{},
		Suggestions:     []string{"Answer too short. Please respond in more detail."},
		Color:           ScoreColor(0),
		Label:           ScoreLabel(0),
		Feedback:        "The answer is too short or empty.",
	}
}

// keywordScore awards one point per reference keyword found verbatim in the
// user's keyword set and fuzzyCredit for near misses, normalized by the
// reference keyword count. No reference keywords means nothing to penalize.
func keywordScore(userKeywords, answerKeywords []string) float64 {
	if len(answerKeywords) == 0 {
		return 1.0
	}
	userSet := make(map[string]struct{}, len(userKeywords))
	for _, k := range userKeywords {
		userSet[k] = struct{}{}
	}

	points := 0.0
	for _, keyword := range answerKeywords {
		if _, ok := userSet[keyword]; ok {
			points += 1.0
			continue
		}
		for _, uk := range userKeywords {
			if textproc.LevenshteinSimilarity(uk, keyword) > fuzzyThreshold {
				points += fuzzyCredit
				break
			}
		}
	}
	return NormalizeScore(points / float64(len(answerKeywords)))
}

// mathScore is the share of expected math terms the user mentioned.
func mathScore(userMathTerms, answerMathTerms []string) float64 {
	if len(answerMathTerms) == 0 {
		return 1.0
	}
	userSet := make(map[string]struct{}, len(userMathTerms))
	for _, t := range userMathTerms {
		userSet[strings.ToLower(t)] = struct{}{}
	}
	answerSet := make(map[string]struct{}, len(answerMathTerms))
	for _, t := range answerMathTerms {
		answerSet[strings.ToLower(t)] = struct{}{}
	}
	hits := 0
	for t := range answerSet {
		if _, ok := userSet[t]; ok {
			hits++
		}
	}
	return NormalizeScore(float64(hits) / float64(len(answerSet)))
}

// lengthScore bands the user/reference length ratio: 50-150% of the
// reference is ideal, with decreasing credit further out. Lengths are
// character counts so non-ASCII text sits in the same band as ASCII.
func lengthScore(userAnswer, referenceAnswer string) float64 {
	refLen := utf8.RuneCountInString(strings.TrimSpace(referenceAnswer))
	if refLen == 0 {
		return 1.0
	}
	ratio := float64(utf8.RuneCountInString(strings.TrimSpace(userAnswer))) / float64(refLen)
	switch {
	case ratio >= 0.5 && ratio <= 1.5:
		return 1.0
	case ratio >= 0.3 && ratio <= 2.0:
		return 0.8
	case ratio >= 0.2 && ratio <= 3.0:
		return 0.6
	default:
		return 0.3
	}
}

// splitKeywords partitions the reference keywords into matched and missing,
// using the same verbatim-or-fuzzy rule as keywordScore.
func splitKeywords(userKeywords, answerKeywords []string) (matched, missing []string) {
	matched = []string{}
	missing = []string{}
	userSet := make(map[string]struct{}, len(userKeywords))
	for _, k := range userKeywords {
		userSet[k] = struct{}{}
	}
	for _, keyword := range answerKeywords {
		if _, ok := userSet[keyword]; ok {
			matched = append(matched, keyword)
			continue
		}
		found := false
		for _, uk := range userKeywords {
			if textproc.LevenshteinSimilarity(uk, keyword) > fuzzyThreshold {
				found = true
				break
			}
		}
		if found {
			matched = append(matched, keyword)
		} else {
			missing = append(missing, keyword)
		}
	}
	return matched, missing
}
