package grading

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/nlpds/nlpds-server/internal/textproc"
)

const hintKeywordCap = 6

// topicHints maps topic substrings to canned level-1 hints. First match in
// declaration order wins.
var topicHints = []struct {
	key  string
	hint string
}{
	{"Transformer/Attention", "Think of the three matrices Q, K, V and the softmax mechanism."},
	{"Embeddings", "Consider word vectors, dimensionality and similarity measures."},
	{"Sentiment Analysis", "Consider: classification vs. regression, aspects vs. documents."},
	{"BERT", "Masked language modeling and bidirectional context are central."},
	{"Bias", "Template-based tests and statistical significance matter here."},
	{"Evaluation", "Metrics, baselines and robustness should be mentioned."},
}

// GenerateHint produces an escalating hint for q: level 1 names the topic
// area, level 2 sketches the answer's structure, level 3 reveals vocabulary.
func GenerateHint(q Question, level int) string {
	switch level {
	case 1:
		return topicHint(q)
	case 2:
		return structureHint(q)
	case 3:
		return keywordHint(q)
	default:
		return "No further hints available."
	}
}

func topicHint(q Question) string {
	for _, th := range topicHints {
		if strings.Contains(q.Topic, th.key) {
			return fmt.Sprintf("💡 **Topic hint:** %s", th.hint)
		}
	}
	fallback := q.Notes
	if fallback == "" {
		fallback = "Think about the fundamental concepts of this area."
	}
	return fmt.Sprintf("💡 **Topic hint:** This question is about %q. %s", q.Topic, fallback)
}

var (
	numberedItem = regexp.MustCompile(`(?m)^\d+\.\s+[^.]+`)
	bulletItem   = regexp.MustCompile(`(?m)^[-•*]\s+[^.]+`)
	boldTerm     = regexp.MustCompile(`\*\*[^*]+\*\*:`)
	itemMarkup   = regexp.MustCompile(`^\d+\.\s*|^[-•*]\s*|\*\*`)
	sentenceEnd  = regexp.MustCompile(`[.!?]\s+`)
)

// structureHint tries to reveal the shape of the reference answer: an
// enumerated list of steps if one exists, otherwise its opening sentence.
func structureHint(q Question) string {
	answer := q.GivenAnswer

	items := numberedItem.FindAllString(answer, -1)
	if len(items) < 2 {
		items = bulletItem.FindAllString(answer, -1)
	}
	if len(items) < 2 {
		items = boldTerm.FindAllString(answer, -1)
	}
	if len(items) > 1 {
		if len(items) > 3 {
			items = items[:3]
		}
		steps := make([]string, len(items))
		for i, item := range items {
			cleaned := itemMarkup.ReplaceAllString(item, "")
			steps[i] = strings.SplitN(cleaned, ":", 2)[0]
		}
		return fmt.Sprintf("🔄 **Structure hint:** Proceed step by step: %s", strings.Join(steps, " → "))
	}

	sentences := sentenceEnd.Split(answer, -1)
	if len(sentences) > 0 {
		first := []rune(strings.ReplaceAll(sentences[0], "**", ""))
		if len(first) > 20 {
			if len(first) > 100 {
				first = first[:100]
			}
			return fmt.Sprintf("🔄 **Structure hint:** Start with: %q", string(first)+"...")
		}
	}
	return "🔄 **Structure hint:** Structure your answer into logical sections and explain each step."
}

// keywordHint reveals up to six key terms from the reference answer.
func keywordHint(q Question) string {
	terms := append(
		textproc.ExtractKeywords(q.GivenAnswer, hintKeywordCap),
		textproc.ExtractMathTerms(q.GivenAnswer)...)
	if len(terms) > hintKeywordCap {
		terms = terms[:hintKeywordCap]
	}

	hint := "🔑 **Keyword hint:** Important terms: " + strings.Join(terms, ", ")
	if len(q.MathBlocks) > 0 {
		hint += "\n\n📐 **Math hint:** Take the given formulas into account."
	}
	return hint
}
