package grading

import (
	"fmt"
	"strings"
)

// buildFeedback renders the multi-line summary shown next to a graded
// free-text answer.
func buildFeedback(total float64, b Breakdown, matched, missing []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall: %s (%s)\n\n", FormatScore(total), ScoreLabel(total))

	sb.WriteString("**Score breakdown:**\n")
	fmt.Fprintf(&sb, "• Keywords: %s (%d found)\n", FormatScore(b.Keywords), len(matched))
	fmt.Fprintf(&sb, "• Content similarity: %s\n", FormatScore(b.Jaccard))
	fmt.Fprintf(&sb, "• Math terms: %s\n", FormatScore(b.Math))
	fmt.Fprintf(&sb, "• Answer length: %s\n\n", FormatScore(b.Length))

	if len(matched) > 0 {
		fmt.Fprintf(&sb, "**Recognized key terms:** %s\n\n", strings.Join(matched, ", "))
	}
	if len(missing) > 0 {
		head := missing
		if len(head) > 5 {
			head = head[:5]
		}
		fmt.Fprintf(&sb, "**Missing important terms:** %s", strings.Join(head, ", "))
		if len(missing) > 5 {
			fmt.Fprintf(&sb, " (and %d more)", len(missing)-5)
		}
		sb.WriteString("\n\n")
	}
	return sb.String()
}

// buildSuggestions applies the fixed rule list: each rule appends at most
// one suggestion based on a sub-score threshold, followed by topic tips.
func buildSuggestions(b Breakdown, missing []string, q Question) []string {
	suggestions := []string{}

	if b.Keywords < 0.6 {
		suggestions = append(suggestions,
			fmt.Sprintf("Use more technical terms from the topic %q.", q.Topic))
		if len(missing) > 0 {
			top := missing
			if len(top) > 3 {
				top = top[:3]
			}
			suggestions = append(suggestions,
				fmt.Sprintf("Important terms that are missing: %s", strings.Join(top, ", ")))
		}
	}
	if b.Jaccard < 0.5 {
		suggestions = append(suggestions, "Elaborate on the core concepts in more depth.")
	}
	if b.Math < 0.6 && len(q.MathBlocks) > 0 {
		suggestions = append(suggestions, "Refer explicitly to the mathematical formulas.")
	}
	if b.Length < 0.5 {
		suggestions = append(suggestions, "Develop your answer in more detail.")
	}

	return append(suggestions, topicSuggestions(q.Topic, b)...)
}

func topicSuggestions(topic string, b Breakdown) []string {
	var out []string

	if strings.Contains(topic, "Transformer") || strings.Contains(topic, "Attention") {
		if b.Math < 0.7 {
			out = append(out, "Explain the mathematical steps: Q, K, V, attention score, softmax.")
		}
		out = append(out, "Mention the role of scaling (√d_k) and self-attention.")
	}
	if strings.Contains(topic, "Embeddings") {
		out = append(out,
			"Describe the differences between embedding variants.",
			"Explain dimensionality and training procedures.")
	}
	if strings.Contains(topic, "Sentiment") {
		out = append(out,
			"Distinguish aspect-based from document-level sentiment.",
			"Mention evaluation metrics and typical challenges.")
	}
	if strings.Contains(topic, "Bias") || strings.Contains(topic, "Evaluation") {
		out = append(out,
			"Describe concrete measurement and testing procedures.",
			"Mention statistical significance and robustness.")
	}
	return out
}
