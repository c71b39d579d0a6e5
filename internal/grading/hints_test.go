package grading_test

import (
	"strings"
	"testing"

	"github.com/nlpds/nlpds-server/internal/grading"
)

func TestGenerateHintLevels(t *testing.T) {
	q := grading.Question{
		Topic:       "Transformer/Attention",
		GivenAnswer: "1. Query und Key multiplizieren\n2. Durch die Wurzel von d_k teilen\n3. Softmax anwenden",
	}

	level1 := grading.GenerateHint(q, 1)
	if !strings.Contains(level1, "Q, K, V") {
		t.Fatalf("level 1 should name the topic area, got %q", level1)
	}

	level2 := grading.GenerateHint(q, 2)
	if !strings.Contains(level2, "step by step") {
		t.Fatalf("level 2 should reveal the enumerated structure, got %q", level2)
	}

	level3 := grading.GenerateHint(q, 3)
	if !strings.Contains(level3, "Important terms:") {
		t.Fatalf("level 3 should reveal keywords, got %q", level3)
	}

	if got := grading.GenerateHint(q, 4); got != "No further hints available." {
		t.Fatalf("unexpected hint for level 4: %q", got)
	}
}

func TestTopicHintFallsBackToNotes(t *testing.T) {
	q := grading.Question{Topic: "Tokenisierung", Notes: "BPE und WordPiece vergleichen."}
	hint := grading.GenerateHint(q, 1)
	if !strings.Contains(hint, "Tokenisierung") || !strings.Contains(hint, "BPE") {
		t.Fatalf("unknown topic should fall back to the notes, got %q", hint)
	}
}

func TestStructureHintFirstSentence(t *testing.T) {
	q := grading.Question{
		GivenAnswer: "Die Attention-Matrix wird zeilenweise normalisiert bevor sie angewendet wird. Danach folgt die Projektion.",
	}
	hint := grading.GenerateHint(q, 2)
	if !strings.Contains(hint, "Start with:") {
		t.Fatalf("prose answers should hint at the opening sentence, got %q", hint)
	}
}

func TestKeywordHintMentionsMathBlocks(t *testing.T) {
	q := grading.Question{
		GivenAnswer: "Softmax normalisiert die Attention Gewichte.",
		MathBlocks:  []string{`\text{softmax}(QK^T)`},
	}
	hint := grading.GenerateHint(q, 3)
	if !strings.Contains(hint, "formulas") {
		t.Fatalf("questions with math blocks should point at the formulas, got %q", hint)
	}
}
