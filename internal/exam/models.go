package exam

import (
	"time"

	"github.com/nlpds/nlpds-server/internal/grading"
)

// Legacy type tags as they appear in the exam_questions JSON documents.
const (
	TypeFreeText    = "offene_frage"
	TypeDefinition  = "definition"
	TypeCalculation = "rechenaufgabe"
	TypeImage       = "bildbasierte_frage"
	TypeSingleTag   = "mc_radio"
	TypeMultiTag    = "mc_check"
)

// Question is the full bank model. Kind is derived once from the legacy
// Type string when the question is loaded; evaluation never re-sniffs Type.
type Question struct {
	ID           string   `json:"id"`
	Source       string   `json:"source,omitempty"`
	Type         string   `json:"type"`
	Topic        string   `json:"topic"`
	QuestionText string   `json:"question_text"`
	MathBlocks   []string `json:"math_blocks,omitempty"`
	Images       []string `json:"images,omitempty"`
	Options      []string `json:"options,omitempty"`
	CorrectOpts  []string `json:"correct_options,omitempty"`
	GivenAnswer  string   `json:"given_answer"`
	Verified     bool     `json:"verified,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	Difficulty   string   `json:"difficulty,omitempty"`
	EstimatedMin int      `json:"estimated_min,omitempty"`

	Kind grading.Kind `json:"-"`
}

// ParseKind maps a legacy type tag onto the tagged variant. Unknown tags and
// mc_-prefixed variants degrade gracefully instead of erroring.
func ParseKind(typeTag string, hasOptions bool) grading.Kind {
	switch typeTag {
	case TypeDefinition:
		return grading.KindDefinition
	case TypeCalculation:
		return grading.KindCalculation
	case TypeImage:
		return grading.KindImage
	case TypeMultiTag:
		return grading.KindMultiChoice
	case TypeSingleTag, "multiple_choice":
		return grading.KindSingleChoice
	}
	if len(typeTag) > 3 && typeTag[:3] == "mc_" {
		return grading.KindSingleChoice
	}
	if hasOptions {
		return grading.KindSingleChoice
	}
	return grading.KindFreeText
}

// View converts down to the read-only shape the grading engine consumes.
func (q Question) View() grading.Question {
	return grading.Question{
		Topic:          q.Topic,
		Kind:           q.Kind,
		Text:           q.QuestionText,
		GivenAnswer:    q.GivenAnswer,
		MathBlocks:     q.MathBlocks,
		Options:        q.Options,
		CorrectOptions: q.CorrectOpts,
		Notes:          q.Notes,
	}
}

// Mode selects session behavior: learn shows hints and solutions, exam is
// timed and withholds them until the end.
type Mode string

const (
	ModeLearn Mode = "learn"
	ModeExam  Mode = "exam"
)

// AnswerRecord is one graded (or skipped) question inside a session.
type AnswerRecord struct {
	QuestionID string         `json:"question_id"`
	UserAnswer string         `json:"user_answer"`
	Score      float64        `json:"score"`
	Correct    bool           `json:"correct"`
	Skipped    bool           `json:"skipped,omitempty"`
	HintsUsed  int            `json:"hints_used"`
	TimeSpent  int64          `json:"time_spent_ms"`
	AnsweredAt time.Time      `json:"answered_at"`
	Evaluation grading.Result `json:"evaluation"`
}

// Session is one learn or exam run over a queue of questions.
type Session struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	Mode      Mode           `json:"mode"`
	Queue     []Question     `json:"queue"`
	Index     int            `json:"index"`
	Results   []AnswerRecord `json:"results"`
	HintLevel int            `json:"hint_level"` // highest hint level used on the current question
	StartedAt time.Time      `json:"started_at"`
	Deadline  time.Time      `json:"deadline,omitempty"` // zero when untimed
	Finished  bool           `json:"finished"`
}

// Summary is returned when a session ends.
type Summary struct {
	SessionID    string         `json:"session_id"`
	Mode         Mode           `json:"mode"`
	Total        int            `json:"total"`
	Answered     int            `json:"answered"`
	Skipped      int            `json:"skipped"`
	CorrectCount int            `json:"correct_count"`
	AverageScore float64        `json:"average_score"`
	Duration     time.Duration  `json:"duration_ms"`
	Results      []AnswerRecord `json:"results"`
}
