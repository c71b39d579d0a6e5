// Package progress records graded answers durably and aggregates them into
// per-user statistics and the leaderboard.
package progress

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	syncx "github.com/nlpds/nlpds-server/internal/sync"
)

// AnswerRecord is one persisted answer event.
type AnswerRecord struct {
	UserID         string  `json:"user_id"`
	QuestionID     string  `json:"question_id"`
	Topic          string  `json:"topic"`
	UserAnswer     string  `json:"user_answer"`
	Score          float64 `json:"score"`
	Correct        bool    `json:"correct"`
	HintsUsed      int     `json:"hints_used"`
	TimeSpentMs    int64   `json:"time_spent_ms"`
	SessionMode    string  `json:"session_mode"`
	EvaluationJSON string  `json:"evaluation_json,omitempty"`
}

type Store struct {
	db     *sql.DB
	events *syncx.EventRepo
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, events: syncx.NewEventRepo(db)}
}

// RecordAnswer inserts a progress row and appends the matching sync event.
// Returns the new row's ID.
func (s *Store) RecordAnswer(ctx context.Context, rec AnswerRecord) (string, error) {
	id := uuid.NewString()
	correct := 0
	if rec.Correct {
		correct = 1
	}
	var evaluation interface{}
	if rec.EvaluationJSON != "" {
		evaluation = rec.EvaluationJSON
	}
	answeredAt := time.Now().UTC().Format(time.RFC3339)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO user_progress (
			id, user_id, question_id, topic, user_answer, score, correct,
			hints_used, time_spent, session_mode, evaluation_json, answered_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		id, rec.UserID, rec.QuestionID, rec.Topic, rec.UserAnswer, rec.Score, correct,
		rec.HintsUsed, rec.TimeSpentMs, rec.SessionMode, evaluation, answeredAt)
	if err != nil {
		return "", err
	}

	if err := s.events.Append(ctx, syncx.Event{
		Type:     syncx.TypeAnswerRecorded,
		Key:      id,
		DataJSON: rec.EvaluationJSON,
	}); err != nil {
		return "", err
	}
	return id, nil
}

// Events exposes the sync event log for reconciliation endpoints.
func (s *Store) Events() *syncx.EventRepo { return s.events }
