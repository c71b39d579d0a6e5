package http

import (
	"net/http"
	"strconv"

	"github.com/nlpds/nlpds-server/internal/auth"
	"github.com/nlpds/nlpds-server/internal/progress"
)

type recordAnswerReq struct {
	QuestionID     string  `json:"question_id" validate:"required"`
	Topic          string  `json:"topic"`
	UserAnswer     string  `json:"user_answer"`
	Score          float64 `json:"score" validate:"gte=0,lte=1"`
	Correct        bool    `json:"correct"`
	HintsUsed      int     `json:"hints_used" validate:"gte=0"`
	TimeSpentMs    int64   `json:"time_spent_ms" validate:"gte=0"`
	SessionMode    string  `json:"session_mode" validate:"omitempty,oneof=learn exam"`
	EvaluationJSON string  `json:"evaluation_json"`
}

// GET /api/progress/stats
func StatsHandler(store *progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		stats, err := store.Stats(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "stats query failed")
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

// POST /api/progress/answer records an answer graded outside a server
// session, e.g. by an offline client replaying its local history.
func RecordAnswerHandler(store *progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.ClaimsFromContext(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		var req recordAnswerReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
			return
		}
		id, err := store.RecordAnswer(r.Context(), progress.AnswerRecord{
			UserID:         claims.UserID,
			QuestionID:     req.QuestionID,
			Topic:          req.Topic,
			UserAnswer:     req.UserAnswer,
			Score:          req.Score,
			Correct:        req.Correct,
			HintsUsed:      req.HintsUsed,
			TimeSpentMs:    req.TimeSpentMs,
			SessionMode:    req.SessionMode,
			EvaluationJSON: req.EvaluationJSON,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "record failed")
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	}
}

// GET /api/leaderboard
func LeaderboardHandler(store *progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		limit, _ := strconv.Atoi(q.Get("limit"))
		entries, err := store.Leaderboard(r.Context(), progress.LeaderboardOpts{
			SortBy:   q.Get("sort_by"),
			FilterBy: q.Get("filter_by"),
			Limit:    limit,
		})
		if err != nil {
			writeError(w, http.StatusInternalServerError, "leaderboard query failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
	}
}

// GET /api/sync/events serves the append-only event log for reconciliation.
func SyncEventsHandler(store *progress.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		offset, _ := strconv.ParseInt(q.Get("offset"), 10, 64)
		limit, _ := strconv.Atoi(q.Get("limit"))
		events, err := store.Events().ListSince(r.Context(), offset, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "event log query failed")
			return
		}
		next := offset
		if len(events) > 0 {
			next = events[len(events)-1].Offset
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"events":      events,
			"next_offset": next,
		})
	}
}
