package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/nlpds/nlpds-server/internal/auth"
	"github.com/nlpds/nlpds-server/internal/exam"
	"github.com/nlpds/nlpds-server/internal/progress"
	syncx "github.com/nlpds/nlpds-server/internal/sync"
)

type startSessionReq struct {
	Mode          string   `json:"mode" validate:"omitempty,oneof=learn exam"`
	QuestionCount int      `json:"question_count" validate:"gte=0,lte=500"`
	TimeLimitMin  int      `json:"time_limit_min" validate:"gte=0,lte=600"`
	Sequential    bool     `json:"sequential"`
	Topics        []string `json:"topics"`
	Types         []string `json:"types"`
	IncludeImages bool     `json:"include_images"`
}

type answerReq struct {
	Answer      string `json:"answer"`
	HintsUsed   int    `json:"hints_used" validate:"gte=0"`
	TimeSpentMs int64  `json:"time_spent_ms" validate:"gte=0"`
}

type sessionHintReq struct {
	Level int `json:"level" validate:"gte=1,lte=3"`
}

// SessionHandlers bundles the session endpoints with the progress store they
// persist graded answers into.
type SessionHandlers struct {
	svc      *exam.Service
	progress *progress.Store
	log      zerolog.Logger
}

func NewSessionHandlers(svc *exam.Service, store *progress.Store, log zerolog.Logger) *SessionHandlers {
	return &SessionHandlers{svc: svc, progress: store, log: log}
}

// sessionError maps the service errors onto HTTP statuses.
func sessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, exam.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, exam.ErrSessionFinished):
		writeError(w, http.StatusConflict, "session already finished")
	case errors.Is(err, exam.ErrSessionExpired):
		writeError(w, http.StatusGone, "session time limit exceeded")
	case errors.Is(err, exam.ErrQueueExhausted):
		writeError(w, http.StatusConflict, "no current question")
	case errors.Is(err, exam.ErrHintsDisabled):
		writeError(w, http.StatusForbidden, "hints are only available in learn mode")
	case errors.Is(err, exam.ErrNoQuestions):
		writeError(w, http.StatusBadRequest, "no questions found for the selected filters")
	default:
		writeError(w, http.StatusInternalServerError, "session operation failed")
	}
}

// owner checks the session belongs to the authenticated user.
func (h *SessionHandlers) owner(w http.ResponseWriter, r *http.Request) (exam.Session, bool) {
	sess, err := h.svc.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		sessionError(w, err)
		return exam.Session{}, false
	}
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil || claims.UserID != sess.UserID {
		writeError(w, http.StatusForbidden, "not your session")
		return exam.Session{}, false
	}
	return sess, true
}

// POST /api/sessions
func (h *SessionHandlers) Start(w http.ResponseWriter, r *http.Request) {
	var req startSessionReq
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	sess, err := h.svc.Start(exam.StartOpts{
		UserID:        claims.UserID,
		Mode:          exam.Mode(req.Mode),
		QuestionCount: req.QuestionCount,
		TimeLimitMin:  req.TimeLimitMin,
		Sequential:    req.Sequential,
		Topics:        req.Topics,
		Types:         req.Types,
		IncludeImages: req.IncludeImages,
	})
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

// GET /api/sessions/{sessionID}
func (h *SessionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owner(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// GET /api/sessions/{sessionID}/current
func (h *SessionHandlers) Current(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owner(w, r)
	if !ok {
		return
	}
	q, idx, err := h.svc.Current(sess.ID)
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"index":    idx,
		"total":    len(sess.Queue),
		"question": q,
	})
}

// POST /api/sessions/{sessionID}/answer
func (h *SessionHandlers) Answer(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req answerReq
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}
	q, _, err := h.svc.Current(sess.ID)
	if err != nil {
		sessionError(w, err)
		return
	}
	record, err := h.svc.Answer(sess.ID, req.Answer, req.HintsUsed, req.TimeSpentMs)
	if err != nil {
		sessionError(w, err)
		return
	}

	evalJSON, _ := json.Marshal(record.Evaluation)
	if _, err := h.progress.RecordAnswer(r.Context(), progress.AnswerRecord{
		UserID:         sess.UserID,
		QuestionID:     record.QuestionID,
		Topic:          q.Topic,
		UserAnswer:     record.UserAnswer,
		Score:          record.Score,
		Correct:        record.Correct,
		HintsUsed:      record.HintsUsed,
		TimeSpentMs:    record.TimeSpent,
		SessionMode:    string(sess.Mode),
		EvaluationJSON: string(evalJSON),
	}); err != nil {
		// The grade already happened; losing the history row should not fail
		// the request.
		h.log.Error().Err(err).Str("session", sess.ID).Msg("record answer")
	}
	writeJSON(w, http.StatusOK, record)
}

// POST /api/sessions/{sessionID}/skip
func (h *SessionHandlers) Skip(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owner(w, r)
	if !ok {
		return
	}
	updated, err := h.svc.Skip(sess.ID)
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// POST /api/sessions/{sessionID}/hint
func (h *SessionHandlers) Hint(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owner(w, r)
	if !ok {
		return
	}
	var req sessionHintReq
	if err := decodeValid(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
		return
	}
	hint, err := h.svc.Hint(sess.ID, req.Level)
	if err != nil {
		sessionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id": sess.ID,
		"level":      req.Level,
		"hint":       hint,
	})
}

// POST /api/sessions/{sessionID}/finish
func (h *SessionHandlers) Finish(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.owner(w, r)
	if !ok {
		return
	}
	sum, err := h.svc.Finish(sess.ID)
	if err != nil {
		sessionError(w, err)
		return
	}
	sumJSON, _ := json.Marshal(sum)
	if err := h.progress.Events().Append(r.Context(), syncx.Event{
		Type:     syncx.TypeSessionFinished,
		Key:      sess.ID,
		DataJSON: string(sumJSON),
	}); err != nil {
		h.log.Error().Err(err).Str("session", sess.ID).Msg("append finish event")
	}
	writeJSON(w, http.StatusOK, sum)
}
