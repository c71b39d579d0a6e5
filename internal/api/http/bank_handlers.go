package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nlpds/nlpds-server/internal/exam"
)

// GET /api/questions
func ListQuestionsHandler(bank *exam.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := exam.FilterOpts{
			Topics:        splitCSV(q.Get("topics")),
			Types:         splitCSV(q.Get("types")),
			Search:        q.Get("search"),
			IncludeImages: q.Get("include_images") == "true",
		}
		questions := bank.Filter(opts)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"count":     len(questions),
			"questions": questions,
		})
	}
}

// GET /api/questions/{questionID}
func GetQuestionHandler(bank *exam.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "questionID")
		q, err := bank.Get(id)
		if errors.Is(err, exam.ErrQuestionNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, q)
	}
}

// POST /api/questions/import accepts an exam_questions JSON document and
// merges it into the bank. Duplicate IDs are skipped, not overwritten.
func ImportQuestionsHandler(bank *exam.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		added, err := bank.Import(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"added": added,
			"total": bank.Len(),
		})
	}
}

// GET /api/topics
func TopicsHandler(bank *exam.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"topics": bank.Topics(),
			"types":  bank.Types(),
		})
	}
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
