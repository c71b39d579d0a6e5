package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nlpds/nlpds-server/internal/exam"
	"github.com/nlpds/nlpds-server/internal/grading"
)

type evaluateReq struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer"`

	// Optional per-request tuning. All four weights must be given together.
	Weights *struct {
		Keyword float64 `json:"keyword" validate:"gte=0,lte=1"`
		Jaccard float64 `json:"jaccard" validate:"gte=0,lte=1"`
		Math    float64 `json:"math" validate:"gte=0,lte=1"`
		Length  float64 `json:"length" validate:"gte=0,lte=1"`
	} `json:"weights"`
	MinAnswerLength *int `json:"min_answer_length" validate:"omitempty,gte=0"`
}

type hintReq struct {
	Level int `json:"level" validate:"gte=1,lte=3"`
}

// POST /api/evaluate grades an answer against a bank question without a
// session, for ad-hoc practice. Calculation questions get the numeric
// side-channel applied with the same best-score-wins policy sessions use.
func EvaluateHandler(bank *exam.Bank, defaults ...grading.Option) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req evaluateReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
			return
		}
		q, err := bank.Get(req.QuestionID)
		if errors.Is(err, exam.ErrQuestionNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		opts := append([]grading.Option{}, defaults...)
		if req.Weights != nil {
			opts = append(opts, grading.WithWeights(
				req.Weights.Keyword, req.Weights.Jaccard, req.Weights.Math, req.Weights.Length))
		}
		if req.MinAnswerLength != nil {
			opts = append(opts, grading.WithMinAnswerLength(*req.MinAnswerLength))
		}

		res := grading.Evaluate(req.Answer, q.View(), opts...)
		if q.Kind == grading.KindCalculation {
			num := grading.EvaluateNumerical(req.Answer, q.GivenAnswer, grading.DefaultTolerance)
			if num.Score > res.Score {
				res.Score = num.Score
				res.Color = grading.ScoreColor(num.Score)
				res.Label = grading.ScoreLabel(num.Score)
				res.Feedback = fmt.Sprintf("%s\n%s", res.Feedback, num.Feedback)
			}
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// POST /api/questions/{questionID}/hint returns an escalating hint for a
// bank question, independent of any session.
func HintHandler(bank *exam.Bank) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hintReq
		if err := decodeValid(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "validation failed: "+err.Error())
			return
		}
		q, err := bank.Get(chi.URLParam(r, "questionID"))
		if errors.Is(err, exam.ErrQuestionNotFound) {
			writeError(w, http.StatusNotFound, "question not found")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"question_id": q.ID,
			"level":       req.Level,
			"hint":        grading.GenerateHint(q.View(), req.Level),
		})
	}
}
