package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	api "github.com/nlpds/nlpds-server/internal/api/http"
	"github.com/nlpds/nlpds-server/internal/exam"
	"github.com/nlpds/nlpds-server/internal/grading"
)

func newTestBank(t *testing.T) *exam.Bank {
	t.Helper()
	bank := exam.NewBank()
	doc := `{
	  "exam_questions": [
	    {
	      "id": "Q1",
	      "type": "offene_frage",
	      "topic": "Transformer/Attention",
	      "question_text": "Explain self-attention.",
	      "given_answer": "Self-Attention berechnet Gewichte über Softmax aus Query und Key Vektoren."
	    },
	    {
	      "id": "Q2",
	      "type": "rechenaufgabe",
	      "topic": "Evaluation",
	      "question_text": "Compute the harmonic mean of P=0.8 and R=0.8.",
	      "given_answer": "Das Ergebnis ist 0.8"
	    }
	  ]
	}`
	if _, err := bank.Import(strings.NewReader(doc)); err != nil {
		t.Fatalf("import: %v", err)
	}
	return bank
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	bank := newTestBank(t)
	r := chi.NewRouter()
	r.Get("/api/questions", api.ListQuestionsHandler(bank))
	r.Get("/api/questions/{questionID}", api.GetQuestionHandler(bank))
	r.Post("/api/questions/import", api.ImportQuestionsHandler(bank))
	r.Get("/api/topics", api.TopicsHandler(bank))
	r.Post("/api/evaluate", api.EvaluateHandler(bank))
	r.Post("/api/questions/{questionID}/hint", api.HintHandler(bank))
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListQuestions(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/api/questions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Count     int             `json:"count"`
		Questions []exam.Question `json:"questions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/questions?topics=Evaluation", "")
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Count != 1 || resp.Questions[0].ID != "Q2" {
		t.Fatalf("topic filter returned %+v", resp)
	}
}

func TestGetQuestion(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/api/questions/Q1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodGet, "/api/questions/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown ID should 404, got %d", rec.Code)
	}
}

func TestImportQuestions(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/questions/import",
		`{"exam_questions": [{"id": "Q9", "question_text": "Neu?", "given_answer": "Ja."}]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Added int `json:"added"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Added != 1 || resp.Total != 3 {
		t.Fatalf("unexpected import response %+v", resp)
	}

	rec = doJSON(t, r, http.MethodPost, "/api/questions/import", `{"wrong": true}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid document should 400, got %d", rec.Code)
	}
}

func TestEvaluateEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/evaluate",
		`{"question_id": "Q1", "answer": "Attention berechnet Gewichte über Softmax aus Query und Key Vektoren."}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res grading.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Score < 0.6 {
		t.Fatalf("close answer scored %v", res.Score)
	}
}

func TestEvaluateNumericSideChannel(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/evaluate",
		`{"question_id": "Q2", "answer": "0.8"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var res grading.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Score != 1 {
		t.Fatalf("numeric match should win over the short-answer gate, got %v", res.Score)
	}
}

func TestEvaluateValidation(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/evaluate", `{"answer": "ohne Frage"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing question_id should 400, got %d", rec.Code)
	}
	rec = doJSON(t, r, http.MethodPost, "/api/evaluate", `{"question_id": "nope", "answer": "x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown question should 404, got %d", rec.Code)
	}
}

func TestHintEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/questions/Q1/hint", `{"level": 1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Hint string `json:"hint"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Hint == "" {
		t.Fatal("empty hint")
	}

	rec = doJSON(t, r, http.MethodPost, "/api/questions/Q1/hint", `{"level": 9}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("level out of range should 400, got %d", rec.Code)
	}
}

func TestTopicsEndpoint(t *testing.T) {
	r := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/api/topics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var resp struct {
		Topics []string `json:"topics"`
		Types  []string `json:"types"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Topics) != 2 || len(resp.Types) != 2 {
		t.Fatalf("unexpected topics response %+v", resp)
	}
}
