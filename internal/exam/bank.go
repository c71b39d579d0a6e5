package exam

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// ErrQuestionNotFound is returned for lookups of unknown question IDs.
var ErrQuestionNotFound = errors.New("question not found")

// bankDocument is the on-disk format of a question bank file.
type bankDocument struct {
	ExamQuestions []Question `json:"exam_questions"`
}

// Bank holds the loaded question set. Questions are immutable once loaded;
// Import only appends.
type Bank struct {
	mu        sync.RWMutex
	questions []Question
	byID      map[string]int
}

func NewBank() *Bank {
	return &Bank{byID: map[string]int{}}
}

// LoadFile reads an exam_questions JSON document from path.
func (b *Bank) LoadFile(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open bank: %w", err)
	}
	defer f.Close()
	return b.Import(f)
}

// Import decodes an exam_questions document and merges it into the bank,
// skipping questions whose ID is already present. Returns the number of
// questions added.
func (b *Bank) Import(r io.Reader) (int, error) {
	var doc bankDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return 0, fmt.Errorf("decode bank: %w", err)
	}
	if doc.ExamQuestions == nil {
		return 0, errors.New("invalid format: exam_questions array missing")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	added := 0
	for _, q := range doc.ExamQuestions {
		q = normalizeQuestion(q)
		if _, ok := b.byID[q.ID]; ok {
			continue
		}
		b.byID[q.ID] = len(b.questions)
		b.questions = append(b.questions, q)
		added++
	}
	return added, nil
}

// normalizeQuestion fills defaults the way legacy bank files expect and
// derives the Kind tag once.
func normalizeQuestion(q Question) Question {
	if q.ID == "" {
		q.ID = "Q_" + uuid.NewString()
	}
	if q.Type == "" {
		q.Type = TypeFreeText
	}
	if q.Topic == "" {
		q.Topic = "Allgemein"
	}
	if q.Difficulty == "" {
		q.Difficulty = "mittel"
	}
	if q.EstimatedMin == 0 {
		q.EstimatedMin = 5
	}
	q.Kind = ParseKind(q.Type, len(q.Options) > 0)
	return q
}

// Get returns the question with the given ID.
func (b *Bank) Get(id string) (Question, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i, ok := b.byID[id]
	if !ok {
		return Question{}, ErrQuestionNotFound
	}
	return b.questions[i], nil
}

// Len reports the number of loaded questions.
func (b *Bank) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.questions)
}

// Topics lists all distinct topics, sorted.
func (b *Bank) Topics() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, q := range b.questions {
		seen[q.Topic] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Types lists all distinct legacy type tags, sorted.
func (b *Bank) Types() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	seen := map[string]struct{}{}
	for _, q := range b.questions {
		seen[q.Type] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// FilterOpts narrows the bank for listing and session building. Image-based
// questions are hidden unless explicitly requested.
type FilterOpts struct {
	Topics        []string
	Types         []string
	Search        string
	IncludeImages bool
}

// Filter returns the questions matching opts, in bank order.
func (b *Bank) Filter(opts FilterOpts) []Question {
	b.mu.RLock()
	defer b.mu.RUnlock()

	topicSet := sliceSet(opts.Topics)
	typeSet := sliceSet(opts.Types)
	search := strings.ToLower(strings.TrimSpace(opts.Search))

	out := make([]Question, 0, len(b.questions))
	for _, q := range b.questions {
		if !opts.IncludeImages && q.Type == TypeImage {
			continue
		}
		if len(topicSet) > 0 {
			if _, ok := topicSet[q.Topic]; !ok {
				continue
			}
		}
		if len(typeSet) > 0 {
			if _, ok := typeSet[q.Type]; !ok {
				continue
			}
		}
		if search != "" && !matchesSearch(q, search) {
			continue
		}
		out = append(out, q)
	}
	return out
}

func matchesSearch(q Question, search string) bool {
	return strings.Contains(strings.ToLower(q.QuestionText), search) ||
		strings.Contains(strings.ToLower(q.GivenAnswer), search) ||
		strings.Contains(strings.ToLower(q.Topic), search) ||
		strings.Contains(strings.ToLower(q.Notes), search)
}

func sliceSet(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			m[v] = struct{}{}
		}
	}
	return m
}
