package exam

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/nlpds/nlpds-server/internal/grading"
)

var (
	ErrSessionFinished = errors.New("session already finished")
	ErrSessionExpired  = errors.New("session time limit exceeded")
	ErrNoQuestions     = errors.New("no questions found for the selected filters")
	ErrQueueExhausted  = errors.New("no current question")
	ErrHintsDisabled   = errors.New("hints are only available in learn mode")
)

// correctThreshold: a graded answer counts as correct from this score up.
const correctThreshold = 0.6

// StartOpts configures a new session run.
type StartOpts struct {
	UserID        string
	Mode          Mode
	QuestionCount int  // 0 = all matching questions
	TimeLimitMin  int  // 0 = untimed; only honored in exam mode
	Sequential    bool // keep bank order instead of shuffling
	Topics        []string
	Types         []string
	IncludeImages bool
}

// Service runs learn and exam sessions over the question bank. All session
// state lives in the store; the service itself is stateless between calls.
type Service struct {
	bank     *Bank
	store    SessionStore
	evalOpts []grading.Option
	now      func() time.Time
}

func NewService(bank *Bank, store SessionStore, evalOpts ...grading.Option) *Service {
	return &Service{bank: bank, store: store, evalOpts: evalOpts, now: time.Now}
}

// Start builds a question queue from the bank filters and opens a session.
func (s *Service) Start(opts StartOpts) (Session, error) {
	if opts.Mode != ModeExam {
		opts.Mode = ModeLearn
	}
	queue := s.bank.Filter(FilterOpts{
		Topics:        opts.Topics,
		Types:         opts.Types,
		IncludeImages: opts.IncludeImages,
	})
	if len(queue) == 0 {
		return Session{}, ErrNoQuestions
	}
	if !opts.Sequential {
		shuffled := make([]Question, len(queue))
		copy(shuffled, queue)
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		queue = shuffled
	}
	if opts.QuestionCount > 0 && opts.QuestionCount < len(queue) {
		queue = queue[:opts.QuestionCount]
	}

	sess := Session{
		ID:        uuid.NewString(),
		UserID:    opts.UserID,
		Mode:      opts.Mode,
		Queue:     queue,
		Results:   []AnswerRecord{},
		StartedAt: s.now(),
	}
	if opts.Mode == ModeExam && opts.TimeLimitMin > 0 {
		sess.Deadline = sess.StartedAt.Add(time.Duration(opts.TimeLimitMin) * time.Minute)
	}
	if err := s.store.Put(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Get returns the session by ID.
func (s *Service) Get(id string) (Session, error) {
	return s.store.Get(id)
}

// Current returns the question the session is positioned at.
func (s *Service) Current(sessionID string) (Question, int, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return Question{}, 0, err
	}
	if sess.Finished {
		return Question{}, 0, ErrSessionFinished
	}
	if sess.Index >= len(sess.Queue) {
		return Question{}, 0, ErrQueueExhausted
	}
	return sess.Queue[sess.Index], sess.Index, nil
}

// Answer grades the current question, records the result and advances the
// session by one. For calculation questions the numeric side-channel score
// wins when it exceeds the free-text score.
func (s *Service) Answer(sessionID, userAnswer string, hintsUsed int, timeSpentMs int64) (AnswerRecord, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return AnswerRecord{}, err
	}
	if sess.Finished {
		return AnswerRecord{}, ErrSessionFinished
	}
	if !sess.Deadline.IsZero() && s.now().After(sess.Deadline) {
		return AnswerRecord{}, ErrSessionExpired
	}
	if sess.Index >= len(sess.Queue) {
		return AnswerRecord{}, ErrQueueExhausted
	}

	q := sess.Queue[sess.Index]
	res := grading.Evaluate(userAnswer, q.View(), s.evalOpts...)
	if q.Kind == grading.KindCalculation {
		num := grading.EvaluateNumerical(userAnswer, q.GivenAnswer, grading.DefaultTolerance)
		if num.Score > res.Score {
			res.Score = num.Score
			res.Color = grading.ScoreColor(num.Score)
			res.Label = grading.ScoreLabel(num.Score)
			res.Feedback = fmt.Sprintf("%s\n%s", res.Feedback, num.Feedback)
		}
	}

	record := AnswerRecord{
		QuestionID: q.ID,
		UserAnswer: userAnswer,
		Score:      res.Score,
		Correct:    res.Score >= correctThreshold,
		HintsUsed:  hintsUsed,
		TimeSpent:  timeSpentMs,
		AnsweredAt: s.now(),
		Evaluation: res,
	}
	sess.Results = append(sess.Results, record)
	sess.Index++
	sess.HintLevel = 0
	if err := s.store.Put(sess); err != nil {
		return AnswerRecord{}, err
	}
	return record, nil
}

// Skip records the current question as skipped and advances exactly once.
func (s *Service) Skip(sessionID string) (Session, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.Finished {
		return Session{}, ErrSessionFinished
	}
	if sess.Index >= len(sess.Queue) {
		return Session{}, ErrQueueExhausted
	}
	sess.Results = append(sess.Results, AnswerRecord{
		QuestionID: sess.Queue[sess.Index].ID,
		Skipped:    true,
		AnsweredAt: s.now(),
	})
	sess.Index++
	sess.HintLevel = 0
	if err := s.store.Put(sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Hint returns an escalating hint for the current question. Learn mode only;
// the highest level requested is tracked on the session.
func (s *Service) Hint(sessionID string, level int) (string, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return "", err
	}
	if sess.Mode != ModeLearn {
		return "", ErrHintsDisabled
	}
	if sess.Finished {
		return "", ErrSessionFinished
	}
	if sess.Index >= len(sess.Queue) {
		return "", ErrQueueExhausted
	}
	if level > sess.HintLevel {
		sess.HintLevel = level
		if err := s.store.Put(sess); err != nil {
			return "", err
		}
	}
	return grading.GenerateHint(sess.Queue[sess.Index].View(), level), nil
}

// Finish closes the session and returns its summary.
func (s *Service) Finish(sessionID string) (Summary, error) {
	sess, err := s.store.Get(sessionID)
	if err != nil {
		return Summary{}, err
	}
	if sess.Finished {
		return Summary{}, ErrSessionFinished
	}
	sess.Finished = true
	if err := s.store.Put(sess); err != nil {
		return Summary{}, err
	}

	sum := Summary{
		SessionID: sess.ID,
		Mode:      sess.Mode,
		Total:     len(sess.Queue),
		Duration:  s.now().Sub(sess.StartedAt),
		Results:   sess.Results,
	}
	var scoreSum float64
	for _, r := range sess.Results {
		if r.Skipped {
			sum.Skipped++
			continue
		}
		sum.Answered++
		scoreSum += r.Score
		if r.Correct {
			sum.CorrectCount++
		}
	}
	if sum.Answered > 0 {
		sum.AverageScore = scoreSum / float64(sum.Answered)
	}
	return sum, nil
}
