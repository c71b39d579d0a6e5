package progress

import (
	"context"
	"time"
)

const (
	streakWindowDays = 30
	recentWindowDays = 7
)

// GroupStats is an aggregate over one session mode or topic.
type GroupStats struct {
	Key          string  `json:"key"`
	Count        int     `json:"count"`
	AverageScore float64 `json:"average_score"`
	CorrectCount int     `json:"correct_count"`
}

// DayActivity is one day's worth of answers in one session mode.
type DayActivity struct {
	Date         string  `json:"date"`
	SessionMode  string  `json:"session_mode"`
	Questions    int     `json:"questions"`
	AverageScore float64 `json:"average_score"`
	CorrectCount int     `json:"correct_count"`
}

// Stats is the per-user statistics document.
type Stats struct {
	TotalQuestions int           `json:"total_questions"`
	AverageScore   float64       `json:"average_score"`
	CorrectAnswers int           `json:"correct_answers"`
	Accuracy       float64       `json:"accuracy"`
	TotalTimeMs    int64         `json:"total_time_ms"`
	TotalHints     int           `json:"total_hints"`
	FirstAnswer    string        `json:"first_answer,omitempty"`
	LastAnswer     string        `json:"last_answer,omitempty"`
	LearningStreak int           `json:"learning_streak_days"`
	ByMode         []GroupStats  `json:"by_mode"`
	ByTopic        []GroupStats  `json:"by_topic"`
	RecentActivity []DayActivity `json:"recent_activity"`
}

// Stats aggregates everything the dashboard needs for one user.
func (s *Store) Stats(ctx context.Context, userID string) (Stats, error) {
	var st Stats
	var avg, firstAnswer, lastAnswer, totalTime, totalHints interface{}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), AVG(score), COALESCE(SUM(correct),0),
		        SUM(time_spent), SUM(hints_used), MIN(answered_at), MAX(answered_at)
		 FROM user_progress WHERE user_id=$1`, userID).
		Scan(&st.TotalQuestions, &avg, &st.CorrectAnswers, &totalTime, &totalHints, &firstAnswer, &lastAnswer)
	if err != nil {
		return Stats{}, err
	}
	st.AverageScore = toFloat(avg)
	st.TotalTimeMs = toInt64(totalTime)
	st.TotalHints = int(toInt64(totalHints))
	st.FirstAnswer = toString(firstAnswer)
	st.LastAnswer = toString(lastAnswer)
	if st.TotalQuestions > 0 {
		st.Accuracy = float64(st.CorrectAnswers) / float64(st.TotalQuestions)
	}

	if st.ByMode, err = s.groupStats(ctx, userID, "session_mode"); err != nil {
		return Stats{}, err
	}
	if st.ByTopic, err = s.groupStats(ctx, userID, "topic"); err != nil {
		return Stats{}, err
	}
	if st.LearningStreak, err = s.streakDays(ctx, userID, streakWindowDays); err != nil {
		return Stats{}, err
	}
	if st.RecentActivity, err = s.recentActivity(ctx, userID, recentWindowDays); err != nil {
		return Stats{}, err
	}
	return st, nil
}

func (s *Store) groupStats(ctx context.Context, userID, column string) ([]GroupStats, error) {
	// column is one of two fixed identifiers, never user input.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+column+`, COUNT(*), AVG(score), COALESCE(SUM(correct),0)
		 FROM user_progress WHERE user_id=$1 GROUP BY `+column+` ORDER BY `+column, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GroupStats{}
	for rows.Next() {
		var g GroupStats
		var avg interface{}
		if err := rows.Scan(&g.Key, &g.Count, &avg, &g.CorrectCount); err != nil {
			return nil, err
		}
		g.AverageScore = toFloat(avg)
		out = append(out, g)
	}
	return out, rows.Err()
}

// streakDays counts distinct active days inside the window. answered_at is
// RFC3339 text, so the day is its first ten characters and the window
// cutoff compares lexicographically in both SQL dialects.
func (s *Store) streakDays(ctx context.Context, userID string, windowDays int) (int, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays).Format(time.RFC3339)
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT substr(answered_at,1,10))
		 FROM user_progress WHERE user_id=$1 AND answered_at >= $2`, userID, cutoff).Scan(&n)
	return n, err
}

func (s *Store) recentActivity(ctx context.Context, userID string, windowDays int) ([]DayActivity, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays).Format(time.RFC3339)
	rows, err := s.db.QueryContext(ctx,
		`SELECT substr(answered_at,1,10) AS day, session_mode, COUNT(*), AVG(score), COALESCE(SUM(correct),0)
		 FROM user_progress WHERE user_id=$1 AND answered_at >= $2
		 GROUP BY day, session_mode ORDER BY day DESC`, userID, cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []DayActivity{}
	for rows.Next() {
		var a DayActivity
		var avg interface{}
		if err := rows.Scan(&a.Date, &a.SessionMode, &a.Questions, &avg, &a.CorrectCount); err != nil {
			return nil, err
		}
		a.AverageScore = toFloat(avg)
		out = append(out, a)
	}
	return out, rows.Err()
}

func toFloat(v interface{}) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int64:
		return float64(x)
	default:
		return 0
	}
}

func toInt64(v interface{}) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		return int64(x)
	default:
		return 0
	}
}

func toString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	default:
		return ""
	}
}
