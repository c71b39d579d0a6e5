package progress

import (
	"context"
	"sort"
	"time"
)

// Composite leaderboard weights: average score dominates, then answer
// volume, streak and invested time. Carried over from the original ranking.
const (
	lbAccuracyWeight = 0.4
	lbVolumeWeight   = 0.3
	lbStreakWeight   = 0.2
	lbTimeWeight     = 0.1

	lbVolumeCap = 100.0                    // answers for full volume credit
	lbStreakCap = 30.0                     // active days for full streak credit
	lbTimeCap   = 10.0 * 60 * 60 * 1000.0 // ms (10h) for full time credit
)

// Entry is one leaderboard row.
type Entry struct {
	Rank           int     `json:"rank"`
	Username       string  `json:"username"`
	DisplayName    string  `json:"display_name"`
	TotalQuestions int     `json:"total_questions"`
	Accuracy       float64 `json:"accuracy"`
	TimeInvestedMs int64   `json:"time_invested_ms"`
	LearningStreak int     `json:"learning_streak"`
	TotalSessions  int     `json:"total_sessions"`
	Score          int     `json:"score"`
	LastActive     string  `json:"last_active"`
}

// LeaderboardOpts selects sorting and filtering.
type LeaderboardOpts struct {
	SortBy   string // score|total_questions|accuracy|time_invested|learning_streak
	FilterBy string // all|active|streak
	Limit    int
}

// CompositeScore blends the aggregates into the 0-100 leaderboard score.
func CompositeScore(avgScore float64, totalAnswers, streakDays int, timeSpentMs int64) float64 {
	if totalAnswers == 0 {
		return 0
	}
	volume := capped(float64(totalAnswers) / lbVolumeCap)
	streak := capped(float64(streakDays) / lbStreakCap)
	invested := capped(float64(timeSpentMs) / lbTimeCap)
	return (avgScore*lbAccuracyWeight +
		volume*lbVolumeWeight +
		streak*lbStreakWeight +
		invested*lbTimeWeight) * 100
}

func capped(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}

// Leaderboard aggregates every user with at least one answer, scores them
// and returns the ranked, filtered, sorted slice.
func (s *Store) Leaderboard(ctx context.Context, opts LeaderboardOpts) ([]Entry, error) {
	if opts.Limit <= 0 || opts.Limit > 50 {
		opts.Limit = 50
	}
	streakCutoff := time.Now().UTC().AddDate(0, 0, -streakWindowDays).Format(time.RFC3339)

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.username, u.display_name, u.last_login,
		        COUNT(p.id), COALESCE(AVG(p.score),0), COALESCE(SUM(p.time_spent),0),
		        (SELECT COUNT(DISTINCT substr(p2.answered_at,1,10))
		         FROM user_progress p2
		         WHERE p2.user_id = u.id AND p2.answered_at >= $1)
		 FROM users u
		 JOIN user_progress p ON p.user_id = u.id
		 GROUP BY u.id, u.username, u.display_name, u.last_login`, streakCutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activeCutoff := time.Now().UTC().AddDate(0, 0, -recentWindowDays).Format(time.RFC3339)
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var avg float64
		if err := rows.Scan(&e.Username, &e.DisplayName, &e.LastActive,
			&e.TotalQuestions, &avg, &e.TimeInvestedMs, &e.LearningStreak); err != nil {
			return nil, err
		}
		if e.TotalQuestions == 0 {
			continue
		}
		e.Accuracy = avg
		e.TotalSessions = (e.TotalQuestions + 9) / 10 // rough estimate, 10 questions per session
		e.Score = int(CompositeScore(avg, e.TotalQuestions, e.LearningStreak, e.TimeInvestedMs) + 0.5)

		switch opts.FilterBy {
		case "active":
			if e.LastActive < activeCutoff {
				continue
			}
		case "streak":
			if e.LearningStreak == 0 {
				continue
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	less := func(i, j int) bool { return entries[i].Score > entries[j].Score }
	switch opts.SortBy {
	case "total_questions":
		less = func(i, j int) bool { return entries[i].TotalQuestions > entries[j].TotalQuestions }
	case "accuracy":
		less = func(i, j int) bool { return entries[i].Accuracy > entries[j].Accuracy }
	case "time_invested":
		less = func(i, j int) bool { return entries[i].TimeInvestedMs > entries[j].TimeInvestedMs }
	case "learning_streak":
		less = func(i, j int) bool { return entries[i].LearningStreak > entries[j].LearningStreak }
	}
	sort.SliceStable(entries, less)

	if len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}
