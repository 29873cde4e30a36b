package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Checklist task names as accepted by the API.
const (
	TaskDescribedDay  = "describedDay"
	TaskVideoSummary  = "videoSummary"
	TaskReadBook      = "readBook"
	TaskCreativeTask  = "creativeTask"
	TaskQuizCompleted = "quizCompleted"
	TaskMoodCheckin   = "moodCheckin"
)

// taskColumns maps task names to their column. Only names in this map ever
// reach SQL text.
var taskColumns = map[string]string{
	TaskDescribedDay:  "described_day",
	TaskVideoSummary:  "video_summary",
	TaskReadBook:      "read_book",
	TaskCreativeTask:  "creative_task",
	TaskQuizCompleted: "quiz_completed",
	TaskMoodCheckin:   "mood_checkin",
}

// IsChecklistTask reports whether name is a known checklist task.
func IsChecklistTask(name string) bool {
	_, ok := taskColumns[name]
	return ok
}

const checklistColumns = `id, user_id, date, described_day, video_summary, read_book, creative_task, quiz_completed, mood_checkin, created_at, updated_at`

func scanChecklist(row pgx.Row) (*DailyChecklist, error) {
	var c DailyChecklist
	if err := row.Scan(&c.ID, &c.UserID, &c.Date, &c.DescribedDay, &c.VideoSummary, &c.ReadBook,
		&c.CreativeTask, &c.QuizCompleted, &c.MoodCheckin, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// DateOf returns the calendar day of t in loc, as midnight UTC. This is the
// value stored in DATE columns.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// GetOrCreateChecklist returns the user's checklist for date, creating an
// empty one if needed.
func (db *DB) GetOrCreateChecklist(ctx context.Context, userID string, date time.Time) (*DailyChecklist, error) {
	c, err := scanChecklist(db.pool.QueryRow(ctx,
		`INSERT INTO daily_checklists (user_id, date)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id, date) DO UPDATE SET user_id = daily_checklists.user_id
		 RETURNING `+checklistColumns,
		userID, date,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to get checklist: %w", err)
	}
	return c, nil
}

// CompleteChecklistTask sets one task to true on the (user, date) row,
// creating the row if needed.
func (db *DB) CompleteChecklistTask(ctx context.Context, userID string, date time.Time, task string) (*DailyChecklist, error) {
	col, ok := taskColumns[task]
	if !ok {
		return nil, fmt.Errorf("unknown checklist task: %s", task)
	}
	c, err := scanChecklist(db.pool.QueryRow(ctx,
		`INSERT INTO daily_checklists (user_id, date, `+col+`)
		 VALUES ($1, $2, TRUE)
		 ON CONFLICT (user_id, date) DO UPDATE SET `+col+` = TRUE, updated_at = NOW()
		 RETURNING `+checklistColumns,
		userID, date,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to complete checklist task: %w", err)
	}
	return c, nil
}

// ListChecklists returns the user's checklists with from <= date <= to, oldest first.
// Zero bounds leave the range open.
func (db *DB) ListChecklists(ctx context.Context, userID string, from, to time.Time) ([]DailyChecklist, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+checklistColumns+` FROM daily_checklists
		 WHERE user_id = $1
		   AND ($2::date IS NULL OR date >= $2)
		   AND ($3::date IS NULL OR date <= $3)
		 ORDER BY date ASC`,
		userID, nullTime(from), nullTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list checklists: %w", err)
	}
	defer rows.Close()

	var lists []DailyChecklist
	for rows.Next() {
		c, err := scanChecklist(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, *c)
	}
	return lists, rows.Err()
}
