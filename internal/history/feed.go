// Package history merges a user's reflective activity into a per-day feed.
package history

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/mindwell/internal/db"
	"golang.org/x/sync/errgroup"
)

// Item kinds besides the drawing input types.
const (
	KindJournal = "journal"
	KindVideo   = "video"
	KindRead    = "read"
)

// Item is one entry in the feed. Only the fields relevant to Kind are set.
type Item struct {
	Kind           string    `json:"kind"`
	ID             string    `json:"id"`
	CreatedAt      time.Time `json:"createdAt"`
	TextContent    *string   `json:"textContent,omitempty"`
	AIInsight      *string   `json:"aiInsight,omitempty"`
	Content        string    `json:"content,omitempty"`
	SentimentScore *float64  `json:"sentimentScore,omitempty"`
	VideoID        *string   `json:"videoId,omitempty"`
	Summary        string    `json:"summary,omitempty"`
}

// Day groups the items of one calendar day, newest first.
type Day struct {
	Date  string `json:"date"`
	Items []Item `json:"items"`
}

// Store is the data the feed reads.
type Store interface {
	ListDrawings(ctx context.Context, userID string) ([]db.Drawing, error)
	ListJournalEntries(ctx context.Context, userID string, from, to time.Time) ([]db.JournalEntry, error)
	ListCognitiveEntries(ctx context.Context, userID string, from, to time.Time) ([]db.CognitiveEntry, error)
	ListChecklists(ctx context.Context, userID string, from, to time.Time) ([]db.DailyChecklist, error)
}

// Feed builds history feeds grouped by day in loc.
type Feed struct {
	store Store
	loc   *time.Location
}

// NewFeed creates a feed reader.
func NewFeed(store Store, loc *time.Location) *Feed {
	return &Feed{store: store, loc: loc}
}

// Build loads the user's full history and merges it.
func (f *Feed) Build(ctx context.Context, userID string) ([]Day, error) {
	var (
		drawings   []db.Drawing
		journals   []db.JournalEntry
		cognitive  []db.CognitiveEntry
		checklists []db.DailyChecklist
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		drawings, err = f.store.ListDrawings(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		journals, err = f.store.ListJournalEntries(gctx, userID, time.Time{}, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		cognitive, err = f.store.ListCognitiveEntries(gctx, userID, time.Time{}, time.Time{})
		return err
	})
	g.Go(func() (err error) {
		checklists, err = f.store.ListChecklists(gctx, userID, time.Time{}, time.Time{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return Merge(drawings, journals, cognitive, checklists, f.loc), nil
}

// Merge maps the four streams to feed items and groups them by day in loc.
// Days are newest first; items within a day are newest first, and items with
// equal timestamps keep the stream order drawings, journals, videos, reads.
func Merge(drawings []db.Drawing, journals []db.JournalEntry, cognitive []db.CognitiveEntry, checklists []db.DailyChecklist, loc *time.Location) []Day {
	var items []Item

	for _, d := range drawings {
		kind := d.InputType
		if kind == "" {
			kind = db.InputDraw
		}
		items = append(items, Item{
			Kind:        kind,
			ID:          d.ID.String(),
			CreatedAt:   d.CreatedAt,
			TextContent: d.TextContent,
			AIInsight:   d.AIInsight,
		})
	}

	for _, j := range journals {
		items = append(items, Item{
			Kind:           KindJournal,
			ID:             j.ID.String(),
			CreatedAt:      j.CreatedAt,
			Content:        j.Content,
			SentimentScore: j.SentimentScore,
		})
	}

	for _, c := range cognitive {
		if c.VideoID == nil && c.ExerciseType != db.ExerciseProcessing {
			continue
		}
		items = append(items, Item{
			Kind:      KindVideo,
			ID:        c.ID.String(),
			CreatedAt: c.CreatedAt,
			VideoID:   c.VideoID,
			Summary:   c.Summary,
		})
	}

	for _, c := range checklists {
		if !c.ReadBook {
			continue
		}
		y, m, d := c.Date.UTC().Date()
		items = append(items, Item{
			Kind:      KindRead,
			ID:        readID(c.ID),
			CreatedAt: time.Date(y, m, d, 0, 0, 0, 0, loc),
		})
	}

	groups := make(map[string][]Item)
	for _, it := range items {
		key := it.CreatedAt.In(loc).Format(time.DateOnly)
		groups[key] = append(groups[key], it)
	}

	days := make([]Day, 0, len(groups))
	for key, dayItems := range groups {
		sort.SliceStable(dayItems, func(i, j int) bool {
			return dayItems[i].CreatedAt.After(dayItems[j].CreatedAt)
		})
		days = append(days, Day{Date: key, Items: dayItems})
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Date > days[j].Date })
	return days
}

func readID(checklistID uuid.UUID) string {
	return "read-" + checklistID.String()
}
