package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/spf13/cobra"
)

const (
	demoUserID    = "demo_user"
	demoUserEmail = "demo@mindwell.local"
)

func strPtr(s string) *string { return &s }

// seedBooks is the curated starter library.
func seedBooks() []db.Book {
	return []db.Book{
		{Title: "Feeling Good", Author: "David D. Burns", Description: strPtr("Cognitive techniques for lifting low mood."), LinkURL: strPtr("https://feelinggood.com/books/")},
		{Title: "The Body Keeps the Score", Author: "Bessel van der Kolk", Description: strPtr("How stress and trauma shape body and mind.")},
		{Title: "Atomic Habits", Author: "James Clear", Description: strPtr("Small routines that compound into lasting change.")},
		{Title: "Why We Sleep", Author: "Matthew Walker", Description: strPtr("The science of sleep and its effect on wellbeing.")},
		{Title: "Meditations", Author: "Marcus Aurelius", Description: strPtr("Stoic reflections on attention and equanimity."), LinkURL: strPtr("https://www.gutenberg.org/ebooks/2680")},
	}
}

// seedVideos is the curated starter video list.
func seedVideos() []db.Video {
	thumb := func(id string) *string { return strPtr("https://i.ytimg.com/vi/" + id + "/hqdefault.jpg") }
	return []db.Video{
		{Title: "Box Breathing Exercise", YouTubeID: "tEmt1Znux58", ThumbnailURL: thumb("tEmt1Znux58"), Description: strPtr("A four-minute guided breathing routine.")},
		{Title: "10-Minute Guided Meditation", YouTubeID: "O-6f5wQXSu8", ThumbnailURL: thumb("O-6f5wQXSu8"), Description: strPtr("A short meditation for stress relief.")},
		{Title: "How to Make Stress Your Friend", YouTubeID: "RcGyVTAoXEU", ThumbnailURL: thumb("RcGyVTAoXEU"), Description: strPtr("Reframing the stress response.")},
		{Title: "The Power of Vulnerability", YouTubeID: "iCvmsMzlF7o", ThumbnailURL: thumb("iCvmsMzlF7o"), Description: strPtr("On connection and courage.")},
		{Title: "Progressive Muscle Relaxation", YouTubeID: "1nZEdqcGVzo", ThumbnailURL: thumb("1nZEdqcGVzo"), Description: strPtr("Release tension one muscle group at a time.")},
	}
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the starter library and a demo admin user",
		Long: `Replace the book and video catalogs with the starter set, create the
demo user as an admin and open today's checklist for them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewServerConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			database, err := db.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			books, videos := seedBooks(), seedVideos()
			if err := database.ReplaceCatalog(ctx, books, videos); err != nil {
				return err
			}
			if err := database.UpsertProfile(ctx, demoUserID, demoUserEmail, "Demo User", true); err != nil {
				return err
			}
			if _, err := database.GetOrCreateChecklist(ctx, demoUserID, db.DateOf(time.Now(), cfg.Location)); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d books, %d videos and user %s\n", len(books), len(videos), demoUserID)
			return nil
		},
	}
	return cmd
}
