package db

import (
	"context"
	"fmt"
)

// ListBooks returns the curated book catalog, newest first.
func (db *DB) ListBooks(ctx context.Context) ([]Book, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, author, cover_url, description, link_url, created_at
		 FROM books ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	var books []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.CoverURL, &b.Description, &b.LinkURL, &b.CreatedAt); err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	return books, rows.Err()
}

// ListVideos returns the curated video catalog, newest first.
func (db *DB) ListVideos(ctx context.Context) ([]Video, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, youtube_id, thumbnail_url, description, created_at
		 FROM videos ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.YouTubeID, &v.ThumbnailURL, &v.Description, &v.CreatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// ReplaceCatalog swaps the book and video catalogs in one transaction.
func (db *DB) ReplaceCatalog(ctx context.Context, books []Book, videos []Video) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM books`); err != nil {
		return fmt.Errorf("failed to clear books: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM videos`); err != nil {
		return fmt.Errorf("failed to clear videos: %w", err)
	}
	for _, b := range books {
		if _, err := tx.Exec(ctx,
			`INSERT INTO books (title, author, cover_url, description, link_url) VALUES ($1, $2, $3, $4, $5)`,
			b.Title, b.Author, b.CoverURL, b.Description, b.LinkURL,
		); err != nil {
			return fmt.Errorf("failed to insert book %q: %w", b.Title, err)
		}
	}
	for _, v := range videos {
		if _, err := tx.Exec(ctx,
			`INSERT INTO videos (title, youtube_id, thumbnail_url, description) VALUES ($1, $2, $3, $4)`,
			v.Title, v.YouTubeID, v.ThumbnailURL, v.Description,
		); err != nil {
			return fmt.Errorf("failed to insert video %q: %w", v.Title, err)
		}
	}
	return tx.Commit(ctx)
}
