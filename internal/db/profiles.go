package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

const profileColumns = `id, email, display_name, consent_settings, baseline_completed, is_admin, created_at, updated_at`

func scanProfile(row pgx.Row) (*UserProfile, error) {
	var p UserProfile
	if err := row.Scan(&p.ID, &p.Email, &p.DisplayName, &p.ConsentSettings,
		&p.BaselineCompleted, &p.IsAdmin, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// EnsureProfile creates the profile row for userID if it does not exist yet.
// Existing rows are left untouched.
func (db *DB) EnsureProfile(ctx context.Context, userID, email string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_profiles (id, email, consent_settings)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO NOTHING`,
		userID, email, DefaultConsentSettings(),
	)
	if err != nil {
		return fmt.Errorf("failed to ensure profile: %w", err)
	}
	return nil
}

// GetProfile retrieves a profile by user ID. Returns nil, nil when absent.
func (db *DB) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return p, nil
}

// UpsertConsent stores consent settings, creating the profile if needed.
func (db *DB) UpsertConsent(ctx context.Context, userID, email string, consent ConsentSettings) (*UserProfile, error) {
	p, err := scanProfile(db.pool.QueryRow(ctx,
		`INSERT INTO user_profiles (id, email, consent_settings)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (id) DO UPDATE SET consent_settings = EXCLUDED.consent_settings, updated_at = NOW()
		 RETURNING `+profileColumns,
		userID, email, consent,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to update consent: %w", err)
	}
	return p, nil
}

// SetBaselineCompleted marks the onboarding baseline as done.
func (db *DB) SetBaselineCompleted(ctx context.Context, userID string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE user_profiles SET baseline_completed = TRUE, updated_at = NOW() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set baseline status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("profile not found: %s", userID)
	}
	return nil
}

// UpsertProfile creates or updates a profile with an explicit display name
// and admin flag. Used by seeding.
func (db *DB) UpsertProfile(ctx context.Context, userID, email, displayName string, isAdmin bool) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO user_profiles (id, email, display_name, consent_settings, is_admin)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (id) DO UPDATE SET display_name = EXCLUDED.display_name, is_admin = EXCLUDED.is_admin, updated_at = NOW()`,
		userID, email, displayName, DefaultConsentSettings(), isAdmin,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert profile: %w", err)
	}
	return nil
}
