package server

import (
	"context"
	"fmt"

	"github.com/jonathan/mindwell/internal/db"
)

// ProfileStore is the profile persistence the service needs.
type ProfileStore interface {
	EnsureProfile(ctx context.Context, userID, email string) error
	GetProfile(ctx context.Context, userID string) (*db.UserProfile, error)
}

// ProfileService keeps a local profile row for every authenticated caller.
type ProfileService struct {
	store ProfileStore
}

// NewProfileService creates a ProfileService.
func NewProfileService(store ProfileStore) *ProfileService {
	return &ProfileService{store: store}
}

// PlaceholderEmail is used when the token carries no email claim.
func PlaceholderEmail(userID string) string {
	return userID + "@clerk.local"
}

// EnsureExists creates the caller's profile on first sight. Existing rows are
// never modified.
func (s *ProfileService) EnsureExists(ctx context.Context, userID, email string) error {
	if userID == "" {
		return fmt.Errorf("user ID is required")
	}
	if email == "" {
		email = PlaceholderEmail(userID)
	}
	if err := s.store.EnsureProfile(ctx, userID, email); err != nil {
		return fmt.Errorf("failed to ensure profile: %w", err)
	}
	return nil
}

// Get returns the caller's profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*db.UserProfile, error) {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &ErrNotFound{Resource: "profile"}
	}
	return p, nil
}

// RequireAdmin returns ErrForbidden unless the caller is an admin.
func (s *ProfileService) RequireAdmin(ctx context.Context, userID, action string) error {
	p, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil || !p.IsAdmin {
		return &ErrForbidden{Action: action}
	}
	return nil
}
