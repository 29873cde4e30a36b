package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileService_EnsureExists(t *testing.T) {
	ctx := context.Background()

	t.Run("uses placeholder email", func(t *testing.T) {
		store := newFakeStore()
		svc := NewProfileService(store)

		require.NoError(t, svc.EnsureExists(ctx, "user_1", ""))
		p, err := svc.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "user_1@clerk.local", p.Email)
	})

	t.Run("keeps existing row", func(t *testing.T) {
		store := newFakeStore()
		svc := NewProfileService(store)

		require.NoError(t, svc.EnsureExists(ctx, "user_1", "first@example.com"))
		require.NoError(t, svc.EnsureExists(ctx, "user_1", "second@example.com"))
		p, err := svc.Get(ctx, "user_1")
		require.NoError(t, err)
		assert.Equal(t, "first@example.com", p.Email)
	})

	t.Run("empty user id", func(t *testing.T) {
		svc := NewProfileService(newFakeStore())
		assert.Error(t, svc.EnsureExists(ctx, "", "a@example.com"))
	})
}

func TestProfileService_Get_Missing(t *testing.T) {
	svc := NewProfileService(newFakeStore())

	_, err := svc.Get(context.Background(), "nobody")
	var notFound *ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestProfileService_RequireAdmin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewProfileService(store)
	require.NoError(t, svc.EnsureExists(ctx, "member", ""))
	require.NoError(t, svc.EnsureExists(ctx, "admin", ""))
	store.profiles["admin"].IsAdmin = true

	var forbidden *ErrForbidden
	assert.True(t, errors.As(svc.RequireAdmin(ctx, "member", "create quiz"), &forbidden))
	assert.True(t, errors.As(svc.RequireAdmin(ctx, "ghost", "create quiz"), &forbidden))
	assert.NoError(t, svc.RequireAdmin(ctx, "admin", "create quiz"))
}
