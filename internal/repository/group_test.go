package repository

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupRepository_CreateAndGetBySlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Group{
		Title:       "Cats",
		Slug:        "cats",
		Description: "feline content",
	}))

	group, err := repo.GetBySlug(ctx, "cats")
	require.NoError(t, err)
	assert.Equal(t, "Cats", group.Title)

	_, err = repo.GetBySlug(ctx, "missing")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestGroupRepository_RejectsBadSlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	for _, slug := range []string{"Cats", "ab", "create"} {
		err := repo.Create(ctx, &models.Group{Title: "Bad", Slug: slug})
		require.Error(t, err, slug)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code, slug)
	}
}

func TestGroupRepository_DuplicateSlug(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGroupRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.Group{Title: "One", Slug: "dup"}))
	err := repo.Create(ctx, &models.Group{Title: "Two", Slug: "dup"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}
