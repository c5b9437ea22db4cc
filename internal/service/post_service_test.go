package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostServiceCreateRequiresText(t *testing.T) {
	svc := NewPostService(noopPostRepo())

	for _, text := range []string{"", "   ", "\n\t"} {
		_, err := svc.CreatePost(context.Background(), CreatePostInput{AuthorID: 1, Text: text})
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	}
}

func TestPostServiceCreateSetsAuthorAndGroup(t *testing.T) {
	groupID := uint(3)
	var created *models.Post

	posts := noopPostRepo()
	posts.createFn = func(_ context.Context, post *models.Post) error {
		post.ID = 42
		created = post
		return nil
	}
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		assert.EqualValues(t, 42, id)
		return created, nil
	}

	svc := NewPostService(posts)
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: 7,
		Text:     "hello",
		GroupID:  &groupID,
		Image:    "posts/cat.jpg",
	})
	require.NoError(t, err)

	assert.EqualValues(t, 7, post.AuthorID)
	require.NotNil(t, post.GroupID)
	assert.EqualValues(t, 3, *post.GroupID)
	assert.Equal(t, "posts/cat.jpg", post.Image)
}

func TestPostServiceUpdateByNonAuthor(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 10, Text: "original"}, nil
	}
	posts.updateFn = func(context.Context, *models.Post) error {
		t.Fatal("a non-author edit must not reach the repository")
		return nil
	}

	svc := NewPostService(posts)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 1, AuthorID: 11, Text: "hijack"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func TestPostServiceUpdateReplacesTextAndGroup(t *testing.T) {
	oldGroup := uint(1)
	var saved *models.Post

	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		if saved != nil {
			return saved, nil
		}
		return &models.Post{ID: 1, AuthorID: 10, Text: "original", GroupID: &oldGroup, Image: "posts/old.jpg"}, nil
	}
	posts.updateFn = func(_ context.Context, post *models.Post) error {
		saved = post
		return nil
	}

	svc := NewPostService(posts)
	post, err := svc.UpdatePost(context.Background(), UpdatePostInput{
		PostID:   1,
		AuthorID: 10,
		Text:     "edited",
		GroupID:  nil,
	})
	require.NoError(t, err)

	assert.Equal(t, "edited", post.Text)
	assert.Nil(t, post.GroupID, "an empty group choice detaches the post")
	assert.Equal(t, "posts/old.jpg", post.Image, "a blank upload keeps the old image")
	assert.EqualValues(t, 10, post.AuthorID)
}

func TestPostServiceUpdateMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}

	svc := NewPostService(posts)
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{PostID: 404, AuthorID: 1, Text: "x"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostServiceDeleteByNonAuthor(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) {
		return &models.Post{ID: 1, AuthorID: 10}, nil
	}
	posts.deleteFn = func(context.Context, uint) error {
		t.Fatal("a non-author delete must not reach the repository")
		return nil
	}

	svc := NewPostService(posts)
	err := svc.DeletePost(context.Background(), DeletePostInput{PostID: 1, AuthorID: 11})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}
