package service

import (
	"context"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentRepoStub struct {
	createFn      func(context.Context, *models.Comment) error
	getByIDFn     func(context.Context, uint) (*models.Comment, error)
	listByPostFn  func(context.Context, uint) ([]*models.Comment, error)
	countByPostFn func(context.Context, uint) (int64, error)
	deleteFn      func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CountByPost(ctx context.Context, postID uint) (int64, error) {
	return s.countByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:      func(context.Context, *models.Comment) error { return nil },
		getByIDFn:     func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:  func(context.Context, uint) ([]*models.Comment, error) { return nil, nil },
		countByPostFn: func(context.Context, uint) (int64, error) { return 0, nil },
		deleteFn:      func(context.Context, uint) error { return nil },
	}
}

func TestCommentServiceAddToMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id uint) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", id)
	}
	comments := noopCommentRepo()
	comments.createFn = func(context.Context, *models.Comment) error {
		t.Fatal("a comment on a missing post must not reach the repository")
		return nil
	}

	svc := NewCommentService(comments, posts)
	_, err := svc.AddComment(context.Background(), AddCommentInput{PostID: 404, AuthorID: 1, Text: "hi"})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestCommentServiceAddRequiresText(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())

	_, err := svc.AddComment(context.Background(), AddCommentInput{PostID: 1, AuthorID: 1, Text: "  "})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func TestCommentServiceAddAttachesAuthorAndPost(t *testing.T) {
	var created *models.Comment
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, comment *models.Comment) error {
		comment.ID = 8
		created = comment
		return nil
	}
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		assert.EqualValues(t, 8, id)
		return created, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	comment, err := svc.AddComment(context.Background(), AddCommentInput{PostID: 2, AuthorID: 5, Text: "nice"})
	require.NoError(t, err)

	assert.EqualValues(t, 2, comment.PostID)
	assert.EqualValues(t, 5, comment.AuthorID)
	assert.Equal(t, "nice", comment.Text)
}

func TestCommentServiceDeleteByNonAuthor(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 1, AuthorID: 10}, nil
	}
	comments.deleteFn = func(context.Context, uint) error {
		t.Fatal("a non-author delete must not reach the repository")
		return nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	err := svc.DeleteComment(context.Background(), DeleteCommentInput{CommentID: 1, AuthorID: 11})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}
