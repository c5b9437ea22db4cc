package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes the user to the named author. Repeating an existing
// subscription is a silent no-op.
func (s *FollowService) Follow(ctx context.Context, userID uint, authorUsername string) (*models.User, error) {
	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Create(ctx, &models.Follow{UserID: userID, AuthorID: author.ID}); err != nil {
		return nil, err
	}
	return author, nil
}

// Unfollow removes the subscription. Unfollowing an author the user never
// followed is a no-op, not an error.
func (s *FollowService) Unfollow(ctx context.Context, userID uint, authorUsername string) (*models.User, error) {
	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return nil, err
	}
	if err := s.followRepo.Delete(ctx, userID, author.ID); err != nil {
		return nil, err
	}
	return author, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, userID uint, authorUsername string) (bool, error) {
	author, err := s.resolveAuthor(ctx, authorUsername)
	if err != nil {
		return false, err
	}
	return s.followRepo.Exists(ctx, userID, author.ID)
}

func (s *FollowService) resolveAuthor(ctx context.Context, username string) (*models.User, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}
	return author, nil
}
