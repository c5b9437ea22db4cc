// Package service implements the business logic layer for the application.
package service

import (
	"context"

	"yatube/internal/models"
	"yatube/internal/repository"
)

// PostsPerPage is the fixed page size of every feed.
const PostsPerPage = 10

// Page is one page of a feed plus the pagination facts templates render.
type Page struct {
	Posts       []*models.Post `json:"posts"`
	Number      int            `json:"number"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
	Count       int64          `json:"count"`
}

// Profile bundles a user's page with the author and follow facts shown on it.
type Profile struct {
	Author    *models.User
	Page      *Page
	Followers int64
	Following bool
}

type FeedService struct {
	postRepo   repository.PostRepository
	groupRepo  repository.GroupRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

func NewFeedService(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *FeedService {
	return &FeedService{
		postRepo:   postRepo,
		groupRepo:  groupRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// Index returns one page of the site-wide feed, newest first.
func (s *FeedService) Index(ctx context.Context, pageNumber int) (*Page, error) {
	return s.page(ctx, pageNumber,
		func() (int64, error) { return s.postRepo.Count(ctx) },
		func(limit, offset int) ([]*models.Post, error) { return s.postRepo.List(ctx, limit, offset) },
	)
}

// GroupFeed resolves the group by slug and returns one page of its posts.
func (s *FeedService) GroupFeed(ctx context.Context, slug string, pageNumber int) (*models.Group, *Page, error) {
	group, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	page, err := s.page(ctx, pageNumber,
		func() (int64, error) { return s.postRepo.CountByGroup(ctx, group.ID) },
		func(limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByGroup(ctx, group.ID, limit, offset)
		},
	)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ProfileFeed resolves the author by username and returns one page of their
// posts along with follower facts for the viewer.
func (s *FeedService) ProfileFeed(ctx context.Context, username string, pageNumber int, viewerID uint) (*Profile, error) {
	author, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, models.NewNotFoundError("User", username)
	}

	page, err := s.page(ctx, pageNumber,
		func() (int64, error) { return s.postRepo.CountByAuthor(ctx, author.ID) },
		func(limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		},
	)
	if err != nil {
		return nil, err
	}

	followers, err := s.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}
	following := false
	if viewerID != 0 {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &Profile{
		Author:    author,
		Page:      page,
		Followers: followers,
		Following: following,
	}, nil
}

// FollowFeed returns one page of posts by authors the user subscribes to.
// A user with no subscriptions gets an empty first page, not an error.
func (s *FeedService) FollowFeed(ctx context.Context, userID uint, pageNumber int) (*Page, error) {
	return s.page(ctx, pageNumber,
		func() (int64, error) { return s.postRepo.CountByFollowed(ctx, userID) },
		func(limit, offset int) ([]*models.Post, error) {
			return s.postRepo.ListByFollowed(ctx, userID, limit, offset)
		},
	)
}

// page assembles one feed page. Page numbers below one clamp to the first
// page; numbers past the end come back as an empty page rather than an error.
func (s *FeedService) page(
	ctx context.Context,
	number int,
	count func() (int64, error),
	list func(limit, offset int) ([]*models.Post, error),
) (*Page, error) {
	if number < 1 {
		number = 1
	}

	total, err := count()
	if err != nil {
		return nil, err
	}

	totalPages := int((total + PostsPerPage - 1) / PostsPerPage)
	if totalPages < 1 {
		totalPages = 1
	}

	offset := (number - 1) * PostsPerPage
	posts, err := list(PostsPerPage, offset)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*models.Post{}
	}

	return &Page{
		Posts:       posts,
		Number:      number,
		TotalPages:  totalPages,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
		Count:       total,
	}, nil
}
