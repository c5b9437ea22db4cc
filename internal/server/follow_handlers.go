package server

import (
	"github.com/gofiber/fiber/v2"
)

// ProfileFollow handles GET /profile/:username/follow/. Subscribing twice to
// the same author is a silent no-op; either way the requester lands on the
// author's profile.
func (s *Server) ProfileFollow(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}

	author, err := s.followService.Follow(c.Context(), userID, c.Params("username"))
	if err != nil {
		return s.respondError(c, err)
	}

	return redirectToProfile(c, author.Username)
}

// ProfileUnfollow handles GET /profile/:username/unfollow/. Removing an
// absent subscription is a no-op.
func (s *Server) ProfileUnfollow(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}

	author, err := s.followService.Unfollow(c.Context(), userID, c.Params("username"))
	if err != nil {
		return s.respondError(c, err)
	}

	return redirectToProfile(c, author.Username)
}
