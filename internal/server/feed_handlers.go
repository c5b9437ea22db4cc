package server

import (
	"github.com/gofiber/fiber/v2"
)

// Index handles GET /. Rendered pages are cached whole in Redis for the
// configured TTL; within the window readers get byte-identical content
// regardless of interim writes.
func (s *Server) Index(c *fiber.Ctx) error {
	page := parsePage(c)

	if body, ok := s.pages.Get(c.Context(), page); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(body)
	}

	feed, err := s.feedService.Index(c.Context(), page)
	if err != nil {
		return s.respondError(c, err)
	}

	body, err := renderBytes(tplIndex, fiber.Map{
		"page_obj": feed,
	})
	if err != nil {
		return s.respondError(c, err)
	}
	s.pages.Set(c.Context(), page, body)

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

// GroupPosts handles GET /group/:slug/
func (s *Server) GroupPosts(c *fiber.Ctx) error {
	group, feed, err := s.feedService.GroupFeed(c.Context(), c.Params("slug"), parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return render(c, tplGroupList, fiber.Map{
		"group":    group,
		"page_obj": feed,
	})
}

// Profile handles GET /profile/:username/
func (s *Server) Profile(c *fiber.Ctx) error {
	viewerID, _ := currentUserID(c)

	profile, err := s.feedService.ProfileFeed(c.Context(), c.Params("username"), parsePage(c), viewerID)
	if err != nil {
		return s.respondError(c, err)
	}

	return render(c, tplProfile, fiber.Map{
		"author":    profile.Author,
		"page_obj":  profile.Page,
		"following": profile.Following,
		"followers": profile.Followers,
	})
}

// FollowIndex handles GET /follow/ — posts by authors the requester follows.
func (s *Server) FollowIndex(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}

	feed, err := s.feedService.FollowFeed(c.Context(), userID, parsePage(c))
	if err != nil {
		return s.respondError(c, err)
	}

	return render(c, tplFollow, fiber.Map{
		"page_obj": feed,
	})
}

// ServeMedia handles GET /media/+ for uploaded post images.
func (s *Server) ServeMedia(c *fiber.Ctx) error {
	full, err := s.media.Resolve(c.Params("+"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.SendFile(full)
}
