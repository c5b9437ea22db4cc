package server

import (
	"errors"
	"strconv"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePage extracts the ?page= query parameter. Anything below one clamps
// to the first page, matching the feed assembler.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it renders the 404 page and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = s.NotFound(c)
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// currentUserID returns the requester's ID when the auth middleware resolved one.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("userID").(uint)
	return userID, ok
}

// mustUserID returns the requester's ID on routes behind LoginRequired.
// A missing ID there means a route wiring mistake, answered with 401.
func (s *Server) mustUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := currentUserID(c)
	if !ok {
		_ = models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Authorization required"))
		return 0, errResponseWritten
	}
	return userID, nil
}

func redirectToProfile(c *fiber.Ctx, username string) error {
	return c.Redirect("/profile/"+username+"/", fiber.StatusFound)
}

func redirectToPost(c *fiber.Ctx, id uint) error {
	return c.Redirect("/posts/"+strconv.Itoa(int(id))+"/", fiber.StatusFound)
}
