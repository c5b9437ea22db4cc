package server

import (
	"encoding/json"

	"yatube/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Template identifiers handed to the rendering collaborator. The server does
// not own templates; it emits the identifier plus a context mapping, and the
// default renderer serializes that contract as JSON.
const (
	tplIndex      = "posts/index.html"
	tplGroupList  = "posts/group_list.html"
	tplProfile    = "posts/profile.html"
	tplPostDetail = "posts/post_detail.html"
	tplCreatePost = "posts/create_post.html"
	tplFollow     = "posts/follow.html"
	tplNotFound   = "core/404.html"
)

// renderBytes serializes the render contract for a page.
func renderBytes(template string, context fiber.Map) ([]byte, error) {
	return json.Marshal(fiber.Map{
		"template": template,
		"context":  context,
	})
}

// render emits the template identifier and context for a page with HTTP 200.
func render(c *fiber.Ctx, template string, context fiber.Map) error {
	return renderStatus(c, fiber.StatusOK, template, context)
}

func renderStatus(c *fiber.Ctx, status int, template string, context fiber.Map) error {
	return c.Status(status).JSON(fiber.Map{
		"template": template,
		"context":  context,
	})
}

// NotFound renders the 404 page for any unrouted path.
func (s *Server) NotFound(c *fiber.Ctx) error {
	return renderStatus(c, fiber.StatusNotFound, tplNotFound, fiber.Map{
		"path": c.Path(),
	})
}

// respondError maps application errors onto the page-flow responses: missing
// resources render the 404 page, everything else falls back to the JSON error
// contract.
func (s *Server) respondError(c *fiber.Ctx, err error) error {
	if appErr, ok := err.(*models.AppError); ok {
		switch appErr.Code {
		case "NOT_FOUND":
			return s.NotFound(c)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, err)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		case "FORBIDDEN":
			return models.RespondWithError(c, fiber.StatusForbidden, err)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}
