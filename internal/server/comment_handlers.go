package server

import (
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AddComment handles POST /posts/:id/comment/. Success and validation
// failure both land back on the post detail page; an empty comment simply
// saves nothing.
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form struct {
		Text string `json:"text" form:"text"`
	}
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return redirectToPost(c, postID)
	}

	_, err = s.commentService.AddComment(c.Context(), service.AddCommentInput{
		PostID:   postID,
		AuthorID: userID,
		Text:     form.Text,
	})
	if err != nil {
		if appErr, isApp := err.(*models.AppError); isApp && appErr.Code == "VALIDATION_ERROR" {
			return redirectToPost(c, postID)
		}
		return s.respondError(c, err)
	}

	return redirectToPost(c, postID)
}
