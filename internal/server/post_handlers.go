package server

import (
	"io"
	"strconv"
	"strings"

	"yatube/internal/media"
	"yatube/internal/models"
	"yatube/internal/service"

	"github.com/gofiber/fiber/v2"
)

// postForm is the bound create/edit form. Group carries the group ID as a
// string, empty for "no group".
type postForm struct {
	Text  string `json:"text" form:"text"`
	Group string `json:"group" form:"group"`
}

func (f postForm) groupID() (*uint, bool) {
	raw := strings.TrimSpace(f.Group)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil, false
	}
	groupID := uint(id)
	return &groupID, true
}

// PostDetail handles GET /posts/:id/
func (s *Server) PostDetail(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.respondError(c, err)
	}

	comments, err := s.commentRepo.ListByPost(c.Context(), postID)
	if err != nil {
		return s.respondError(c, err)
	}

	return render(c, tplPostDetail, fiber.Map{
		"post":     post,
		"comments": comments,
		"form":     fiber.Map{"text": ""},
	})
}

// PostCreateForm handles GET /create/
func (s *Server) PostCreateForm(c *fiber.Ctx) error {
	groups, err := s.groupRepo.List(c.Context(), 100, 0)
	if err != nil {
		return s.respondError(c, err)
	}

	return render(c, tplCreatePost, fiber.Map{
		"form":    fiber.Map{"text": "", "group": ""},
		"groups":  groups,
		"is_edit": false,
	})
}

// PostCreate handles POST /create/. Success redirects to the author's
// profile; a validation failure re-renders the form with HTTP 200 and no
// post is created.
func (s *Server) PostCreate(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}

	var form postForm
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return s.renderPostForm(c, form, false, 0, fiber.Map{"text": "Invalid form submission"})
	}

	groupID, ok := form.groupID()
	if !ok {
		return s.renderPostForm(c, form, false, 0, fiber.Map{"group": "Select a valid choice"})
	}

	imagePath, imgErr := s.saveUploadedImage(c)
	if imgErr != nil {
		return s.renderPostForm(c, form, false, 0, fiber.Map{"image": imgErr.Error()})
	}

	post, err := s.postService.CreatePost(c.Context(), service.CreatePostInput{
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  groupID,
		Image:    imagePath,
	})
	if err != nil {
		if appErr, isApp := err.(*models.AppError); isApp && appErr.Code == "VALIDATION_ERROR" {
			return s.renderPostForm(c, form, false, 0, fiber.Map{"text": appErr.Message})
		}
		return s.respondError(c, err)
	}

	return redirectToProfile(c, post.Author.Username)
}

// PostEditForm handles GET /posts/:id/edit/. Non-authors are sent back to
// the post detail page.
func (s *Server) PostEditForm(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.Context(), postID)
	if err != nil {
		return s.respondError(c, err)
	}
	if post.AuthorID != userID {
		return redirectToPost(c, postID)
	}

	group := ""
	if post.GroupID != nil {
		group = strconv.Itoa(int(*post.GroupID))
	}
	return s.renderPostForm(c, postForm{Text: post.Text, Group: group}, true, postID, nil)
}

// PostEdit handles POST /posts/:id/edit/. Only the author may edit; a
// non-author is redirected to the post detail with nothing mutated. A valid
// edit changes text, group and image only, then redirects to the detail page.
func (s *Server) PostEdit(c *fiber.Ctx) error {
	userID, err := s.mustUserID(c)
	if err != nil {
		return nil
	}
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var form postForm
	if parseErr := c.BodyParser(&form); parseErr != nil {
		return s.renderPostForm(c, form, true, postID, fiber.Map{"text": "Invalid form submission"})
	}

	groupID, ok := form.groupID()
	if !ok {
		return s.renderPostForm(c, form, true, postID, fiber.Map{"group": "Select a valid choice"})
	}

	imagePath, imgErr := s.saveUploadedImage(c)
	if imgErr != nil {
		return s.renderPostForm(c, form, true, postID, fiber.Map{"image": imgErr.Error()})
	}

	_, err = s.postService.UpdatePost(c.Context(), service.UpdatePostInput{
		PostID:   postID,
		AuthorID: userID,
		Text:     form.Text,
		GroupID:  groupID,
		Image:    imagePath,
	})
	if err != nil {
		if appErr, isApp := err.(*models.AppError); isApp {
			switch appErr.Code {
			case "FORBIDDEN":
				return redirectToPost(c, postID)
			case "VALIDATION_ERROR":
				return s.renderPostForm(c, form, true, postID, fiber.Map{"text": appErr.Message})
			}
		}
		return s.respondError(c, err)
	}

	return redirectToPost(c, postID)
}

// renderPostForm re-renders the create/edit form, with field errors when the
// submission was invalid. Validation failures stay HTTP 200.
func (s *Server) renderPostForm(c *fiber.Ctx, form postForm, isEdit bool, postID uint, errs fiber.Map) error {
	groups, err := s.groupRepo.List(c.Context(), 100, 0)
	if err != nil {
		return s.respondError(c, err)
	}

	context := fiber.Map{
		"form":    fiber.Map{"text": form.Text, "group": form.Group},
		"groups":  groups,
		"is_edit": isEdit,
	}
	if isEdit {
		context["post_id"] = postID
	}
	if len(errs) > 0 {
		context["errors"] = errs
	}
	return render(c, tplCreatePost, context)
}

// saveUploadedImage stores the optional "image" multipart field and returns
// its media-relative path. No file means an empty path and no error.
func (s *Server) saveUploadedImage(c *fiber.Ctx) (string, error) {
	fh, err := c.FormFile("image")
	if err != nil || fh == nil {
		return "", nil
	}

	f, err := fh.Open()
	if err != nil {
		return "", models.NewValidationError("Could not read uploaded file")
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(io.LimitReader(f, media.MaxUploadBytes+1))
	if err != nil {
		return "", models.NewValidationError("Could not read uploaded file")
	}

	return s.media.Save(fh.Filename, content)
}
