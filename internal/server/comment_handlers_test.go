package server

import (
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComment(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	reader := ts.createUser(t, "reader")
	post := ts.createPost(t, author, nil, "commentable")

	form := url.Values{}
	form.Set("text", "great post")
	resp := ts.postForm(t, fmt.Sprintf("/posts/%d/comment/", post.ID), ts.token(t, reader), form)

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), resp.Header.Get("Location"))

	var comments []models.Comment
	require.NoError(t, ts.db.Where("post_id = ?", post.ID).Find(&comments).Error)
	require.Len(t, comments, 1)
	assert.Equal(t, "great post", comments[0].Text)
	assert.Equal(t, reader.ID, comments[0].AuthorID)
}

func TestAddCommentEmptyTextSavesNothing(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	post := ts.createPost(t, author, nil, "commentable")

	form := url.Values{}
	form.Set("text", "   ")
	resp := ts.postForm(t, fmt.Sprintf("/posts/%d/comment/", post.ID), ts.token(t, author), form)

	// Still lands back on the detail page, just without a new comment.
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), resp.Header.Get("Location"))

	var count int64
	require.NoError(t, ts.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddCommentAnonymousRedirectsToLogin(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	post := ts.createPost(t, author, nil, "commentable")

	path := fmt.Sprintf("/posts/%d/comment/", post.ID)
	form := url.Values{}
	form.Set("text", "anonymous shout")
	resp := ts.postForm(t, path, "", form)

	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login/?next="+path, resp.Header.Get("Location"))

	var count int64
	require.NoError(t, ts.db.Model(&models.Comment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAddCommentMissingPost(t *testing.T) {
	ts := newTestServer(t)
	reader := ts.createUser(t, "reader")

	form := url.Values{}
	form.Set("text", "into the void")
	resp := ts.postForm(t, "/posts/9999/comment/", ts.token(t, reader), form)

	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "core/404.html", page.Template)
}
