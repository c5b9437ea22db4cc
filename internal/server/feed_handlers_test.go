package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"yatube/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexPagination(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		post := ts.createPost(t, author, nil, fmt.Sprintf("post %d", i))
		ts.backdate(t, post, base.Add(time.Duration(i)*time.Minute))
	}

	resp := ts.get(t, "/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "posts/index.html", page.Template)

	view := pageObj(t, page)
	assert.Len(t, view.Posts, 10)
	assert.Equal(t, 1, view.Number)
	assert.Equal(t, 2, view.TotalPages)
	assert.True(t, view.HasNext)
	assert.False(t, view.HasPrevious)
	assert.Equal(t, int64(13), view.Count)
	// Newest first.
	assert.Equal(t, "post 12", view.Posts[0].Text)
	assert.Equal(t, "post 3", view.Posts[9].Text)

	resp = ts.get(t, "/?page=2", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view = pageObj(t, decodePage(t, readBody(t, resp)))
	assert.Len(t, view.Posts, 3)
	assert.Equal(t, 2, view.Number)
	assert.False(t, view.HasNext)
	assert.True(t, view.HasPrevious)
	assert.Equal(t, "post 2", view.Posts[0].Text)
}

func TestIndexOutOfRangePage(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	ts.createPost(t, author, nil, "only one")

	resp := ts.get(t, "/?page=99", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := pageObj(t, decodePage(t, readBody(t, resp)))
	assert.Empty(t, view.Posts)
	assert.Equal(t, 99, view.Number)
	assert.Equal(t, 1, view.TotalPages)
	assert.True(t, view.HasPrevious)
}

func TestIndexCachedWithinWindow(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	posts := make([]*models.Post, 0, 3)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		post := ts.createPost(t, author, nil, fmt.Sprintf("post %d", i))
		ts.backdate(t, post, base.Add(time.Duration(i)*time.Minute))
		posts = append(posts, post)
	}

	first := readBody(t, ts.get(t, "/", ""))

	// A write inside the cache window must not change what readers see.
	require.NoError(t, ts.db.Delete(posts[0]).Error)
	cached := readBody(t, ts.get(t, "/", ""))
	assert.Equal(t, first, cached)

	// An explicit clear exposes the new state immediately.
	require.NoError(t, ts.srv.pages.Clear(context.Background()))
	fresh := readBody(t, ts.get(t, "/", ""))
	assert.NotEqual(t, first, fresh)
	view := pageObj(t, decodePage(t, fresh))
	assert.Equal(t, int64(2), view.Count)
}

func TestIndexCacheExpires(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	ts.createPost(t, author, nil, "before")

	first := pageObj(t, decodePage(t, readBody(t, ts.get(t, "/", ""))))
	assert.Equal(t, int64(1), first.Count)

	ts.createPost(t, author, nil, "after")
	stale := pageObj(t, decodePage(t, readBody(t, ts.get(t, "/", ""))))
	assert.Equal(t, int64(1), stale.Count)

	ts.mr.FastForward(21 * time.Second)
	refreshed := pageObj(t, decodePage(t, readBody(t, ts.get(t, "/", ""))))
	assert.Equal(t, int64(2), refreshed.Count)
}

func TestGroupPostsScopedToGroup(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	cats := ts.createGroup(t, "cats")
	dogs := ts.createGroup(t, "dogs")
	ts.createPost(t, author, cats, "about cats")
	ts.createPost(t, author, dogs, "about dogs")
	ts.createPost(t, author, nil, "ungrouped")

	resp := ts.get(t, "/group/cats/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "posts/group_list.html", page.Template)

	var group models.Group
	require.NoError(t, jsonUnmarshalContext(page, "group", &group))
	assert.Equal(t, "cats", group.Slug)

	view := pageObj(t, page)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "about cats", view.Posts[0].Text)
}

func TestGroupPostsUnknownSlug(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/group/missing/", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "core/404.html", page.Template)
}

func TestProfileShowsFollowState(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	viewer := ts.createUser(t, "reader")
	ts.createPost(t, author, nil, "mine")
	require.NoError(t, ts.db.Create(&models.Follow{UserID: viewer.ID, AuthorID: author.ID}).Error)

	resp := ts.get(t, "/profile/leo/", ts.token(t, viewer))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "posts/profile.html", page.Template)

	var profiled models.User
	require.NoError(t, jsonUnmarshalContext(page, "author", &profiled))
	assert.Equal(t, "leo", profiled.Username)

	var following bool
	require.NoError(t, jsonUnmarshalContext(page, "following", &following))
	assert.True(t, following)

	var followers int64
	require.NoError(t, jsonUnmarshalContext(page, "followers", &followers))
	assert.Equal(t, int64(1), followers)

	view := pageObj(t, page)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "mine", view.Posts[0].Text)
}

func TestProfileAnonymousViewer(t *testing.T) {
	ts := newTestServer(t)
	ts.createUser(t, "leo")

	resp := ts.get(t, "/profile/leo/", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))

	var following bool
	require.NoError(t, jsonUnmarshalContext(page, "following", &following))
	assert.False(t, following)
}

func TestProfileUnknownUser(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.get(t, "/profile/nobody/", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "core/404.html", page.Template)
}

func TestFollowIndexShowsSubscribedAuthorsOnly(t *testing.T) {
	ts := newTestServer(t)
	followed := ts.createUser(t, "leo")
	other := ts.createUser(t, "stranger")
	reader := ts.createUser(t, "reader")
	ts.createPost(t, followed, nil, "from leo")
	ts.createPost(t, other, nil, "from stranger")
	require.NoError(t, ts.db.Create(&models.Follow{UserID: reader.ID, AuthorID: followed.ID}).Error)

	resp := ts.get(t, "/follow/", ts.token(t, reader))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	page := decodePage(t, readBody(t, resp))
	assert.Equal(t, "posts/follow.html", page.Template)

	view := pageObj(t, page)
	require.Len(t, view.Posts, 1)
	assert.Equal(t, "from leo", view.Posts[0].Text)
}

func TestFollowIndexEmptyWithoutSubscriptions(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "leo")
	reader := ts.createUser(t, "reader")
	ts.createPost(t, author, nil, "unseen")

	resp := ts.get(t, "/follow/", ts.token(t, reader))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	view := pageObj(t, decodePage(t, readBody(t, resp)))
	assert.Empty(t, view.Posts)
	assert.Equal(t, int64(0), view.Count)
}
