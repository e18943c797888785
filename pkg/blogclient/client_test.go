package blogclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI is a minimal stand-in for the server: it issues the session
// cookie on sign-in, enforces it on mutations, and records every request
// it sees so tests can assert that flows short-circuit locally.
type fakeAPI struct {
	mu       sync.Mutex
	requests []string
	user     User
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{user: User{ID: 7, Username: "wanderer88", Email: "wanderer88@example.com"}}
}

func (f *fakeAPI) seen() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	copy(out, f.requests)
	return out
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	writeJSON := func(status int, v any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(v)
	}
	fail := func(status int, message string) {
		writeJSON(status, map[string]any{
			"success":    false,
			"statusCode": status,
			"message":    message,
		})
	}
	authed := func() bool {
		c, err := r.Cookie("access_token")
		return err == nil && c.Value == "token-7"
	}

	switch r.Method + " " + r.URL.Path {
	case "POST /api/auth/signin":
		var req SignInRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "hunter22" {
			fail(http.StatusUnauthorized, "Invalid credentials")
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "token-7", Path: "/", HttpOnly: true})
		writeJSON(http.StatusOK, f.user)

	case "POST /api/comment/create":
		if !authed() {
			fail(http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req CreateCommentRequest
		json.NewDecoder(r.Body).Decode(&req)
		writeJSON(http.StatusCreated, Comment{ID: 1, PostID: req.PostID, UserID: req.UserID, Content: req.Content, Likes: []uint{}})

	case "PUT /api/comment/likeComment/1":
		if !authed() {
			fail(http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSON(http.StatusOK, Comment{ID: 1, Likes: []uint{7}, NumberOfLikes: 1})

	case "DELETE /api/comment/deleteComment/1":
		if !authed() {
			fail(http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSON(http.StatusOK, map[string]string{"message": "Comment has been deleted"})

	case "PUT /api/user/update/7":
		if !authed() {
			fail(http.StatusUnauthorized, "Unauthorized")
			return
		}
		var req UpdateUserRequest
		json.NewDecoder(r.Body).Decode(&req)
		updated := f.user
		if req.Username != "" {
			updated.Username = req.Username
		}
		writeJSON(http.StatusOK, updated)

	case "DELETE /api/user/delete/7":
		if !authed() {
			fail(http.StatusUnauthorized, "Unauthorized")
			return
		}
		writeJSON(http.StatusOK, map[string]string{"message": "User has been deleted"})

	case "GET /api/post/getposts":
		writeJSON(http.StatusOK, PostsPage{Posts: []Post{{ID: 1, Slug: "hello-world"}}, TotalPosts: 1, LastMonthPosts: 1})

	default:
		fail(http.StatusNotFound, "Not found")
	}
}

func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeAPI) {
	t.Helper()
	api := newFakeAPI()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return client, api
}

func signIn(t *testing.T, c *Client) {
	t.Helper()
	_, err := c.SignIn(context.Background(), "wanderer88@example.com", "hunter22")
	require.NoError(t, err)
}

func TestClient_SignIn(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	user, err := c.SignIn(ctx, "wanderer88@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)

	snap := c.Session().Snapshot()
	require.True(t, snap.SignedIn())
	assert.Equal(t, "wanderer88", snap.CurrentUser.Username)
	assert.False(t, snap.Loading)

	// The cookie from sign-in authenticates the next request.
	comment, err := c.CreateComment(ctx, 1, "great read")
	require.NoError(t, err)
	assert.Equal(t, uint(7), comment.UserID)
}

func TestClient_SignInFailure(t *testing.T) {
	c, _ := newTestClient(t)

	_, err := c.SignIn(context.Background(), "wanderer88@example.com", "wrong")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.True(t, IsUnauthorized(err))

	snap := c.Session().Snapshot()
	assert.False(t, snap.SignedIn())
	assert.Error(t, snap.Err)
}

func TestClient_CommentValidationBlocksRequest(t *testing.T) {
	c, api := newTestClient(t)
	ctx := context.Background()
	signIn(t, c)
	before := len(api.seen())

	long := make([]byte, MaxCommentLength+1)
	for i := range long {
		long[i] = 'a'
	}

	_, err := c.CreateComment(ctx, 1, string(long))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = c.CreateComment(ctx, 1, "   ")
	assert.ErrorIs(t, err, ErrValidation)

	// Neither invalid comment reached the network.
	assert.Equal(t, before, len(api.seen()))
}

func TestClient_LikeRequiresSession(t *testing.T) {
	c, api := newTestClient(t)

	_, err := c.LikeComment(context.Background(), 1)
	assert.ErrorIs(t, err, ErrSignInRequired)
	assert.Empty(t, api.seen())

	signIn(t, c)
	comment, err := c.LikeComment(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, comment.NumberOfLikes)
}

func TestClient_ConfirmerGatesDeletes(t *testing.T) {
	approve := false
	c, api := newTestClient(t, WithConfirmer(func(action string) bool { return approve }))
	signIn(t, c)
	before := len(api.seen())

	err := c.DeleteComment(context.Background(), 1)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, before, len(api.seen()))

	approve = true
	require.NoError(t, c.DeleteComment(context.Background(), 1))
	assert.Equal(t, before+1, len(api.seen()))
}

func TestClient_UpdateUserRefreshesSession(t *testing.T) {
	c, _ := newTestClient(t)
	signIn(t, c)

	user, err := c.UpdateUser(context.Background(), 7, UpdateUserRequest{Username: "wanderer99"})
	require.NoError(t, err)
	assert.Equal(t, "wanderer99", user.Username)
	assert.Equal(t, "wanderer99", c.Session().Snapshot().CurrentUser.Username)
}

func TestClient_DeleteOwnAccountClearsSession(t *testing.T) {
	c, _ := newTestClient(t)
	signIn(t, c)

	require.NoError(t, c.DeleteUser(context.Background(), 7))
	assert.False(t, c.Session().Snapshot().SignedIn())
}

func TestClient_GetPostBySlug(t *testing.T) {
	c, _ := newTestClient(t)

	post, err := c.GetPostBySlug(context.Background(), "hello-world")
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
}

func TestPostQuery_QueryString(t *testing.T) {
	assert.Equal(t, "", PostQuery{}.queryString())

	q := PostQuery{Category: "golang", SearchTerm: "generics", StartIndex: 9, Limit: 9}
	assert.Equal(t, "?category=golang&limit=9&searchTerm=generics&startIndex=9", q.queryString())
}
