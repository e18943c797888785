package server

import (
	"net/http"
	"strings"
	"testing"

	"quill/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUser_PublicProfile(t *testing.T) {
	_, app := newTestServer(t)
	user, _ := signupUser(t, app, "quillauthor")

	resp := doJSON(t, app, http.MethodGet, "/api/user/"+itoa(user.ID), nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	decodeBody(t, resp, &body)
	assert.Equal(t, "quillauthor", body["username"])
	assert.NotContains(t, body, "password")

	missing := doJSON(t, app, http.MethodGet, "/api/user/9999", nil, nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestGetUsers_AdminOnly(t *testing.T) {
	s, app := newTestServer(t)
	admin, adminCookie := signupUser(t, app, "quilladmin")
	promoteAdmin(t, s, admin.ID)
	_, readerCookie := signupUser(t, app, "quillreader")
	signupUser(t, app, "quillthird")

	t.Run("non-admin is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/user/getusers", nil, readerCookie)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin listing carries totals and hides passwords", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodGet, "/api/user/getusers?limit=2", nil, adminCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Users          []map[string]any `json:"users"`
			TotalUsers     int64            `json:"totalUsers"`
			LastMonthUsers int64            `json:"lastMonthUsers"`
		}
		decodeBody(t, resp, &body)
		assert.Len(t, body.Users, 2)
		assert.EqualValues(t, 3, body.TotalUsers)
		assert.EqualValues(t, 3, body.LastMonthUsers)
		for _, u := range body.Users {
			assert.NotContains(t, u, "password")
		}
	})
}

func TestUpdateUser(t *testing.T) {
	s, app := newTestServer(t)
	admin, adminCookie := signupUser(t, app, "quilladmin")
	promoteAdmin(t, s, admin.ID)
	user, userCookie := signupUser(t, app, "quillauthor")

	t.Run("cannot update another user's account", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(admin.ID), fiber.Map{
			"username": "stolenname",
		}, userCookie)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("invalid username is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(user.ID), fiber.Map{
			"username": "Has Spaces",
		}, userCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("short password is rejected", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(user.ID), fiber.Map{
			"password": "12345",
		}, userCookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("owner updates profile and password", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(user.ID), fiber.Map{
			"username": "renamedquill",
			"password": "newsecret",
		}, userCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var updated models.User
		decodeBody(t, resp, &updated)
		assert.Equal(t, "renamedquill", updated.Username)

		// The new password signs in; the old one does not.
		signin := doJSON(t, app, http.MethodPost, "/api/auth/signin", fiber.Map{
			"email":    "quillauthor@example.com",
			"password": "newsecret",
		}, nil)
		assert.Equal(t, http.StatusOK, signin.StatusCode)

		stale := doJSON(t, app, http.MethodPost, "/api/auth/signin", fiber.Map{
			"email":    "quillauthor@example.com",
			"password": "hunter22",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, stale.StatusCode)
	})

	t.Run("admin updates another user's account", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(user.ID), fiber.Map{
			"profilePicture": "https://example.com/moderated.png",
		}, adminCookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	s, app := newTestServer(t)
	admin, adminCookie := signupUser(t, app, "quilladmin")
	promoteAdmin(t, s, admin.ID)

	t.Run("cannot delete another user's account", func(t *testing.T) {
		victim, _ := signupUser(t, app, "quillvictim")
		_, attackerCookie := signupUser(t, app, "quillrogue")
		resp := doJSON(t, app, http.MethodDelete, "/api/user/delete/"+itoa(victim.ID), nil, attackerCookie)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("self delete clears the session cookie", func(t *testing.T) {
		user, cookie := signupUser(t, app, "quillleaver")
		resp := doJSON(t, app, http.MethodDelete, "/api/user/delete/"+itoa(user.ID), nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, sessionCookie(t, resp).Value)

		missing := doJSON(t, app, http.MethodGet, "/api/user/"+itoa(user.ID), nil, nil)
		assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	})

	t.Run("admin deletes another account", func(t *testing.T) {
		target, _ := signupUser(t, app, "quilltarget")
		resp := doJSON(t, app, http.MethodDelete, "/api/user/delete/"+itoa(target.ID), nil, adminCookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestUpdateUser_TakenUsername(t *testing.T) {
	_, app := newTestServer(t)
	signupUser(t, app, "quillfirst")
	second, secondCookie := signupUser(t, app, "quillsecond")

	resp := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(second.ID), fiber.Map{
		"username": "quillfirst",
	}, secondCookie)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	long := doJSON(t, app, http.MethodPut, "/api/user/update/"+itoa(second.ID), fiber.Map{
		"username": strings.Repeat("a", 21),
	}, secondCookie)
	assert.Equal(t, http.StatusBadRequest, long.StatusCode)
}
