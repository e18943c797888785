package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a full server against an in-memory SQLite database
// and a miniredis instance.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { _ = sqlDB.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		JWTSecret: "test-secret-key-for-signing-tokens",
		Port:      "0",
		DBDriver:  "sqlite",
		Env:       "test",
	}

	s, err := NewServerWithDeps(cfg, db, rdb)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func itoaPath(prefix string, id uint) string {
	return prefix + itoa(id)
}

// newJSONRequest builds a request with a JSON body but leaves headers and
// cookies to the caller.
func newJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// doJSON issues a request with a JSON body and optional session cookie.
func doJSON(t *testing.T, app *fiber.App, method, target string, body any, cookie *http.Cookie) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// sessionCookie extracts the access_token cookie from a response.
func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == accessTokenCookie {
			return ck
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// signupUser registers an account through the API and returns it with its
// session cookie.
func signupUser(t *testing.T, app *fiber.App, username string) (*models.User, *http.Cookie) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", fiber.Map{
		"username": username,
		"email":    fmt.Sprintf("%s@example.com", username),
		"password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	var user models.User
	decodeBody(t, resp, &user)
	return &user, cookie
}

// promoteAdmin flips the admin flag directly in the database.
func promoteAdmin(t *testing.T, s *Server, userID uint) {
	t.Helper()
	require.NoError(t, s.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_admin", true).Error)
}
