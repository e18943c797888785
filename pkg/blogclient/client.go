package blogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultPageSize matches the server's default list window.
const DefaultPageSize = 9

// Confirmer is consulted before destructive actions. Returning false aborts
// the action with ErrCancelled before any request is sent. A nil Confirmer
// means every action proceeds.
type Confirmer func(action string) bool

// Client talks to a Quill API server. The session cookie issued at sign-in
// is carried automatically by the cookie jar, so one Client represents one
// authenticated principal. Client is safe for concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	session   *SessionStore
	confirmer Confirmer
	pageSize  int
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is added
// if the client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithConfirmer installs a confirmation hook for destructive actions.
func WithConfirmer(fn Confirmer) Option {
	return func(c *Client) { c.confirmer = fn }
}

// WithPageSize overrides the page size used by list helpers.
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// NewClient creates a Client for the API at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		session:  NewSessionStore(),
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{Timeout: 30 * time.Second}
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// Session exposes the client's session store for snapshots and guards.
func (c *Client) Session() *SessionStore {
	return c.session
}

// confirm runs the destructive-action hook. It returns ErrCancelled when
// the hook declines.
func (c *Client) confirm(action string) error {
	if c.confirmer != nil && !c.confirmer(action) {
		return ErrCancelled
	}
	return nil
}

// doJSON issues a request with an optional JSON body and decodes a 2xx
// response into out. Non-2xx responses are decoded into *APIError.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		data, _ := io.ReadAll(resp.Body)
		return decodeAPIError(resp.StatusCode, data)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// queryString builds the getposts query from a PostQuery, omitting zero
// values so the server applies its defaults.
func (q PostQuery) queryString() string {
	v := url.Values{}
	if q.UserID != 0 {
		v.Set("userId", strconv.FormatUint(uint64(q.UserID), 10))
	}
	if q.PostID != 0 {
		v.Set("postId", strconv.FormatUint(uint64(q.PostID), 10))
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Slug != "" {
		v.Set("slug", q.Slug)
	}
	if q.SearchTerm != "" {
		v.Set("searchTerm", q.SearchTerm)
	}
	if q.StartIndex != 0 {
		v.Set("startIndex", strconv.Itoa(q.StartIndex))
	}
	if q.Limit != 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Order != "" {
		v.Set("order", q.Order)
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// listQuery builds the shared limit/startIndex query string.
func listQuery(startIndex, limit int) string {
	v := url.Values{}
	if startIndex != 0 {
		v.Set("startIndex", strconv.Itoa(startIndex))
	}
	if limit != 0 {
		v.Set("limit", strconv.Itoa(limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
