package blogclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// GetPosts fetches a filtered window of posts with collection totals.
func (c *Client) GetPosts(ctx context.Context, q PostQuery) (*PostsPage, error) {
	var page PostsPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/post/getposts"+q.queryString(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPostBySlug fetches a single post by its slug.
func (c *Client) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	page, err := c.GetPosts(ctx, PostQuery{Slug: slug, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(page.Posts) == 0 {
		return nil, &APIError{StatusCode: http.StatusNotFound, Message: "Post not found"}
	}
	return &page.Posts[0], nil
}

// CreatePost publishes a post. Required fields are checked locally so an
// obviously incomplete form never hits the network.
func (c *Client) CreatePost(ctx context.Context, req CreatePostRequest) (*Post, error) {
	if !c.session.Snapshot().SignedIn() {
		return nil, ErrSignInRequired
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: title and content are required", ErrValidation)
	}

	var post Post
	if err := c.doJSON(ctx, http.MethodPost, "/api/post/create", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost edits a post owned by userID.
func (c *Client) UpdatePost(ctx context.Context, postID, userID uint, req UpdatePostRequest) (*Post, error) {
	if !c.session.Snapshot().SignedIn() {
		return nil, ErrSignInRequired
	}

	var post Post
	path := fmt.Sprintf("/api/post/updatepost/%d/%d", postID, userID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeletePost removes a post after the Confirmer approves.
func (c *Client) DeletePost(ctx context.Context, postID, userID uint) error {
	if !c.session.Snapshot().SignedIn() {
		return ErrSignInRequired
	}
	if err := c.confirm(fmt.Sprintf("delete post %d", postID)); err != nil {
		return err
	}

	path := fmt.Sprintf("/api/post/deletepost/%d/%d", postID, userID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// PostList returns a paginated view over posts matching q. Limit and
// StartIndex on q are ignored; the list manages its own windows.
func (c *Client) PostList(q PostQuery) *PaginatedList[Post] {
	return NewPaginatedList(c.pageSize, func(ctx context.Context, startIndex, limit int) ([]Post, error) {
		q := q
		q.StartIndex = startIndex
		q.Limit = limit
		page, err := c.GetPosts(ctx, q)
		if err != nil {
			return nil, err
		}
		return page.Posts, nil
	}, func(p Post) uint { return p.ID })
}
