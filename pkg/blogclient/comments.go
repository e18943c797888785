package blogclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// MaxCommentLength mirrors the server-side content limit so over-long
// comments are rejected before a request is issued.
const MaxCommentLength = 200

// GetPostComments fetches all comments on a post, newest first. This is a
// public endpoint; no session is needed.
func (c *Client) GetPostComments(ctx context.Context, postID uint) ([]Comment, error) {
	var comments []Comment
	path := fmt.Sprintf("/api/comment/getPostComments/%d", postID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &comments); err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []Comment{}
	}
	return comments, nil
}

// GetComments fetches a window of all comments with totals. Admin only.
func (c *Client) GetComments(ctx context.Context, startIndex, limit int) (*CommentsPage, error) {
	var page CommentsPage
	if err := c.doJSON(ctx, http.MethodGet, "/api/comment/getcomments"+listQuery(startIndex, limit), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateComment posts a comment as the current principal. Content is
// validated locally first.
func (c *Client) CreateComment(ctx context.Context, postID uint, content string) (*Comment, error) {
	snap := c.session.Snapshot()
	if !snap.SignedIn() {
		return nil, ErrSignInRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	if len(content) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, MaxCommentLength)
	}

	req := CreateCommentRequest{Content: content, PostID: postID, UserID: snap.CurrentUser.ID}
	var comment Comment
	if err := c.doJSON(ctx, http.MethodPost, "/api/comment/create", req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// LikeComment toggles the principal's like on a comment and returns the
// refreshed comment. Without a session no request is issued; the caller
// should route to sign-in.
func (c *Client) LikeComment(ctx context.Context, commentID uint) (*Comment, error) {
	if !c.session.Snapshot().SignedIn() {
		return nil, ErrSignInRequired
	}

	var comment Comment
	path := fmt.Sprintf("/api/comment/likeComment/%d", commentID)
	if err := c.doJSON(ctx, http.MethodPut, path, nil, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// EditComment replaces a comment's content. Owner or admin.
func (c *Client) EditComment(ctx context.Context, commentID uint, content string) (*Comment, error) {
	if !c.session.Snapshot().SignedIn() {
		return nil, ErrSignInRequired
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrValidation)
	}
	if len(content) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment exceeds %d characters", ErrValidation, MaxCommentLength)
	}

	req := struct {
		Content string `json:"content"`
	}{Content: content}
	var comment Comment
	path := fmt.Sprintf("/api/comment/editComment/%d", commentID)
	if err := c.doJSON(ctx, http.MethodPut, path, req, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment after the Confirmer approves.
func (c *Client) DeleteComment(ctx context.Context, commentID uint) error {
	if !c.session.Snapshot().SignedIn() {
		return ErrSignInRequired
	}
	if err := c.confirm(fmt.Sprintf("delete comment %d", commentID)); err != nil {
		return err
	}

	path := fmt.Sprintf("/api/comment/deleteComment/%d", commentID)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}
