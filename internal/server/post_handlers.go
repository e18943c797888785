package server

import (
	"errors"
	"time"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/post/getposts. Public. Supports the dashboard
// and search filters; always returns the window plus total and last-month
// counts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	filter := repository.PostFilter{
		Category:   c.Query("category"),
		Slug:       c.Query("slug"),
		SearchTerm: c.Query("searchTerm"),
	}
	if v := c.QueryInt("userId", 0); v > 0 {
		filter.UserID = uint(v)
	}
	if v := c.QueryInt("postId", 0); v > 0 {
		filter.PostID = uint(v)
	}

	q := parseListQuery(c)
	filter.Limit = q.Limit
	filter.StartIndex = q.StartIndex
	filter.Order = q.Order

	// A plain slug lookup is the single-post page; serve it through the
	// cache instead of the list query.
	if filter.Slug != "" && filter.SearchTerm == "" && filter.Category == "" &&
		filter.UserID == 0 && filter.PostID == 0 {
		return s.getPostBySlug(c, filter.Slug)
	}

	posts, total, lastMonth, err := s.postService.ListPosts(c.UserContext(), filter)
	if err != nil {
		return respondServiceError(c, err)
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return c.JSON(fiber.Map{
		"posts":          posts,
		"totalPosts":     total,
		"lastMonthPosts": lastMonth,
	})
}

// getPostBySlug answers a slug-filtered getposts request with the list
// envelope. Unknown slugs return an empty window, not a 404, matching the
// list behavior the frontend expects.
func (s *Server) getPostBySlug(c *fiber.Ctx, slug string) error {
	post, err := s.postService.GetPostBySlug(c.UserContext(), slug)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return c.JSON(fiber.Map{
				"posts":          []models.Post{},
				"totalPosts":     int64(0),
				"lastMonthPosts": int64(0),
			})
		}
		return respondServiceError(c, err)
	}

	var lastMonth int64
	if post.CreatedAt.After(time.Now().AddDate(0, 0, -30)) {
		lastMonth = 1
	}
	return c.JSON(fiber.Map{
		"posts":          []models.Post{*post},
		"totalPosts":     int64(1),
		"lastMonthPosts": lastMonth,
	})
}

// CreatePost handles POST /api/post/create. Admin only (enforced by route
// middleware).
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:   currentUserID(c),
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/post/updatepost/:postId/:userId. The userId
// path segment names the post author; ownership is checked against the
// authenticated user, not the URL.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Title    string `json:"title"`
		Content  string `json:"content"`
		Category string `json:"category"`
		Image    string `json:"image"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		UserID:   currentUserID(c),
		PostID:   postID,
		Title:    req.Title,
		Content:  req.Content,
		Category: req.Category,
		Image:    req.Image,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/post/deletepost/:postId/:userId.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := s.postService.DeletePost(c.UserContext(), service.DeletePostInput{
		UserID: currentUserID(c),
		PostID: postID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
