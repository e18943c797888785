package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPostComments handles GET /api/comment/getPostComments/:postId. Public,
// newest first.
func (s *Server) GetPostComments(c *fiber.Ctx) error {
	postID, err := parseUintParam(c, "postId")
	if err != nil {
		return respondServiceError(c, err)
	}

	comments, err := s.commentService.ListPostComments(c.UserContext(), postID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	return c.JSON(comments)
}

// GetComments handles GET /api/comment/getcomments. Admin dashboard listing
// across all posts.
func (s *Server) GetComments(c *fiber.Ctx) error {
	comments, total, lastMonth, err := s.commentService.ListComments(c.UserContext(), parseListQuery(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if comments == nil {
		comments = []models.Comment{}
	}

	return c.JSON(fiber.Map{
		"comments":          comments,
		"totalComments":     total,
		"lastMonthComments": lastMonth,
	})
}

// CreateComment handles POST /api/comment/create. The payload carries the
// author's userId; it must match the authenticated user.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Content string `json:"content"`
		PostID  uint   `json:"postId"`
		UserID  uint   `json:"userId"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.UserID != currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewUnauthorizedError("You are not allowed to create this comment"))
	}

	comment, err := s.commentService.CreateComment(c.UserContext(), service.CreateCommentInput{
		UserID:  req.UserID,
		PostID:  req.PostID,
		Content: req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// LikeComment handles PUT /api/comment/likeComment/:commentId. Toggles the
// acting user's like and returns the updated comment.
func (s *Server) LikeComment(c *fiber.Ctx) error {
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		return respondServiceError(c, err)
	}

	comment, err := s.commentService.ToggleLike(c.UserContext(), currentUserID(c), commentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// EditComment handles PUT /api/comment/editComment/:commentId.
func (s *Server) EditComment(c *fiber.Ctx) error {
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.UpdateComment(c.UserContext(), service.UpdateCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
		Content:   req.Content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/comment/deleteComment/:commentId.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseUintParam(c, "commentId")
	if err != nil {
		return respondServiceError(c, err)
	}

	if _, err := s.commentService.DeleteComment(c.UserContext(), service.DeleteCommentInput{
		UserID:    currentUserID(c),
		CommentID: commentID,
	}); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Comment has been deleted"})
}
