package server

import (
	"quill/internal/models"
	"quill/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetUsers handles GET /api/user/getusers. Admin dashboard listing.
// Password hashes never serialize (the model hides them from JSON).
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, total, lastMonth, err := s.userService.ListUsers(c.UserContext(), parseListQuery(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	if users == nil {
		users = []models.User{}
	}

	return c.JSON(fiber.Map{
		"users":          users,
		"totalUsers":     total,
		"lastMonthUsers": lastMonth,
	})
}

// GetUser handles GET /api/user/:userId. Public profile lookup used for
// comment author display.
func (s *Server) GetUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userService.GetUser(c.UserContext(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateUser handles PUT /api/user/update/:userId. Self or admin.
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return respondServiceError(c, err)
	}

	var req struct {
		Username       string `json:"username"`
		Email          string `json:"email"`
		Password       string `json:"password"`
		ProfilePicture string `json:"profilePicture"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(c.UserContext(), service.UpdateUserInput{
		ActorID:        currentUserID(c),
		TargetID:       userID,
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// DeleteUser handles DELETE /api/user/delete/:userId. Self or admin. When a
// user deletes their own account the session cookie is cleared so the stale
// token cannot linger in the browser.
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	userID, err := parseUintParam(c, "userId")
	if err != nil {
		return respondServiceError(c, err)
	}

	actorID := currentUserID(c)
	if err := s.userService.DeleteUser(c.UserContext(), service.DeleteUserInput{
		ActorID:  actorID,
		TargetID: userID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	if actorID == userID {
		s.clearSessionCookie(c)
	}
	return c.JSON(fiber.Map{"message": "User has been deleted"})
}
