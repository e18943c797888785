package server

import (
	"context"
	"errors"
	"strconv"

	"quill/internal/models"
	"quill/internal/repository"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPageSize = 9
	maxPageSize     = 100
)

// currentUserID returns the authenticated user ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) uint {
	if id, ok := c.Locals("userID").(uint); ok {
		return id
	}
	return 0
}

// parseUintParam parses a numeric route parameter.
func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, models.NewValidationError("Invalid " + name)
	}
	return uint(v), nil
}

// parseListQuery reads the shared startIndex/limit/order pagination params.
func parseListQuery(c *fiber.Ctx) repository.ListQuery {
	q := repository.ListQuery{
		Limit:      c.QueryInt("limit", defaultPageSize),
		StartIndex: c.QueryInt("startIndex", 0),
		Order:      c.Query("order", "desc"),
	}
	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	if q.StartIndex < 0 {
		q.StartIndex = 0
	}
	if q.Order != "asc" {
		q.Order = "desc"
	}
	return q
}

// respondServiceError maps an AppError to its HTTP status. Unknown errors
// become 500s.
func respondServiceError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case "NOT_FOUND":
			return models.RespondWithError(c, fiber.StatusNotFound, appErr)
		case "VALIDATION_ERROR":
			return models.RespondWithError(c, fiber.StatusBadRequest, appErr)
		case "UNAUTHORIZED":
			return models.RespondWithError(c, fiber.StatusForbidden, appErr)
		}
	}
	return models.RespondWithError(c, fiber.StatusInternalServerError, err)
}

// isAdminByUserID reads the admin flag from the database. Services use this
// as their authorization callback so token claims are never trusted for
// privileged operations.
func (s *Server) isAdminByUserID(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
