package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo repository.UserRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type UpdateUserInput struct {
	ActorID        uint
	TargetID       uint
	Username       string
	Email          string
	Password       string
	ProfilePicture string
}

type DeleteUserInput struct {
	ActorID  uint
	TargetID uint
}

func NewUserService(
	userRepo repository.UserRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *UserService {
	return &UserService{userRepo: userRepo, isAdmin: isAdmin}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) ListUsers(ctx context.Context, q repository.ListQuery) ([]models.User, int64, int64, error) {
	return s.userRepo.List(ctx, q)
}

// UpdateUser applies a partial profile update. Only the account owner or an
// admin may update an account.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.ActorID != in.TargetID {
		if err := s.requireAdmin(ctx, in.ActorID, "You can only update your own account"); err != nil {
			return nil, err
		}
	}

	user, err := s.userRepo.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username is already taken")
		}
		user.Username = in.Username
	}
	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Email is already taken")
		}
		user.Email = in.Email
	}
	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Password = string(hashed)
	}
	if in.ProfilePicture != "" {
		user.ProfilePicture = in.ProfilePicture
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account. Only the account owner or an admin may
// delete it.
func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	if in.ActorID != in.TargetID {
		if err := s.requireAdmin(ctx, in.ActorID, "You can only delete your own account"); err != nil {
			return err
		}
	}

	if _, err := s.userRepo.GetByID(ctx, in.TargetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, in.TargetID)
}

func (s *UserService) requireAdmin(ctx context.Context, userID uint, message string) error {
	if s.isAdmin == nil {
		return models.NewUnauthorizedError(message)
	}
	admin, err := s.isAdmin(ctx, userID)
	if err != nil {
		return err
	}
	if !admin {
		return models.NewUnauthorizedError(message)
	}
	return nil
}
