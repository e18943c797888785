// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// ListQuery carries pagination and ordering for admin collection listings.
type ListQuery struct {
	Limit      int
	StartIndex int
	Order      string // "asc" or "desc" (default)
}

// orderClause orders by column with id as tiebreaker so pages stay stable
// when timestamps collide.
func (q ListQuery) orderClause(column string) string {
	if q.Order == "asc" {
		return column + " ASC, id ASC"
	}
	return column + " DESC, id DESC"
}

// lastMonthCutoff is the window used for the dashboard "last month" counters.
func lastMonthCutoff() time.Time {
	return time.Now().AddDate(0, 0, -30)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, q ListQuery) (users []models.User, total, lastMonth int64, err error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no user exists with the given email.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByUsername returns (nil, nil) when no user exists with the given username.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return err
	}
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *userRepository) List(ctx context.Context, q ListQuery) ([]models.User, int64, int64, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Order(q.orderClause("created_at")).
		Limit(q.Limit).
		Offset(q.StartIndex).
		Find(&users).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var lastMonth int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ?", lastMonthCutoff()).
		Count(&lastMonth).Error; err != nil {
		return nil, 0, 0, err
	}

	return users, total, lastMonth, nil
}
