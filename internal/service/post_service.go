// Package service contains the application's business logic, sitting
// between the HTTP handlers and the repositories.
package service

import (
	"context"

	"quill/internal/models"
	"quill/internal/repository"
)

type PostService struct {
	postRepo repository.PostRepository
	isAdmin  func(ctx context.Context, userID uint) (bool, error)
}

type CreatePostInput struct {
	UserID   uint
	Title    string
	Content  string
	Category string
	Image    string
}

type UpdatePostInput struct {
	UserID   uint
	PostID   uint
	Title    string
	Content  string
	Category string
	Image    string
}

type DeletePostInput struct {
	UserID uint
	PostID uint
}

func NewPostService(
	postRepo repository.PostRepository,
	isAdmin func(ctx context.Context, userID uint) (bool, error),
) *PostService {
	return &PostService{postRepo: postRepo, isAdmin: isAdmin}
}

const maxTitleLen = 300

func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}

	category := in.Category
	if category == "" {
		category = "uncategorized"
	}
	if !models.ValidCategory(category) {
		return nil, models.NewValidationError("Invalid category")
	}

	slug, err := uniqueSlug(ctx, s.postRepo.SlugExists, Slugify(in.Title))
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	image := in.Image
	if image == "" {
		image = models.DefaultPostImage
	}

	post := &models.Post{
		UserID:   in.UserID,
		Title:    in.Title,
		Content:  in.Content,
		Category: category,
		Image:    image,
		Slug:     slug,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, f repository.PostFilter) ([]models.Post, int64, int64, error) {
	if f.Category != "" && !models.ValidCategory(f.Category) {
		return nil, 0, 0, models.NewValidationError("Invalid category")
	}
	return s.postRepo.List(ctx, f)
}

func (s *PostService) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, slug)
}

func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.UserID != in.UserID {
		if err := s.requireAdmin(ctx, in.UserID, "You can only update your own posts"); err != nil {
			return nil, err
		}
	}

	if in.Title != "" && in.Title != post.Title {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		slug, err := uniqueSlug(ctx, s.postRepo.SlugExists, Slugify(in.Title))
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		post.Title = in.Title
		post.Slug = slug
	}
	if in.Content != "" {
		post.Content = in.Content
	}
	if in.Category != "" {
		if !models.ValidCategory(in.Category) {
			return nil, models.NewValidationError("Invalid category")
		}
		post.Category = in.Category
	}
	if in.Image != "" {
		post.Image = in.Image
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, in DeletePostInput) error {
	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return err
	}

	if post.UserID != in.UserID {
		if err := s.requireAdmin(ctx, in.UserID, "You can only delete your own posts"); err != nil {
			return err
		}
	}

	return s.postRepo.Delete(ctx, in.PostID)
}

func (s *PostService) requireAdmin(ctx context.Context, userID uint, message string) error {
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
