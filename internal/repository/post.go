package repository

import (
	"context"
	"errors"
	"strings"

	"quill/internal/cache"
	"quill/internal/models"

	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Zero values mean "no constraint".
type PostFilter struct {
	UserID     uint
	PostID     uint
	Category   string
	Slug       string
	SearchTerm string
	Limit      int
	StartIndex int
	Order      string // "asc" or "desc" by updated_at (default desc)
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f PostFilter) (posts []models.Post, total, lastMonth int64, err error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidatePostsList(ctx)
	}
	return err
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

// GetBySlug serves single-post reads through the cache; slug pages are the
// hottest read path and tolerate PostTTL staleness.
func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostSlugKey(slug), &post, cache.PostTTL, func() error {
		return r.db.WithContext(ctx).Where("slug = ?", slug).First(&post).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slug)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Where("slug = ?", slug).
		Count(&count).Error
	return count > 0, err
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	// A title change renames the slug; the entry cached under the old slug
	// must go too, or it would serve the pre-update post until PostTTL.
	var prev models.Post
	prevErr := r.db.WithContext(ctx).Select("slug").First(&prev, post.ID).Error

	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.ID, post.Slug)
	if prevErr == nil && prev.Slug != post.Slug {
		cache.Invalidate(ctx, cache.PostSlugKey(prev.Slug))
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, id, post.Slug)
	return nil
}

func (r *postRepository) List(ctx context.Context, f PostFilter) ([]models.Post, int64, int64, error) {
	q := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f)

	var posts []models.Post
	// id is the tiebreaker so pages stay stable when timestamps collide.
	order := "updated_at DESC, id DESC"
	if f.Order == "asc" {
		order = "updated_at ASC, id ASC"
	}
	err := q.Order(order).
		Limit(f.Limit).
		Offset(f.StartIndex).
		Find(&posts).Error
	if err != nil {
		return nil, 0, 0, err
	}

	var total int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var lastMonth int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Post{}), f).
		Where("created_at >= ?", lastMonthCutoff()).
		Count(&lastMonth).Error; err != nil {
		return nil, 0, 0, err
	}

	return posts, total, lastMonth, nil
}

// applyFilter builds the WHERE clause shared by the page query and both counts.
// LOWER(...) LIKE keeps the search portable between Postgres and SQLite.
func (r *postRepository) applyFilter(db *gorm.DB, f PostFilter) *gorm.DB {
	if f.UserID != 0 {
		db = db.Where("user_id = ?", f.UserID)
	}
	if f.PostID != 0 {
		db = db.Where("id = ?", f.PostID)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Slug != "" {
		db = db.Where("slug = ?", f.Slug)
	}
	if f.SearchTerm != "" {
		like := "%" + strings.ToLower(f.SearchTerm) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", like, like)
	}
	return db
}
