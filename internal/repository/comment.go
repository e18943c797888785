package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	ListByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	List(ctx context.Context, q ListQuery) (comments []models.Comment, total, lastMonth int64, err error)
	ToggleLike(ctx context.Context, userID, commentID uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return err
	}
	comment.Likes = []uint{}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	if err := r.attachLikes(ctx, []*models.Comment{&comment}); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return err
	}
	// Like rows are hard-deleted with their comment.
	return r.db.WithContext(ctx).Where("comment_id = ?", id).Delete(&models.CommentLike{}).Error
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if err := r.attachLikesSlice(ctx, comments); err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) List(ctx context.Context, q ListQuery) ([]models.Comment, int64, int64, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Order(q.orderClause("created_at")).
		Limit(q.Limit).
		Offset(q.StartIndex).
		Find(&comments).Error
	if err != nil {
		return nil, 0, 0, err
	}
	if err := r.attachLikesSlice(ctx, comments); err != nil {
		return nil, 0, 0, err
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).Count(&total).Error; err != nil {
		return nil, 0, 0, err
	}

	var lastMonth int64
	if err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("created_at >= ?", lastMonthCutoff()).
		Count(&lastMonth).Error; err != nil {
		return nil, 0, 0, err
	}

	return comments, total, lastMonth, nil
}

// ToggleLike inserts a like row for (userID, commentID), or removes it when
// one already exists. The unique pair index makes the insert race-safe.
func (r *commentRepository) ToggleLike(ctx context.Context, userID, commentID uint) error {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CommentLike{UserID: userID, CommentID: commentID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}
	// Row already existed: this toggle is an unlike.
	return r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		Delete(&models.CommentLike{}).Error
}

func (r *commentRepository) attachLikesSlice(ctx context.Context, comments []models.Comment) error {
	ptrs := make([]*models.Comment, len(comments))
	for i := range comments {
		ptrs[i] = &comments[i]
	}
	return r.attachLikes(ctx, ptrs)
}

// attachLikes populates the derived Likes and NumberOfLikes fields in one query.
func (r *commentRepository) attachLikes(ctx context.Context, comments []*models.Comment) error {
	if len(comments) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.ID)
	}

	var likes []models.CommentLike
	if err := r.db.WithContext(ctx).
		Where("comment_id IN ?", ids).
		Order("created_at ASC").
		Find(&likes).Error; err != nil {
		return err
	}

	byComment := make(map[uint][]uint, len(comments))
	for _, l := range likes {
		byComment[l.CommentID] = append(byComment[l.CommentID], l.UserID)
	}

	for _, c := range comments {
		c.Likes = byComment[c.ID]
		if c.Likes == nil {
			c.Likes = []uint{}
		}
		c.NumberOfLikes = len(c.Likes)
	}
	return nil
}
