package repository

import (
	"context"

	"nexus/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByProduct(ctx context.Context, productID uint) ([]*models.Comment, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.applyAuthorName(r.db.WithContext(ctx)).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByProduct returns a product's comments in insertion order.
func (r *commentRepository) ListByProduct(ctx context.Context, productID uint) ([]*models.Comment, error) {
	var comments []*models.Comment
	err := r.applyAuthorName(r.db.WithContext(ctx)).
		Where("product_id = ?", productID).
		Order("timestamp ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []*models.Comment{}
	}
	return comments, nil
}

func (r *commentRepository) applyAuthorName(db *gorm.DB) *gorm.DB {
	return db.Select("comments.*, (SELECT first_name FROM users WHERE users.id = comments.user_id) AS user_name")
}
