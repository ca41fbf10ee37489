package service

import (
	"context"
	"errors"

	"nexus/internal/models"
	"nexus/internal/repository"

	"gorm.io/gorm"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

type CreateCommentInput struct {
	ProductID uint
	// Username is optional. When empty the first account in the store is
	// used as the author, mirroring how product creation picks its seller.
	Username string
	Text     string
}

func NewCommentService(commentRepo repository.CommentRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Text == "" {
		return nil, models.NewFieldValidationError(map[string]string{
			"text": "This field is required.",
		})
	}

	if _, err := s.productRepo.GetByID(ctx, in.ProductID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", in.ProductID)
		}
		return nil, err
	}

	var author *models.User
	var err error
	if in.Username != "" {
		author, err = s.userRepo.FindByUsername(ctx, in.Username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("unknown username " + in.Username)
			}
			return nil, err
		}
	} else {
		author, err = s.userRepo.First(ctx)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	comment := &models.Comment{
		ProductID: in.ProductID,
		UserID:    author.ID,
		Text:      in.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, productID uint) ([]*models.Comment, error) {
	if _, err := s.productRepo.GetByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", productID)
		}
		return nil, err
	}
	return s.commentRepo.ListByProduct(ctx, productID)
}
