package repository

import (
	"context"

	"nexus/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	// GetByID resolves any existing product, active or not; deactivated
	// listings remain retrievable by id.
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	// ListActive returns active products ordered newest first.
	ListActive(ctx context.Context) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := r.applyProductDetails(r.db.WithContext(ctx)).
		First(&product, id).Error
	if err != nil {
		return nil, err
	}
	if product.Comments == nil {
		product.Comments = []models.Comment{}
	}
	return &product, nil
}

func (r *productRepository) ListActive(ctx context.Context) ([]*models.Product, error) {
	var products []*models.Product
	err := r.applyProductDetails(r.db.WithContext(ctx)).
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.Comments == nil {
			p.Comments = []models.Comment{}
		}
	}
	return products, nil
}

// applyProductDetails adds the seller-name subquery and the ordered comments
// preload in a single query pass. Comment authors are projected the same way.
func (r *productRepository) applyProductDetails(db *gorm.DB) *gorm.DB {
	return db.
		Select("products.*, (SELECT first_name FROM users WHERE users.id = products.seller_id) AS seller_name").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.
				Select("comments.*, (SELECT first_name FROM users WHERE users.id = comments.user_id) AS user_name").
				Order("comments.timestamp ASC, comments.id ASC")
		})
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
}

// Delete hard-deletes the product; its comments go with it via FK cascade.
// The seller account is untouched.
func (r *productRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}
