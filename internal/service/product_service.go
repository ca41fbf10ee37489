// Package service holds the business rules between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"nexus/internal/models"
	"nexus/internal/observability"
	"nexus/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProductService struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
}

// ProductInput carries the writable product fields. Pointers distinguish
// "absent" from zero values so the same shape serves both full and partial
// updates. Seller and creation timestamp are never writable.
type ProductInput struct {
	Title       *string          `json:"title"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	RentPrice   *decimal.Decimal `json:"rent_price"`
	CanRent     *bool            `json:"can_rent"`
	Image       *string          `json:"image"`
	Category    *string          `json:"category"`
	Condition   *string          `json:"condition"`
	Specs       map[string]any   `json:"specs"`
	IsActive    *bool            `json:"is_active"`
}

type UpdateProductInput struct {
	ProductID uint
	// Partial is true for PATCH: only provided fields change. A full update
	// (PUT) additionally requires the whole writable field set.
	Partial bool
	Fields  ProductInput
}

func NewProductService(productRepo repository.ProductRepository, userRepo repository.UserRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

// requiredProductFields are the fields a create or full update must carry.
var requiredProductFields = []string{"title", "description", "price", "image", "category", "condition"}

// validateProductInput checks required fields (unless partial) and the
// validity of whatever was provided. Missing rent_price/can_rent cross-checks
// are deliberate: a non-rentable product may carry a rent price.
func validateProductInput(in ProductInput, partial bool) *models.AppError {
	fields := map[string]string{}

	if !partial {
		present := map[string]bool{
			"title":       in.Title != nil,
			"description": in.Description != nil,
			"price":       in.Price != nil,
			"image":       in.Image != nil,
			"category":    in.Category != nil,
			"condition":   in.Condition != nil,
		}
		for _, name := range requiredProductFields {
			if !present[name] {
				fields[name] = "This field is required."
			}
		}
	}

	if in.Title != nil && *in.Title == "" {
		fields["title"] = "This field may not be blank."
	}
	if in.Description != nil && *in.Description == "" {
		fields["description"] = "This field may not be blank."
	}
	if in.Image != nil && *in.Image == "" {
		fields["image"] = "This field may not be blank."
	}
	if in.Price != nil && in.Price.IsNegative() {
		fields["price"] = "Ensure this value is greater than or equal to 0."
	}
	if in.Category != nil && !models.ValidCategory(*in.Category) {
		fields["category"] = fmt.Sprintf("%q is not a valid choice.", *in.Category)
	}
	if in.Condition != nil && !models.ValidCondition(*in.Condition) {
		fields["condition"] = fmt.Sprintf("%q is not a valid choice.", *in.Condition)
	}

	if len(fields) > 0 {
		return models.NewFieldValidationError(fields)
	}
	return nil
}

// CreateProduct validates the payload, assigns the placeholder seller (the
// first account in the store — there is no caller identity to use), and
// persists the listing.
func (s *ProductService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	span, ctx := observability.NewSpan(ctx, "ProductService.CreateProduct")
	defer span.End()

	if err := validateProductInput(in, false); err != nil {
		span.SetError(err)
		return nil, err
	}

	seller, err := s.userRepo.First(ctx)
	if err != nil {
		err := models.NewInternalError(fmt.Errorf("no seller account available: %w", err))
		span.SetError(err)
		return nil, err
	}

	product := &models.Product{
		SellerID:    seller.ID,
		Title:       *in.Title,
		Description: *in.Description,
		Price:       *in.Price,
		Image:       *in.Image,
		Category:    *in.Category,
		Condition:   *in.Condition,
		IsActive:    true,
	}
	if in.RentPrice != nil {
		product.RentPrice = decimal.NewNullDecimal(*in.RentPrice)
	}
	if in.CanRent != nil {
		product.CanRent = *in.CanRent
	}
	if in.Specs != nil {
		product.Specs = datatypes.JSONMap(in.Specs)
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.Int("product.id", int(product.ID)))

	return s.productRepo.GetByID(ctx, product.ID)
}

func (s *ProductService) ListProducts(ctx context.Context) ([]*models.Product, error) {
	span, ctx := observability.NewSpan(ctx, "ProductService.ListProducts")
	defer span.End()

	products, err := s.productRepo.ListActive(ctx)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.AddAttributes(attribute.Int("product.count", len(products)))
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	span, ctx := observability.NewSpan(ctx, "ProductService.GetProduct")
	defer span.End()
	span.AddAttributes(attribute.Int("product.id", int(id)))

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", id)
		}
		span.SetError(err)
		return nil, err
	}
	return product, nil
}

// UpdateProduct applies a full (PUT) or partial (PATCH) update. The seller
// and creation timestamp never change; is_active is writable, which is how
// listings are soft-deleted.
func (s *ProductService) UpdateProduct(ctx context.Context, in UpdateProductInput) (*models.Product, error) {
	span, ctx := observability.NewSpan(ctx, "ProductService.UpdateProduct")
	defer span.End()
	span.AddAttributes(
		attribute.Int("product.id", int(in.ProductID)),
		attribute.Bool("product.partial_update", in.Partial),
	)

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", in.ProductID)
		}
		span.SetError(err)
		return nil, err
	}

	if err := validateProductInput(in.Fields, in.Partial); err != nil {
		span.SetError(err)
		return nil, err
	}

	f := in.Fields
	if f.Title != nil {
		product.Title = *f.Title
	}
	if f.Description != nil {
		product.Description = *f.Description
	}
	if f.Price != nil {
		product.Price = *f.Price
	}
	if f.RentPrice != nil {
		product.RentPrice = decimal.NewNullDecimal(*f.RentPrice)
	}
	if f.CanRent != nil {
		product.CanRent = *f.CanRent
	}
	if f.Image != nil {
		product.Image = *f.Image
	}
	if f.Category != nil {
		product.Category = *f.Category
	}
	if f.Condition != nil {
		product.Condition = *f.Condition
	}
	if f.Specs != nil {
		product.Specs = datatypes.JSONMap(f.Specs)
	}
	if f.IsActive != nil {
		product.IsActive = *f.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		span.SetError(err)
		return nil, err
	}

	return s.productRepo.GetByID(ctx, product.ID)
}

func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	span, ctx := observability.NewSpan(ctx, "ProductService.DeleteProduct")
	defer span.End()
	span.AddAttributes(attribute.Int("product.id", int(id)))

	if _, err := s.productRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Product", id)
		}
		span.SetError(err)
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		span.SetError(err)
		return err
	}
	return nil
}
