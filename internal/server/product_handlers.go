package server

import (
	"nexus/internal/models"
	"nexus/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetProducts handles GET /api/products. Only active listings are returned,
// newest first.
func (s *Server) GetProducts(c *fiber.Ctx) error {
	ctx := c.UserContext()

	products, err := s.productService.ListProducts(ctx)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(products)
}

// GetProduct handles GET /api/products/:id. Inactive listings are still
// retrievable here; only the list view hides them.
func (s *Server) GetProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	product, err := s.productService.GetProduct(ctx, id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(product)
}

// CreateProduct handles POST /api/products
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req service.ProductInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.CreateProduct(ctx, req)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(product)
}

// UpdateProduct handles PUT /api/products/:id (full update)
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	return s.updateProduct(c, false)
}

// PatchProduct handles PATCH /api/products/:id (partial update)
func (s *Server) PatchProduct(c *fiber.Ctx) error {
	return s.updateProduct(c, true)
}

func (s *Server) updateProduct(c *fiber.Ctx, partial bool) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req service.ProductInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.UpdateProduct(ctx, service.UpdateProductInput{
		ProductID: id,
		Partial:   partial,
		Fields:    req,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(product)
}

// DeleteProduct handles DELETE /api/products/:id. The row and its comments
// are removed for good.
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	ctx := c.UserContext()
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.productService.DeleteProduct(ctx, id); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
