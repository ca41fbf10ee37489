package server

import (
	"errors"

	"nexus/internal/models"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/auth/login. The password field is accepted but
// never checked; the endpoint is a username lookup that the clients treat as
// a session. An unknown username gets the exact body the frontends match on:
// {"error": "Node not found"}.
func (s *Server) Login(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	// An empty username goes through the lookup like any other miss.
	user, err := s.authService.Login(ctx, req.Username)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "NOT_FOUND" {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": appErr.Message,
			})
		}
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}

	return c.JSON(user)
}
