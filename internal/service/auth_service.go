package service

import (
	"context"
	"errors"

	"nexus/internal/models"
	"nexus/internal/repository"

	"gorm.io/gorm"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Login resolves a username to its account projection. No credential is
// checked; the password field in the request is ignored entirely. An unknown
// username yields the literal "Node not found" error the clients match on.
func (s *AuthService) Login(ctx context.Context, username string) (*models.UserProjection, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.AppError{Code: "NOT_FOUND", Message: "Node not found"}
		}
		return nil, err
	}
	projection := user.Project()
	return &projection, nil
}
