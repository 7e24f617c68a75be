package users

import (
	"context"
	"log/slog"
	"strings"

	"github.com/expenselens/expense-tracker/internal/common"
	"github.com/expenselens/expense-tracker/internal/entity"
	"github.com/expenselens/expense-tracker/internal/repository"
)

// Service handles user business logic.
type Service struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewService creates a new user service.
func NewService(userRepo repository.UserRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetOrCreate resolves a user by name, creating it on first use.
func (s *Service) GetOrCreate(ctx context.Context, name string) (*entity.User, error) {
	validator := common.NewValidator()
	validator.Field("name", name, common.Required, common.MaxLength(120))
	if err := common.ValidateAndReturnError(validator); err != nil {
		return nil, err
	}

	u, err := s.userRepo.GetOrCreateByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, common.InternalErrorf("get or create user: %v", err)
	}

	s.logger.Info("user resolved", "user_id", u.ID, "name", u.Name)
	return u, nil
}
