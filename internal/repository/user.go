package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/expenselens/expense-tracker/gen/ent"
	"github.com/expenselens/expense-tracker/gen/ent/user"
	"github.com/expenselens/expense-tracker/internal/entity"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetOrCreateByName(ctx context.Context, name string) (*entity.User, error)
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type userRepository struct {
	client *ent.Client
	logger *slog.Logger
}

func NewUserRepository(client *ent.Client, logger *slog.Logger) UserRepository {
	return &userRepository{
		client: client,
		logger: logger,
	}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	row, err := r.client.User.Query().Where(user.ID(id)).Only(ctx)
	if err != nil {
		return nil, err
	}
	return toUser(row), nil
}

func (r *userRepository) GetOrCreateByName(ctx context.Context, name string) (*entity.User, error) {
	row, err := r.client.User.Query().Where(user.Name(name)).Only(ctx)
	if err == nil {
		return toUser(row), nil
	}
	if !ent.IsNotFound(err) {
		r.logger.Error("db.users.lookup_failed", "name", name, "error", err)
		return nil, err
	}

	row, err = r.client.User.Create().SetName(name).Save(ctx)
	if err != nil {
		r.logger.Error("db.users.create_failed", "name", name, "error", err)
		return nil, err
	}
	r.logger.Info("db.users.created", "user_id", row.ID, "name", name)
	return toUser(row), nil
}

func (r *userRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	exists, err := r.client.User.Query().Where(user.ID(id)).Exist(ctx)
	if err != nil {
		r.logger.Error("db.users.exists_failed", "user_id", id, "error", err)
		return false, err
	}
	return exists, nil
}
