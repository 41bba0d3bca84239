package repository

import (
	"context"

	"github.com/construplan/construplan-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios (proveedor de identidad).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
