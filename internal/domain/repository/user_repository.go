package repository

import (
	"context"

	"github.com/zeenatstore/zeenat-store/internal/domain/entity"
)

// UserRepository puerto de persistencia para las cuentas del personal.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
