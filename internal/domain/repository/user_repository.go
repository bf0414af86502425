package repository

import (
	"context"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para usuarios de la consola admin.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
