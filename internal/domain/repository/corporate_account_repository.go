package repository

import (
	"context"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// CorporateAccountRepository define el puerto de persistencia para cuentas corporativas.
type CorporateAccountRepository interface {
	Create(ctx context.Context, account *entity.CorporateAccount) error
	GetByID(ctx context.Context, id string) (*entity.CorporateAccount, error)
	// GetByIDForUpdate bloquea la fila de la cuenta (SELECT ... FOR UPDATE).
	// Solo tiene sentido dentro de una transacción: serializa los checkouts
	// concurrentes de la misma cuenta contra la puerta de admisión.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.CorporateAccount, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.CorporateAccount, error)
	List(ctx context.Context, limit, offset int) ([]*entity.CorporateAccount, error)
	Update(ctx context.Context, account *entity.CorporateAccount) error
}
