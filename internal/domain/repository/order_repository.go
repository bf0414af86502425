package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// OrderFilter filtro de búsqueda de pedidos. Los campos vacíos no filtran.
// El rango temporal es [From, To) sobre created_at.
type OrderFilter struct {
	CorporateAccountID string
	PaymentMethod      string
	Status             string
	From               time.Time
	To                 time.Time
	Limit              int
	Offset             int
}

// OrderRepository define el puerto de persistencia para pedidos.
// Los pedidos nunca se eliminan: solo avanza su ciclo de vida.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	Find(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
	// SumCorporateForPeriod agrega en una sola consulta el consumo de presupuesto:
	// cantidad y suma de total_amount de los pedidos corporate_monthly de la cuenta
	// creados en [from, to), excluyendo cancelados.
	SumCorporateForPeriod(ctx context.Context, accountID string, from, to time.Time) (count int, total decimal.Decimal, err error)
}
