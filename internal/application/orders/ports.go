package orders

import (
	"context"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// TxRunner ejecuta el checkout dentro de una transacción: el bloqueo de la
// fila de la cuenta, la agregación del consumo del mes y la inserción del
// pedido deben ver el mismo snapshot. Así dos checkouts concurrentes de la
// misma cuenta se serializan y la puerta de admisión no admite de más.
type TxRunner interface {
	RunCheckout(ctx context.Context, fn func(
		accountRepo repository.CorporateAccountRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
