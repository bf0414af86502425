package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/orders"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// Asegura que TxRunner implementa los puertos transaccionales de checkout y facturación.
var _ orders.TxRunner = (*TxRunner)(nil)
var _ billing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunCheckout inicia una transacción con los repos del checkout atados a la tx.
// La puerta de admisión (lectura bloqueada de la cuenta + agregación del
// consumo + inserción del pedido) ve un único snapshot y hace Commit o Rollback.
func (r *TxRunner) RunCheckout(ctx context.Context, fn func(
	accountRepo repository.CorporateAccountRepository,
	orderRepo repository.OrderRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accountRepo := NewCorporateAccountRepository(tx)
	orderRepo := NewOrderRepository(tx)

	if err := fn(accountRepo, orderRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunInvoice inicia una transacción para la generación de factura: lectura de
// pedidos del período, reserva del consecutivo e inserción, todo o nada.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	invoiceRepo repository.CorporateInvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	invoiceRepo := NewCorporateInvoiceRepository(tx)

	if err := fn(orderRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
