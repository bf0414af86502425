package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// Asegura que CorporateInvoiceRepo implementa el puerto.
var _ repository.CorporateInvoiceRepository = (*CorporateInvoiceRepo)(nil)

// CorporateInvoiceRepo implementación de CorporateInvoiceRepository (usable con
// pool o tx). Las líneas son JSONB: snapshot inmutable de la generación.
//
// La tabla lleva un constraint único sobre (corporate_account_id, period_year,
// period_month) WHERE status <> 'cancelled': dos generaciones concurrentes del
// mismo período jamás producen dos facturas.
type CorporateInvoiceRepo struct {
	q Querier
}

// NewCorporateInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCorporateInvoiceRepository(q Querier) *CorporateInvoiceRepo {
	return &CorporateInvoiceRepo{q: q}
}

const invoiceColumns = `id, invoice_number, sequence, corporate_account_id,
	period_month, period_year, period_start, period_end, items,
	subtotal, vat_rate, vat_amount, total_amount, status, due_date,
	sent_at, paid_at, dispatch_error, created_at, updated_at`

// Create persiste la factura. Una violación del constraint único del período
// se reporta como duplicado de dominio.
func (r *CorporateInvoiceRepo) Create(ctx context.Context, inv *entity.CorporateInvoice) error {
	items, err := json.Marshal(inv.Items)
	if err != nil {
		return fmt.Errorf("marshal invoice items: %w", err)
	}
	query := `
		INSERT INTO corporate_invoices (id, invoice_number, sequence, corporate_account_id,
			period_month, period_year, period_start, period_end, items,
			subtotal, vat_rate, vat_amount, total_amount, status, due_date,
			sent_at, paid_at, dispatch_error, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err = r.q.Exec(ctx, query,
		inv.ID, inv.InvoiceNumber, inv.Sequence, inv.CorporateAccountID,
		inv.PeriodMonth, inv.PeriodYear, inv.PeriodStart, inv.PeriodEnd, items,
		inv.Subtotal, inv.VATRate, inv.VATAmount, inv.TotalAmount, inv.Status, inv.DueDate,
		inv.SentAt, inv.PaidAt, nullIfEmpty(inv.DispatchError), inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert corporate invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID.
func (r *CorporateInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.CorporateInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM corporate_invoices WHERE id = $1`
	inv, err := r.scanRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get corporate invoice: %w", err)
	}
	return inv, nil
}

// GetByAccountAndPeriod busca la factura vigente (no anulada) de una cuenta
// para un período exacto.
func (r *CorporateInvoiceRepo) GetByAccountAndPeriod(ctx context.Context, accountID string, p billing.Period) (*entity.CorporateInvoice, error) {
	query := `SELECT ` + invoiceColumns + `
		FROM corporate_invoices
		WHERE corporate_account_id = $1 AND period_year = $2 AND period_month = $3
		  AND status <> $4`
	inv, err := r.scanRow(r.q.QueryRow(ctx, query, accountID, p.Year, p.Month, entity.InvoiceStatusCancelled))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice by period: %w", err)
	}
	return inv, nil
}

// List lista facturas según filtro, las más recientes primero.
func (r *CorporateInvoiceRepo) List(ctx context.Context, f repository.InvoiceFilter) ([]*entity.CorporateInvoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM corporate_invoices WHERE 1=1`
	args := []any{}
	i := 1
	add := func(cond string, v any) {
		query += " AND " + cond + "$" + strconv.Itoa(i)
		args = append(args, v)
		i++
	}
	if f.CorporateAccountID != "" {
		add("corporate_account_id = ", f.CorporateAccountID)
	}
	if f.Status != "" {
		add("status = ", f.Status)
	}
	if f.Period != nil {
		add("period_year = ", f.Period.Year)
		add("period_month = ", f.Period.Month)
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(i) + " OFFSET $" + strconv.Itoa(i+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list corporate invoices: %w", err)
	}
	defer rows.Close()

	var out []*entity.CorporateInvoice
	for rows.Next() {
		inv, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan corporate invoice: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// NextSequence devuelve MAX(sequence)+1 de las facturas emitidas en el mes
// dado. Debe llamarse dentro de la transacción de generación; el constraint
// único del período cubre la carrera residual entre dos cuentas distintas.
func (r *CorporateInvoiceRepo) NextSequence(ctx context.Context, year, month int) (int, error) {
	query := `
		SELECT COALESCE(MAX(sequence), 0) + 1
		FROM corporate_invoices
		WHERE EXTRACT(YEAR FROM created_at) = $1 AND EXTRACT(MONTH FROM created_at) = $2`
	var seq int
	if err := r.q.QueryRow(ctx, query, year, month).Scan(&seq); err != nil {
		return 0, fmt.Errorf("next invoice sequence: %w", err)
	}
	return seq, nil
}

// UpdateStatus persiste status, sent_at, paid_at, dispatch_error y updated_at.
// Totales y líneas son inmutables tras la creación: jamás se tocan aquí.
func (r *CorporateInvoiceRepo) UpdateStatus(ctx context.Context, inv *entity.CorporateInvoice) error {
	query := `
		UPDATE corporate_invoices
		SET status = $2, sent_at = $3, paid_at = $4, dispatch_error = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		inv.ID, inv.Status, inv.SentAt, inv.PaidAt, nullIfEmpty(inv.DispatchError), inv.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CorporateInvoiceRepo) scanRow(row pgx.Row) (*entity.CorporateInvoice, error) {
	var inv entity.CorporateInvoice
	var items []byte
	var dispatchError *string
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Sequence, &inv.CorporateAccountID,
		&inv.PeriodMonth, &inv.PeriodYear, &inv.PeriodStart, &inv.PeriodEnd, &items,
		&inv.Subtotal, &inv.VATRate, &inv.VATAmount, &inv.TotalAmount, &inv.Status, &inv.DueDate,
		&inv.SentAt, &inv.PaidAt, &dispatchError, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if dispatchError != nil {
		inv.DispatchError = *dispatchError
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &inv.Items); err != nil {
			return nil, fmt.Errorf("unmarshal invoice items: %w", err)
		}
	}
	return &inv, nil
}
