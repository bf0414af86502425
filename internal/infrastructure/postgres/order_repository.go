package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// Asegura que OrderRepo implementa el puerto.
var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Las líneas del pedido se guardan como JSONB: son un snapshot inmutable al
// momento de la compra, nunca se consultan por separado.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderColumns = `id, order_number, corporate_account_id, customer_name, customer_email,
	payment_method, items, total_amount, status, delivery_address, delivery_date,
	delivery_slot, created_at, updated_at`

// Create persiste un nuevo pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	query := `
		INSERT INTO orders (id, order_number, corporate_account_id, customer_name, customer_email,
			payment_method, items, total_amount, status, delivery_address, delivery_date,
			delivery_slot, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err = r.q.Exec(ctx, query,
		o.ID, o.OrderNumber, nullIfEmpty(o.CorporateAccountID), o.CustomerName, o.CustomerEmail,
		o.PaymentMethod, items, o.TotalAmount, o.Status, o.DeliveryAddress, o.DeliveryDate,
		o.DeliverySlot, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order number already exists: %w", err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	o, err := r.scanRow(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// Find lista pedidos según filtro. Los campos vacíos no filtran; el rango
// temporal es [From, To) sobre created_at.
func (r *OrderRepo) Find(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE 1=1`
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
	if f.PaymentMethod != "" {
		add("payment_method = ", f.PaymentMethod)
	}
	if f.Status != "" {
		add("status = ", f.Status)
	}
	if !f.From.IsZero() {
		add("created_at >= ", f.From)
	}
	if !f.To.IsZero() {
		add("created_at < ", f.To)
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(i) + " OFFSET $" + strconv.Itoa(i+1)
		args = append(args, f.Limit, f.Offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.Order
	for rows.Next() {
		o, err := r.scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus avanza el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error {
	query := `UPDATE orders SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, status, updatedAt)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", id)
	}
	return nil
}

// SumCorporateForPeriod agrega en una sola consulta el consumo de presupuesto
// del mes: cantidad y suma de pedidos corporate_monthly no cancelados de la
// cuenta en [from, to). COALESCE asegura cero (no NULL) en meses sin pedidos.
func (r *OrderRepo) SumCorporateForPeriod(ctx context.Context, accountID string, from, to time.Time) (int, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE corporate_account_id = $1
		  AND payment_method = $2
		  AND status <> $3
		  AND created_at >= $4 AND created_at < $5`
	var count int
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, query,
		accountID, entity.PaymentMethodCorporateMonthly, entity.OrderStatusCancelled, from, to,
	).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("sum corporate orders: %w", err)
	}
	return count, total, nil
}

func (r *OrderRepo) scanRow(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var accountID *string
	var items []byte
	err := row.Scan(
		&o.ID, &o.OrderNumber, &accountID, &o.CustomerName, &o.CustomerEmail,
		&o.PaymentMethod, &items, &o.TotalAmount, &o.Status, &o.DeliveryAddress,
		&o.DeliveryDate, &o.DeliverySlot, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if accountID != nil {
		o.CorporateAccountID = *accountID
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}
	return &o, nil
}
