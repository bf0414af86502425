package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

var _ repository.StatsRepository = (*StatsRepo)(nil)

// StatsRepo consultas de solo lectura para el panel corporativo de la consola.
type StatsRepo struct {
	pool *pgxpool.Pool
}

// NewStatsRepository construye el adaptador del panel.
func NewStatsRepository(pool *pgxpool.Pool) *StatsRepo {
	return &StatsRepo{pool: pool}
}

// AccountUsage devuelve todas las cuentas con su consumo en [from, to).
// El LEFT JOIN garantiza fila (consumo cero) también para cuentas sin pedidos;
// los pedidos cancelados no suman.
func (r *StatsRepo) AccountUsage(ctx context.Context, from, to time.Time) ([]repository.AccountUsageRow, error) {
	const query = `
	SELECT
	    a.id,
	    a.company_name,
	    a.status,
	    a.monthly_limit,
	    COUNT(o.id)                        AS orders_count,
	    COALESCE(SUM(o.total_amount), 0)   AS total_spent
	FROM corporate_accounts a
	LEFT JOIN orders o
	       ON o.corporate_account_id = a.id
	      AND o.payment_method = $1
	      AND o.status <> $2
	      AND o.created_at >= $3 AND o.created_at < $4
	GROUP BY a.id, a.company_name, a.status, a.monthly_limit
	ORDER BY total_spent DESC, a.company_name`

	rows, err := r.pool.Query(ctx, query,
		entity.PaymentMethodCorporateMonthly, entity.OrderStatusCancelled, from, to,
	)
	if err != nil {
		return nil, fmt.Errorf("stats.AccountUsage: %w", err)
	}
	defer rows.Close()

	var results []repository.AccountUsageRow
	for rows.Next() {
		var row repository.AccountUsageRow
		if err := rows.Scan(
			&row.AccountID,
			&row.CompanyName,
			&row.Status,
			&row.MonthlyLimit,
			&row.OrdersCount,
			&row.TotalSpent,
		); err != nil {
			return nil, fmt.Errorf("stats.AccountUsage scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Totals devuelve los contadores globales del panel: cuentas por estado,
// facturas enviadas/vencidas del período y facturación del mes.
func (r *StatsRepo) Totals(ctx context.Context, from, to time.Time) (*repository.CorporateTotals, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM corporate_accounts WHERE status = 'active'),
	    (SELECT COUNT(*) FROM corporate_accounts WHERE status = 'pending'),
	    (SELECT COUNT(*) FROM corporate_accounts WHERE status = 'suspended'),
	    (SELECT COUNT(*) FROM corporate_invoices
	      WHERE status = 'sent' AND created_at >= $1 AND created_at < $2),
	    (SELECT COUNT(*) FROM corporate_invoices WHERE status = 'overdue'),
	    (SELECT COALESCE(SUM(total_amount), 0) FROM corporate_invoices
	      WHERE status <> 'cancelled' AND created_at >= $1 AND created_at < $2)`

	var t repository.CorporateTotals
	err := r.pool.QueryRow(ctx, query, from, to).Scan(
		&t.ActiveAccounts,
		&t.PendingAccounts,
		&t.SuspendedAccounts,
		&t.InvoicesSent,
		&t.InvoicesOverdue,
		&t.MonthRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("stats.Totals: %w", err)
	}
	return &t, nil
}
