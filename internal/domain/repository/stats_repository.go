package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AccountUsageRow una fila del panel corporativo: consumo del período por cuenta.
// Es una vista tipada materializada en una sola consulta del lado servidor;
// el cliente no reconcilia respuestas parciales.
type AccountUsageRow struct {
	AccountID    string
	CompanyName  string
	Status       string
	MonthlyLimit decimal.Decimal
	OrdersCount  int
	TotalSpent   decimal.Decimal
}

// CorporateTotals contadores globales del panel.
type CorporateTotals struct {
	ActiveAccounts    int
	PendingAccounts   int
	SuspendedAccounts int
	InvoicesSent      int
	InvoicesOverdue   int
	MonthRevenue      decimal.Decimal
}

// StatsRepository consultas de solo lectura para el panel de la consola admin.
type StatsRepository interface {
	// AccountUsage devuelve todas las cuentas con su consumo en [from, to),
	// incluidas las cuentas sin pedidos (consumo cero).
	AccountUsage(ctx context.Context, from, to time.Time) ([]AccountUsageRow, error)
	Totals(ctx context.Context, from, to time.Time) (*CorporateTotals, error)
}
