package dto

import "github.com/shopspring/decimal"

// MonthlyUsageResponse estadística mensual de la cuenta (Budget Tracker).
// GET /api/corporate/accounts/:id/stats?month=&year=
type MonthlyUsageResponse struct {
	AccountID          string          `json:"account_id"`
	Period             string          `json:"period"` // "AAAA-MM"
	OrdersCount        int             `json:"orders_count"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	MonthlyLimit       decimal.Decimal `json:"monthly_limit"`
	RemainingBudget    decimal.Decimal `json:"remaining_budget"`
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
	Exceeded           bool            `json:"exceeded"`
}

// AdmissionResponse resultado de la puerta de admisión (dry-run).
// GET /api/corporate/accounts/:id/admission?amount=
type AdmissionResponse struct {
	AccountID       string          `json:"account_id"`
	ProposedAmount  decimal.Decimal `json:"proposed_amount"`
	CurrentSpend    decimal.Decimal `json:"current_spend"`
	MonthlyLimit    decimal.Decimal `json:"monthly_limit"`
	RemainingBudget decimal.Decimal `json:"remaining_budget"`
	CanOrder        bool            `json:"can_order"`
}

// GenerateInvoiceRequest body para POST /api/corporate/invoices.
type GenerateInvoiceRequest struct {
	CorporateAccountID string `json:"corporate_account_id"`
	Month              int    `json:"month"`
	Year               int    `json:"year"`
	// Draft: persistir sin despachar (sin PDF ni correo). Por defecto la
	// factura se emite y despacha en la misma operación.
	Draft bool `json:"draft,omitempty"`
}

// InvoiceItemResponse línea de la factura en respuestas.
type InvoiceItemResponse struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	OrderDate   string          `json:"order_date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura corporativa en respuestas.
// EmailSent/DispatchError reportan el resultado del último despacho: la
// factura persiste aunque el correo falle (operación parcialmente exitosa).
type InvoiceResponse struct {
	ID                 string                `json:"id"`
	InvoiceNumber      string                `json:"invoice_number"`
	CorporateAccountID string                `json:"corporate_account_id"`
	CompanyName        string                `json:"company_name,omitempty"`
	Period             string                `json:"period"` // "AAAA-MM"
	Items              []InvoiceItemResponse `json:"items"`
	Subtotal           decimal.Decimal       `json:"subtotal"`
	VATRate            decimal.Decimal       `json:"vat_rate"`
	VATAmount          decimal.Decimal       `json:"vat_amount"`
	TotalAmount        decimal.Decimal       `json:"total_amount"`
	Status             string                `json:"status"`
	DueDate            string                `json:"due_date"`
	SentAt             string                `json:"sent_at,omitempty"`
	PaidAt             string                `json:"paid_at,omitempty"`
	EmailSent          bool                  `json:"email_sent"`
	DispatchError      string                `json:"dispatch_error,omitempty"`
}

// DashboardRowResponse fila del panel corporativo (cuenta + consumo del mes).
type DashboardRowResponse struct {
	AccountID          string          `json:"account_id"`
	CompanyName        string          `json:"company_name"`
	Status             string          `json:"status"`
	MonthlyLimit       decimal.Decimal `json:"monthly_limit"`
	OrdersCount        int             `json:"orders_count"`
	TotalSpent         decimal.Decimal `json:"total_spent"`
	UtilizationPercent decimal.Decimal `json:"utilization_percent"`
}

// DashboardResponse panel corporativo completo: una sola consulta tipada.
type DashboardResponse struct {
	Period            string                 `json:"period"`
	ActiveAccounts    int                    `json:"active_accounts"`
	PendingAccounts   int                    `json:"pending_accounts"`
	SuspendedAccounts int                    `json:"suspended_accounts"`
	InvoicesSent      int                    `json:"invoices_sent"`
	InvoicesOverdue   int                    `json:"invoices_overdue"`
	MonthRevenue      decimal.Decimal        `json:"month_revenue"`
	Accounts          []DashboardRowResponse `json:"accounts"`
}
