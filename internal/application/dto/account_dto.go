package dto

import "github.com/shopspring/decimal"

// CreateCorporateAccountRequest body para POST /api/corporate/accounts.
type CreateCorporateAccountRequest struct {
	CompanyName     string          `json:"company_name"`
	TaxID           string          `json:"tax_id"`
	ContactEmail    string          `json:"contact_email"`
	MonthlyLimit    decimal.Decimal `json:"monthly_limit"`
	VATRate         decimal.Decimal `json:"vat_rate,omitempty"`          // fracción; 0 = usar la tasa por defecto
	PaymentTerm     string          `json:"payment_term,omitempty"`      // monthly | immediate
	PaymentTermDays int             `json:"payment_term_days,omitempty"` // 0 = usar el plazo por defecto
}

// UpdateCorporateAccountRequest body para PATCH /api/corporate/accounts/:id.
// Solo los campos presentes se actualizan.
type UpdateCorporateAccountRequest struct {
	ContactEmail    *string          `json:"contact_email,omitempty"`
	MonthlyLimit    *decimal.Decimal `json:"monthly_limit,omitempty"`
	VATRate         *decimal.Decimal `json:"vat_rate,omitempty"`
	PaymentTerm     *string          `json:"payment_term,omitempty"`
	PaymentTermDays *int             `json:"payment_term_days,omitempty"`
}

// CorporateAccountResponse cuenta corporativa en respuestas.
type CorporateAccountResponse struct {
	ID              string          `json:"id"`
	CompanyName     string          `json:"company_name"`
	TaxID           string          `json:"tax_id"`
	ContactEmail    string          `json:"contact_email"`
	MonthlyLimit    decimal.Decimal `json:"monthly_limit"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	PaymentTerm     string          `json:"payment_term"`
	PaymentTermDays int             `json:"payment_term_days"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}
