package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuenta corporativa B2B.
const (
	AccountStatusPending   = "pending"   // Creada por un admin, pendiente de activación
	AccountStatusActive    = "active"    // Puede realizar pedidos con facturación mensual
	AccountStatusSuspended = "suspended" // Bloqueada: no admite nuevos pedidos
)

// Plazos de pago de la cuenta.
const (
	PaymentTermMonthly   = "monthly"   // Factura consolidada a fin de mes
	PaymentTermImmediate = "immediate" // Pago inmediato por pedido (sin consolidación)
)

// CorporateAccount representa un cliente B2B con límite de gasto mensual
// y facturación consolidada por mes calendario.
type CorporateAccount struct {
	ID              string
	CompanyName     string
	TaxID           string // SIRET / NIF intracomunitario
	ContactEmail    string
	MonthlyLimit    decimal.Decimal // límite de gasto por mes calendario; nunca negativo
	VATRate         decimal.Decimal // tasa de IVA de la cuenta (fracción, ej. 0.20)
	PaymentTerm     string          // ver constantes PaymentTerm*
	PaymentTermDays int             // días hasta el vencimiento de la factura (ej. 30)
	Status          string          // ver constantes AccountStatus*
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsActive indica si la cuenta admite nuevos pedidos corporativos.
func (a *CorporateAccount) IsActive() bool {
	return a.Status == AccountStatusActive
}
