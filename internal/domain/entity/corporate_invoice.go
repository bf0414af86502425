package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura corporativa.
// Máquina de estados: draft → sent → paid (terminal),
// sent → overdue (por fecha de vencimiento), y desde cualquier estado
// no terminal → cancelled (solo admin). No hay salida de paid ni cancelled.
const (
	InvoiceStatusDraft     = "draft"
	InvoiceStatusSent      = "sent"
	InvoiceStatusPaid      = "paid"
	InvoiceStatusOverdue   = "overdue"
	InvoiceStatusCancelled = "cancelled"
)

// InvoiceItem es una línea de la factura: un pedido del período.
// Snapshot inmutable al momento de la generación — ediciones o cancelaciones
// posteriores del pedido no alteran una factura ya emitida.
type InvoiceItem struct {
	OrderID     string          `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	OrderDate   time.Time       `json:"order_date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
}

// CorporateInvoice consolida los pedidos corporativos de una cuenta en un
// mes calendario. Existe a lo sumo una por (cuenta, mes, año); los totales
// almacenados son la fuente de verdad y nunca se recalculan desde los pedidos.
type CorporateInvoice struct {
	ID                 string
	InvoiceNumber      string // único, legible (FAC-AAAAMM-NNNN)
	Sequence           int    // consecutivo dentro del mes de emisión
	CorporateAccountID string
	PeriodMonth        int // 1..12
	PeriodYear         int
	PeriodStart        time.Time
	PeriodEnd          time.Time
	Items              []InvoiceItem
	Subtotal           decimal.Decimal
	VATRate            decimal.Decimal // fracción (0.20)
	VATAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	Status             string // ver constantes InvoiceStatus*
	DueDate            time.Time
	SentAt             *time.Time
	PaidAt             *time.Time
	DispatchError      string // último error de render/envío; vacío si el último envío fue exitoso
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsTerminal indica si la factura alcanzó un estado final.
func (i *CorporateInvoice) IsTerminal() bool {
	return i.Status == InvoiceStatusPaid || i.Status == InvoiceStatusCancelled
}

// CanTransitionTo valida una transición de la máquina de estados de la factura.
func (i *CorporateInvoice) CanTransitionTo(next string) bool {
	if i.IsTerminal() {
		return false
	}
	if next == InvoiceStatusCancelled {
		return true
	}
	switch i.Status {
	case InvoiceStatusDraft:
		return next == InvoiceStatusSent
	case InvoiceStatusSent:
		return next == InvoiceStatusPaid || next == InvoiceStatusOverdue
	case InvoiceStatusOverdue:
		return next == InvoiceStatusPaid
	}
	return false
}
