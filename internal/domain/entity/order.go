package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago de un pedido.
const (
	PaymentMethodCard             = "card"              // Pago inmediato con tarjeta (retail)
	PaymentMethodCorporateMonthly = "corporate_monthly" // Cargo al presupuesto mensual de la cuenta corporativa
)

// Ciclo de vida de un pedido. Lineal, con rama terminal "cancelled"
// alcanzable desde cualquier estado no terminal.
const (
	OrderStatusPaid           = "paid"
	OrderStatusInCreation     = "in_creation"
	OrderStatusReady          = "ready"
	OrderStatusOutForDelivery = "out_for_delivery"
	OrderStatusDelivered      = "delivered"
	OrderStatusCancelled      = "cancelled"
)

// orderNextStatus define la transición lineal permitida desde cada estado.
var orderNextStatus = map[string]string{
	OrderStatusPaid:           OrderStatusInCreation,
	OrderStatusInCreation:     OrderStatusReady,
	OrderStatusReady:          OrderStatusOutForDelivery,
	OrderStatusOutForDelivery: OrderStatusDelivered,
}

// OrderItem es una línea del pedido, snapshot al momento de la compra
// (el catálogo puede cambiar después; el pedido no).
type OrderItem struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// Order representa un pedido de la tienda. Nunca se elimina físicamente:
// el ciclo de vida termina en delivered o cancelled.
type Order struct {
	ID                 string
	OrderNumber        string // único, legible (BF-<timestamp>)
	CorporateAccountID string // vacío para pedidos retail
	CustomerName       string
	CustomerEmail      string
	PaymentMethod      string // ver constantes PaymentMethod*
	Items              []OrderItem
	TotalAmount        decimal.Decimal
	Status             string // ver constantes OrderStatus*
	DeliveryAddress    string
	DeliveryDate       *time.Time
	DeliverySlot       string // franja horaria, ej. "14h-16h"
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsTerminal indica si el pedido alcanzó un estado final.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled
}

// CanTransitionTo valida una transición del ciclo de vida del pedido.
// Desde cualquier estado no terminal se permite pasar a cancelled.
func (o *Order) CanTransitionTo(next string) bool {
	if o.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	return orderNextStatus[o.Status] == next
}

// ValidOrderStatus reporta si s es un estado de pedido conocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPaid, OrderStatusInCreation, OrderStatusReady,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
