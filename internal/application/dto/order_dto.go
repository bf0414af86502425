package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea del pedido en el checkout.
type OrderItemRequest struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
}

// CreateOrderRequest body para POST /api/orders.
// Para payment_method "corporate_monthly" se exige corporate_account_id y el
// pedido pasa por la puerta de admisión antes de persistirse.
type CreateOrderRequest struct {
	CorporateAccountID string             `json:"corporate_account_id,omitempty"`
	CustomerName       string             `json:"customer_name"`
	CustomerEmail      string             `json:"customer_email"`
	PaymentMethod      string             `json:"payment_method"`
	Items              []OrderItemRequest `json:"items"`
	DeliveryAddress    string             `json:"delivery_address"`
	DeliveryDate       string             `json:"delivery_date,omitempty"` // "2006-01-02"
	DeliverySlot       string             `json:"delivery_slot,omitempty"`
	// AdminOverride: un admin puede saltar la puerta de admisión (la cuenta
	// debe seguir activa). Solo tiene efecto en peticiones autenticadas admin.
	AdminOverride bool `json:"admin_override,omitempty"`
}

// OrderItemResponse línea del pedido en respuestas.
type OrderItemResponse struct {
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// OrderResponse pedido en respuestas.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CorporateAccountID string              `json:"corporate_account_id,omitempty"`
	CustomerName       string              `json:"customer_name"`
	CustomerEmail      string              `json:"customer_email"`
	PaymentMethod      string              `json:"payment_method"`
	Items              []OrderItemResponse `json:"items"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	Status             string              `json:"status"`
	DeliveryAddress    string              `json:"delivery_address,omitempty"`
	DeliveryDate       string              `json:"delivery_date,omitempty"`
	DeliverySlot       string              `json:"delivery_slot,omitempty"`
	CreatedAt          string              `json:"created_at"`
}

// UpdateOrderStatusRequest body para PATCH /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}
