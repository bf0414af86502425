package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/orders"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// OrderHandler maneja el checkout y el ciclo de vida de los pedidos.
type OrderHandler struct {
	createUC *orders.CreateOrderUseCase
	statusUC *orders.StatusUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(createUC *orders.CreateOrderUseCase, statusUC *orders.StatusUseCase) *OrderHandler {
	return &OrderHandler{createUC: createUC, statusUC: statusUC}
}

// Create procesa el checkout. Los pedidos corporativos pasan por la puerta de
// admisión; admin_override solo surte efecto con rol admin.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.createUC.CreateOrder(c.Context(), in, IsAdmin(c))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista pedidos con filtros opcionales.
// GET /api/orders?corporate_account_id=&status=&payment_method=&from=&to=
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.OrderFilter{
		CorporateAccountID: c.Query("corporate_account_id"),
		PaymentMethod:      c.Query("payment_method"),
		Status:             c.Query("status"),
		Limit:              page.Limit,
		Offset:             page.Offset,
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (AAAA-MM-DD)"})
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (AAAA-MM-DD)"})
		}
		filter.To = t
	}

	out, err := h.statusUC.List(c.Context(), filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene un pedido por ID.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.statusUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus avanza el ciclo de vida del pedido.
// PATCH /api/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.statusUC.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
