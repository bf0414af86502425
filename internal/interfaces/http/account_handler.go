package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/usecase"
)

// AccountHandler administra cuentas corporativas y expone el Budget Tracker.
type AccountHandler struct {
	accountUC *usecase.CorporateAccountUseCase
	budgetUC  *billing.BudgetUseCase
}

// NewAccountHandler construye el handler.
func NewAccountHandler(accountUC *usecase.CorporateAccountUseCase, budgetUC *billing.BudgetUseCase) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, budgetUC: budgetUC}
}

// Create da de alta una cuenta corporativa (queda pending hasta activarla).
// POST /api/corporate/accounts
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCorporateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.accountUC.Create(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista cuentas corporativas.
// GET /api/corporate/accounts
func (h *AccountHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	out, err := h.accountUC.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una cuenta por ID.
// GET /api/corporate/accounts/:id
func (h *AccountHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.accountUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Update ajusta contacto, límite, IVA o plazo de pago.
// PATCH /api/corporate/accounts/:id
func (h *AccountHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCorporateAccountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.accountUC.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Activate habilita la cuenta para pedidos corporativos.
// POST /api/corporate/accounts/:id/activate
func (h *AccountHandler) Activate(c *fiber.Ctx) error {
	out, err := h.accountUC.Activate(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Suspend bloquea nuevos pedidos de la cuenta.
// POST /api/corporate/accounts/:id/suspend
func (h *AccountHandler) Suspend(c *fiber.Ctx) error {
	out, err := h.accountUC.Suspend(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Stats devuelve el consumo mensual de la cuenta (mes en curso por defecto).
// GET /api/corporate/accounts/:id/stats?month=&year=
func (h *AccountHandler) Stats(c *fiber.Ctx) error {
	out, err := h.budgetUC.MonthlyUsage(c.Context(), c.Params("id"), c.QueryInt("month"), c.QueryInt("year"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Admission dry-run de la puerta de admisión para un monto propuesto.
// GET /api/corporate/accounts/:id/admission?amount=
func (h *AccountHandler) Admission(c *fiber.Ctx) error {
	amount, err := decimal.NewFromString(c.Query("amount", "0"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "amount inválido"})
	}
	out, err := h.budgetUC.CheckAdmission(c.Context(), c.Params("id"), amount)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
