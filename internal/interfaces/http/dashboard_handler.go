package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/usecase"
)

// DashboardHandler expone el panel corporativo de la consola admin.
type DashboardHandler struct {
	uc *usecase.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *usecase.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard devuelve el panel del período (mes en curso por defecto).
// GET /api/corporate/dashboard?month=&year=
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.Context(), c.QueryInt("month"), c.QueryInt("year"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
