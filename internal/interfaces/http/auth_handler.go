package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/auth"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
)

// AuthHandler maneja la autenticación de la consola admin.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login valida credenciales y emite un JWT.
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}
