package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	domainbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// InvoiceHandler maneja la facturación corporativa mensual.
type InvoiceHandler struct {
	generateUC *billing.GenerateInvoiceUseCase
	statusUC   *billing.InvoiceStatusUseCase
	dispatchUC *billing.DispatchInvoiceUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(
	generateUC *billing.GenerateInvoiceUseCase,
	statusUC *billing.InvoiceStatusUseCase,
	dispatchUC *billing.DispatchInvoiceUseCase,
) *InvoiceHandler {
	return &InvoiceHandler{generateUC: generateUC, statusUC: statusUC, dispatchUC: dispatchUC}
}

// Generate emite la factura del período para una cuenta (y la despacha, salvo draft).
// POST /api/corporate/invoices
func (h *InvoiceHandler) Generate(c *fiber.Ctx) error {
	var in dto.GenerateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.generateUC.Generate(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "DUPLICATE_INVOICE",
				Message: fmt.Sprintf("ya existe factura para la cuenta en %04d-%02d", in.Year, in.Month),
			})
		}
		return errorJSON(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List lista facturas con filtros opcionales.
// GET /api/corporate/invoices?corporate_account_id=&status=&month=&year=
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	filter := repository.InvoiceFilter{
		CorporateAccountID: c.Query("corporate_account_id"),
		Status:             c.Query("status"),
		Limit:              page.Limit,
		Offset:             page.Offset,
	}
	month, year := c.QueryInt("month"), c.QueryInt("year")
	if month != 0 || year != 0 {
		p, err := domainbilling.NewPeriod(month, year)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "período inválido"})
		}
		filter.Period = &p
	}

	out, err := h.statusUC.List(c.Context(), filter)
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una factura por ID.
// GET /api/corporate/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.statusUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// GetByPeriod busca la factura de una cuenta para un período exacto.
// GET /api/corporate/accounts/:id/invoice?month=&year=
func (h *InvoiceHandler) GetByPeriod(c *fiber.Ctx) error {
	out, err := h.statusUC.GetByPeriod(c.Context(), c.Params("id"), c.QueryInt("month"), c.QueryInt("year"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// MarkPaid marca la factura como pagada (paid_at se estampa una sola vez).
// POST /api/corporate/invoices/:id/pay
func (h *InvoiceHandler) MarkPaid(c *fiber.Ctx) error {
	out, err := h.statusUC.MarkPaid(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Cancel anula una factura no terminal.
// POST /api/corporate/invoices/:id/cancel
func (h *InvoiceHandler) Cancel(c *fiber.Ctx) error {
	out, err := h.statusUC.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// Resend re-renderiza la factura desde su snapshot y la reenvía por correo.
// POST /api/corporate/invoices/:id/resend
func (h *InvoiceHandler) Resend(c *fiber.Ctx) error {
	out, err := h.dispatchUC.Resend(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	return c.JSON(out)
}

// DownloadPDF descarga el PDF de la factura.
// GET /api/corporate/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.dispatchUC.RenderPDF(c.Context(), c.Params("id"))
	if err != nil {
		return errorJSON(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(pdfBytes)
}
