package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/dto"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// hundred para formatear la tasa de IVA (fracción -> porcentaje).
var hundred = decimal.NewFromInt(100)

// DispatchInvoiceUseCase renderiza la factura a PDF y la envía por correo al
// contacto corporativo. Render y transporte son I/O lentos: ocurren fuera de
// toda transacción y su fallo nunca revierte la factura persistida — se
// registra, se guarda en dispatch_error y queda el reenvío manual como
// acción compensatoria.
type DispatchInvoiceUseCase struct {
	invoiceRepo  repository.CorporateInvoiceRepository
	accountRepo  repository.CorporateAccountRepository
	settingsRepo repository.SettingsRepository
	renderer     InvoicePDFRenderer
	mailer       MailSender
	log          *logger.Logger
	// paymentLinkBase URL base del enlace de pago del correo; vacío = sin enlace.
	paymentLinkBase string
}

// NewDispatchInvoiceUseCase construye el caso de uso.
func NewDispatchInvoiceUseCase(
	invoiceRepo repository.CorporateInvoiceRepository,
	accountRepo repository.CorporateAccountRepository,
	settingsRepo repository.SettingsRepository,
	renderer InvoicePDFRenderer,
	mailer MailSender,
	log *logger.Logger,
	paymentLinkBase string,
) *DispatchInvoiceUseCase {
	return &DispatchInvoiceUseCase{
		invoiceRepo:     invoiceRepo,
		accountRepo:     accountRepo,
		settingsRepo:    settingsRepo,
		renderer:        renderer,
		mailer:          mailer,
		log:             log,
		paymentLinkBase: paymentLinkBase,
	}
}

// Dispatch renderiza y envía la factura. En éxito, una factura draft pasa a
// sent (una sola vez); un reenvío de una factura ya emitida solo limpia
// dispatch_error. En fallo, registra el error en la factura y retorna
// ErrDispatchFailed envuelto.
func (uc *DispatchInvoiceUseCase) Dispatch(ctx context.Context, inv *entity.CorporateInvoice, account *entity.CorporateAccount) error {
	issuer, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		uc.log.Warn().Err(err).Msg("configuración de tienda no disponible, se emite con identidad mínima")
	}
	if issuer == nil {
		issuer = &entity.ShopSettings{ShopName: "Bella Fleurs"}
	}

	pdfBytes, err := uc.renderer.RenderInvoicePDF(ctx, inv, account, issuer)
	if err != nil {
		uc.recordDispatchError(ctx, inv, fmt.Sprintf("render PDF: %v", err))
		return fmt.Errorf("%w: render PDF: %v", domain.ErrDispatchFailed, err)
	}

	msg := MailMessage{
		To:      account.ContactEmail,
		Subject: fmt.Sprintf("Facture %s — %s", inv.InvoiceNumber, issuer.ShopName),
		HTML:    uc.buildEmailBody(inv, account, issuer),
		Attachments: []MailAttachment{{
			Filename:    fmt.Sprintf("facture_%s.pdf", inv.InvoiceNumber),
			ContentType: "application/pdf",
			Content:     pdfBytes,
		}},
	}
	if err := uc.mailer.Send(ctx, msg); err != nil {
		uc.recordDispatchError(ctx, inv, fmt.Sprintf("envío de correo: %v", err))
		return fmt.Errorf("%w: envío de correo: %v", domain.ErrDispatchFailed, err)
	}

	now := time.Now().UTC()
	if inv.Status == entity.InvoiceStatusDraft {
		inv.Status = entity.InvoiceStatusSent
	}
	if inv.SentAt == nil {
		inv.SentAt = &now
	}
	inv.DispatchError = ""
	inv.UpdatedAt = now
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		// El correo ya salió; un fallo aquí solo afecta el estado registrado.
		uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("actualizar estado tras envío")
		return err
	}
	uc.log.Info().
		Str("invoice", inv.InvoiceNumber).
		Str("to", account.ContactEmail).
		Msg("factura enviada")
	return nil
}

// Resend re-renderiza la factura desde su snapshot persistido y la reenvía.
// Reproduce el documento de la emisión original: jamás consulta pedidos vivos.
func (uc *DispatchInvoiceUseCase) Resend(ctx context.Context, invoiceID string) (*dto.InvoiceResponse, error) {
	if invoiceID == "" {
		return nil, domain.ErrInvalidInput
	}
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	if inv.Status == entity.InvoiceStatusCancelled {
		return nil, domain.ErrConflict
	}
	account, err := uc.accountRepo.GetByID(ctx, inv.CorporateAccountID)
	if err != nil || account == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.Dispatch(ctx, inv, account); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv, account.CompanyName, true), nil
}

// RenderPDF genera los bytes del PDF para descarga directa desde la consola.
func (uc *DispatchInvoiceUseCase) RenderPDF(ctx context.Context, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}
	account, err := uc.accountRepo.GetByID(ctx, inv.CorporateAccountID)
	if err != nil || account == nil {
		return nil, "", domain.ErrNotFound
	}
	issuer, _ := uc.settingsRepo.Get(ctx)
	if issuer == nil {
		issuer = &entity.ShopSettings{ShopName: "Bella Fleurs"}
	}
	pdfBytes, err = uc.renderer.RenderInvoicePDF(ctx, inv, account, issuer)
	if err != nil {
		return nil, "", fmt.Errorf("%w: render PDF: %v", domain.ErrDispatchFailed, err)
	}
	return pdfBytes, fmt.Sprintf("facture_%s.pdf", inv.InvoiceNumber), nil
}

// recordDispatchError guarda el último error de despacho en la factura
// (best-effort: si la escritura falla solo queda el log).
func (uc *DispatchInvoiceUseCase) recordDispatchError(ctx context.Context, inv *entity.CorporateInvoice, msg string) {
	inv.DispatchError = msg
	inv.UpdatedAt = time.Now().UTC()
	if err := uc.invoiceRepo.UpdateStatus(ctx, inv); err != nil {
		uc.log.Error().Err(err).Str("invoice", inv.InvoiceNumber).Msg("registrar error de despacho")
	}
}

// buildEmailBody arma el resumen HTML del correo (en francés, idioma del
// cliente final de la tienda).
func (uc *DispatchInvoiceUseCase) buildEmailBody(inv *entity.CorporateInvoice, account *entity.CorporateAccount, issuer *entity.ShopSettings) string {
	period := fmt.Sprintf("%02d/%04d", inv.PeriodMonth, inv.PeriodYear)
	body := fmt.Sprintf(`<html><body style="font-family: Arial, sans-serif; color: #333;">
<h2 style="color: #2d6a4f;">%s</h2>
<p>Bonjour,</p>
<p>Veuillez trouver ci-joint la facture <strong>%s</strong> pour la période <strong>%s</strong>,
couvrant %d commande(s) de <strong>%s</strong>.</p>
<table style="border-collapse: collapse;">
<tr><td style="padding: 4px 12px 4px 0;">Sous-total HT</td><td style="text-align: right;">%s €</td></tr>
<tr><td style="padding: 4px 12px 4px 0;">TVA (%s%%)</td><td style="text-align: right;">%s €</td></tr>
<tr><td style="padding: 4px 12px 4px 0;"><strong>Total TTC</strong></td><td style="text-align: right;"><strong>%s €</strong></td></tr>
</table>
<p>Date d'échéance : <strong>%s</strong></p>`,
		issuer.ShopName,
		inv.InvoiceNumber,
		period,
		len(inv.Items),
		account.CompanyName,
		inv.Subtotal.StringFixed(2),
		inv.VATRate.Mul(hundred).StringFixed(0),
		inv.VATAmount.StringFixed(2),
		inv.TotalAmount.StringFixed(2),
		inv.DueDate.Format("02/01/2006"),
	)
	if uc.paymentLinkBase != "" {
		body += fmt.Sprintf(`<p><a href="%s/%s" style="background: #2d6a4f; color: #fff; padding: 8px 16px; text-decoration: none; border-radius: 4px;">Régler la facture</a></p>`,
			uc.paymentLinkBase, inv.ID)
	}
	body += `<p>Cordialement,<br>` + issuer.ShopName + `</p></body></html>`
	return body
}
