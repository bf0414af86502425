package billing

import (
	"context"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de
// facturación atados a la tx. La generación de factura lee los pedidos del
// período y reserva el consecutivo dentro de la misma transacción.
type TxRunner interface {
	RunInvoice(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		invoiceRepo repository.CorporateInvoiceRepository,
	) error) error
}

// InvoicePDFRenderer renderiza la representación gráfica de una factura
// corporativa. Siempre parte del snapshot persistido (nunca de los pedidos
// vivos): re-renderizar una factura ya emitida reproduce el mismo documento.
type InvoicePDFRenderer interface {
	RenderInvoicePDF(
		ctx context.Context,
		invoice *entity.CorporateInvoice,
		account *entity.CorporateAccount,
		issuer *entity.ShopSettings,
	) ([]byte, error)
}

// MailAttachment adjunto binario del correo (el PDF de la factura).
type MailAttachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// MailMessage correo saliente con resumen HTML y adjuntos.
type MailMessage struct {
	To          string
	Subject     string
	HTML        string
	Attachments []MailAttachment
}

// MailSender transporte de correo. El envío es best-effort: un fallo se
// registra y se reporta, nunca revierte la factura ya persistida.
type MailSender interface {
	Send(ctx context.Context, msg MailMessage) error
}
