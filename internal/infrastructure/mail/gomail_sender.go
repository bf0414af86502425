// Package mail implementa el transporte SMTP del despacho de facturas.
package mail

import (
	"context"
	"fmt"
	"io"

	gomail "gopkg.in/gomail.v2"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/config"
	"github.com/rylessKechit/BellaFleurs-sub000/pkg/logger"
)

// Asegura que GomailSender implementa billing.MailSender.
var _ billing.MailSender = (*GomailSender)(nil)

// GomailSender envía correos HTML con adjuntos vía SMTP autenticado.
// Con SMTP_HOST vacío queda en modo simulado: registra el envío y no abre
// conexión alguna (entornos de desarrollo sin servidor de correo).
type GomailSender struct {
	cfg config.SMTPConfig
	log *logger.Logger
}

// NewGomailSender construye el transporte con la configuración SMTP.
func NewGomailSender(cfg config.SMTPConfig, log *logger.Logger) *GomailSender {
	return &GomailSender{cfg: cfg, log: log}
}

// Send arma y entrega el mensaje. Respeta la cancelación del contexto antes
// de abrir la conexión; el dial en sí es bloqueante (gomail no acepta ctx).
func (s *GomailSender) Send(ctx context.Context, msg billing.MailMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if s.cfg.Host == "" {
		s.log.Info().
			Str("to", msg.To).
			Str("subject", msg.Subject).
			Int("attachments", len(msg.Attachments)).
			Msg("SMTP no configurado: envío simulado")
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/html", msg.HTML)
	for _, att := range msg.Attachments {
		content := att.Content
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{
				"Content-Type": {att.ContentType},
			}),
		)
	}

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp: enviar a %s: %w", msg.To, err)
	}
	return nil
}
