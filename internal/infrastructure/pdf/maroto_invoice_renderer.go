// Package pdf implementa la representación gráfica de la factura corporativa
// mensual (facture au format français).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tienda + SIRET  │  N° Factura + Fecha emisión      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Tel / Email                            │
//	│  CLIENTE: Razón social + SIRET + contacto                   │
//	│  PERÍODO facturado + estado                                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: N° pedido | Fecha | Descripción | Importe           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Sous-total HT / TVA / TOTAL TTC                   │
//	│  FOOTER: vencimiento + leyenda legal                        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appbilling "github.com/rylessKechit/BellaFleurs-sub000/internal/application/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 45, Green: 106, Blue: 79} // verde de la marca
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 176, Green: 42, Blue: 42}
)

var hundred = decimal.NewFromInt(100)

// ── Renderer ──────────────────────────────────────────────────────────────────

// Asegura que MarotoInvoiceRenderer implementa billing.InvoicePDFRenderer.
var _ appbilling.InvoicePDFRenderer = (*MarotoInvoiceRenderer)(nil)

// MarotoInvoiceRenderer implementa billing.InvoicePDFRenderer usando Maroto v2.
// Renderiza siempre desde el snapshot persistido de la factura: re-renderizar
// una factura emitida reproduce el mismo documento.
type MarotoInvoiceRenderer struct{}

// NewMarotoInvoiceRenderer construye el renderer.
func NewMarotoInvoiceRenderer() *MarotoInvoiceRenderer { return &MarotoInvoiceRenderer{} }

// RenderInvoicePDF genera el PDF de la factura y devuelve sus bytes.
func (g *MarotoInvoiceRenderer) RenderInvoicePDF(
	_ context.Context,
	invoice *entity.CorporateInvoice,
	account *entity.CorporateAccount,
	issuer *entity.ShopSettings,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Facture "+invoice.InvoiceNumber, true).
		WithAuthor(issuer.ShopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, issuer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(issuerRow(issuer))
	m.AddRows(clientRow(account))
	m.AddRows(periodRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(invoice.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(invoice, issuer) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: tienda + SIRET (izq) y N° factura + fecha de emisión (der).
func headerRow(invoice *entity.CorporateInvoice, issuer *entity.ShopSettings) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(issuer.ShopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("SIRET : "+nonEmpty(issuer.TaxID, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURE", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date d'émission : "+invoice.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// issuerRow: identidad legal del emisor.
func issuerRow(issuer *entity.ShopSettings) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("ÉMETTEUR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   %s   |   Tél : %s   |   %s",
				nonEmpty(issuer.LegalName, issuer.ShopName),
				nonEmpty(issuer.Address, "—"),
				nonEmpty(issuer.Phone, "—"),
				nonEmpty(issuer.Email, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// clientRow: la cuenta corporativa facturada.
func clientRow(account *entity.CorporateAccount) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(account.CompanyName, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("SIRET : %s   |   Email : %s",
				account.TaxID, account.ContactEmail,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// periodRow: período facturado y estado de la factura.
func periodRow(invoice *entity.CorporateInvoice) core.Row {
	statusColor := colorGray
	if invoice.Status == entity.InvoiceStatusOverdue {
		statusColor = colorAlert
	}
	return row.New(8).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Période facturée : %02d/%04d (%d commande(s))",
				invoice.PeriodMonth, invoice.PeriodYear, len(invoice.Items),
			), props.Text{Size: 9, Top: 2}),
		),
		col.New(4).Add(
			text.New(statusLabel(invoice.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: statusColor, Top: 2,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de pedidos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("N° commande", 2, align.Left),
		h("Date", 2, align.Center),
		h("Désignation", 5, align.Left),
		h("Montant HT", 3, align.Right),
	)
}

// tableItemRows: una fila por pedido consolidado.
func tableItemRows(items []entity.InvoiceItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				it.OrderNumber,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				it.OrderDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.Description,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(3).Add(text.New(
				formatEuro(it.Amount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.CorporateInvoice) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	vatLabel := fmt.Sprintf("TVA (%s %%) :", invoice.VATRate.Mul(hundred).StringFixed(0))
	return row.New(26).Add(
		col.New(3),
		col.New(4).Add(
			label("Sous-total HT :"),
			label(vatLabel),
			grandLabel("TOTAL TTC :"),
		),
		col.New(4).Add(
			value(formatEuro(invoice.Subtotal)),
			value(formatEuro(invoice.VATAmount)),
			grandValue(formatEuro(invoice.TotalAmount)),
		),
		col.New(1),
	)
}

// footerRows: vencimiento y leyenda legal francesa.
func footerRows(invoice *entity.CorporateInvoice, issuer *entity.ShopSettings) []core.Row {
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("Date d'échéance : "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(10).Add(col.New(12).Add(
			text.New("En cas de retard de paiement, une pénalité de trois fois le taux d'intérêt légal "+
				"sera appliquée (art. L441-10 du Code de commerce), ainsi qu'une indemnité forfaitaire "+
				"de 40 € pour frais de recouvrement.", props.Text{
				Size: 7, Color: colorGray, Top: 1,
			}),
		)),
		row.New(6).Add(col.New(12).Add(
			text.New(nonEmpty(issuer.LegalName, issuer.ShopName)+" — "+nonEmpty(issuer.Address, ""), props.Text{
				Size: 7, Color: colorGray, Top: 1, Align: align.Center,
			}),
		)),
	}
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// statusLabel etiqueta del estado en francés para el documento.
func statusLabel(status string) string {
	switch status {
	case entity.InvoiceStatusDraft:
		return "BROUILLON"
	case entity.InvoiceStatusSent:
		return "ÉMISE"
	case entity.InvoiceStatusPaid:
		return "PAYÉE"
	case entity.InvoiceStatusOverdue:
		return "EN RETARD"
	case entity.InvoiceStatusCancelled:
		return "ANNULÉE"
	}
	return strings.ToUpper(status)
}

// formatEuro formatea un monto al estilo francés: coma decimal y símbolo al final.
func formatEuro(d decimal.Decimal) string {
	return strings.ReplaceAll(d.StringFixed(2), ".", ",") + " €"
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
