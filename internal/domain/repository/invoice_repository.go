package repository

import (
	"context"

	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/billing"
	"github.com/rylessKechit/BellaFleurs-sub000/internal/domain/entity"
)

// InvoiceFilter filtro de listado de facturas corporativas.
type InvoiceFilter struct {
	CorporateAccountID string
	Status             string
	Period             *billing.Period
	Limit              int
	Offset             int
}

// CorporateInvoiceRepository define el puerto de persistencia para facturas corporativas.
// La unicidad (cuenta, año, mes) la garantiza un constraint de la base: el
// segundo intento concurrente de generación falla limpio, nunca sobreescribe.
type CorporateInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.CorporateInvoice) error
	GetByID(ctx context.Context, id string) (*entity.CorporateInvoice, error)
	GetByAccountAndPeriod(ctx context.Context, accountID string, p billing.Period) (*entity.CorporateInvoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.CorporateInvoice, error)
	// NextSequence devuelve MAX(sequence)+1 de las facturas emitidas en el mes
	// dado. Debe llamarse dentro de la transacción de generación.
	NextSequence(ctx context.Context, year, month int) (int, error)
	// UpdateStatus persiste status, sent_at, paid_at, dispatch_error y updated_at.
	// Los totales y las líneas son inmutables tras la creación y no se tocan.
	UpdateStatus(ctx context.Context, invoice *entity.CorporateInvoice) error
}
