package entity

import "time"

// ShopSettings es el registro de configuración de la tienda, versionado.
// Cada actualización escribe una nueva versión; las lecturas siempre devuelven
// la versión vigente. Sustituye cualquier estado ambiente no contratado
// (la configuración nunca vive en el cliente).
type ShopSettings struct {
	ID            string
	Version       int // incrementa en cada actualización (control optimista)
	ShopName      string
	LegalName     string // razón social del emisor en la factura PDF
	TaxID         string // SIRET del emisor
	Address       string
	Phone         string
	Email         string
	DeliverySlots []string // franjas horarias ofrecidas en el checkout
	UpdatedBy     string   // usuario admin que escribió la versión
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
