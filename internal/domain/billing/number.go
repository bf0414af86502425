package billing

import "fmt"

// FormatInvoiceNumber construye el número de factura legible y trazable:
// FAC-AAAAMM-NNNN, donde AAAAMM es el período facturado y NNNN el consecutivo
// dentro del mes de emisión. El consecutivo lo asigna la capa de persistencia
// dentro de la transacción de generación (MAX+1 por mes).
func FormatInvoiceNumber(p Period, sequence int) string {
	return fmt.Sprintf("FAC-%04d%02d-%04d", p.Year, p.Month, sequence)
}

// FormatOrderNumber construye el número de pedido legible: BF-<epoch segundos>.
func FormatOrderNumber(unixSeconds int64) string {
	return fmt.Sprintf("BF-%d", unixSeconds)
}
