package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrBudgetExceeded    = errors.New("presupuesto mensual excedido")
	ErrAccountNotActive  = errors.New("cuenta corporativa no activa")
	ErrNothingToInvoice  = errors.New("sin pedidos que facturar en el período")
	ErrDispatchFailed    = errors.New("envío de la factura fallido")
)
