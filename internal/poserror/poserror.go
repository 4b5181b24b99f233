// Package poserror defines the domain error taxonomy of the sale and
// inventory engine. Every error carries enough context (entity id,
// expected vs. actual) to render a user-facing message; none is retried
// automatically by the core.
package poserror

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConflictError: a precondition was invalidated by a concurrent change
// (second open turno on the same caja, serialization failure). The
// caller may retry; all state is left unchanged.
type ConflictError struct {
	Entidad string
	ID      uuid.UUID
	Detalle string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflicto en %s %s: %s", e.Entidad, e.ID, e.Detalle)
}

// InvalidStateError: the operation was attempted in the wrong lifecycle
// state. Not retryable — it is a caller bug.
type InvalidStateError struct {
	Entidad  string
	ID       uuid.UUID
	Estado   string
	Esperado string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s %s está %s (se esperaba %s)", e.Entidad, e.ID, e.Estado, e.Esperado)
}

// PaymentMismatchError: Σ(pagos) != total_neto + propina at close time.
type PaymentMismatchError struct {
	VentaID   uuid.UUID
	Requerido decimal.Decimal
	Pagado    decimal.Decimal
}

func (e *PaymentMismatchError) Error() string {
	return fmt.Sprintf("pagos de la venta %s no cuadran: requerido %s, pagado %s",
		e.VentaID, e.Requerido, e.Pagado)
}

// EmptySaleError: a venta cannot close with zero items.
type EmptySaleError struct {
	VentaID uuid.UUID
}

func (e *EmptySaleError) Error() string {
	return fmt.Sprintf("la venta %s no tiene items", e.VentaID)
}

// InsufficientStockError: stock would go negative for an ingredient of
// a producto flagged controla_stock.
type InsufficientStockError struct {
	IngredienteID uuid.UUID
	Ingrediente   string
	Disponible    decimal.Decimal
	Requerido     decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente de %s (%s): disponible %s, requerido %s",
		e.Ingrediente, e.IngredienteID, e.Disponible, e.Requerido)
}

// PendingSalesError: a turno cannot close while ventas referencing it
// are still abiertas.
type PendingSalesError struct {
	TurnoID        uuid.UUID
	VentasAbiertas int64
}

func (e *PendingSalesError) Error() string {
	return fmt.Sprintf("el turno %s tiene %d venta(s) abierta(s)", e.TurnoID, e.VentasAbiertas)
}

// ConfigurationError: missing catalog data (receta, precio) for a
// producto that requires it. Surfaced to the caller, never ignored.
type ConfigurationError struct {
	Detalle string
}

func (e *ConfigurationError) Error() string {
	return "configuración inválida: " + e.Detalle
}

// NotFoundError: entity lookup by id failed.
type NotFoundError struct {
	Entidad string
	ID      uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s no encontrado", e.Entidad, e.ID)
}
