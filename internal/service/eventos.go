package service

import "context"

// Worker queue names. Each holds JSON payloads consumed by the BRPOP
// pool in internal/worker.
const (
	ColaCocina  = "jobs:cocina"
	ColaEmail   = "jobs:email"
	ColaAlertas = "jobs:alertas"
)

// Encolador publishes asynchronous jobs: kitchen tickets, e-mailed
// receipts and stock/cash alerts. Services tolerate a nil Encolador
// (unit tests, single-process deployments without Redis) by skipping
// the publish.
type Encolador interface {
	Encolar(ctx context.Context, cola string, payload interface{}) error
}

// TicketEmailJob asks the e-mail worker to render and send a receipt.
type TicketEmailJob struct {
	VentaID string `json:"venta_id"`
	Email   string `json:"email"`
}

// PedidoCocinaJob notifies the kitchen display of a new ticket.
type PedidoCocinaJob struct {
	PedidoID string `json:"pedido_id"`
	VentaID  string `json:"venta_id"`
}

// AlertaJob is a fire-and-forget operational alert (low stock, cash
// deviation at close).
type AlertaJob struct {
	Tipo    string `json:"tipo"`
	Detalle string `json:"detalle"`
}
