package dto

import "encoding/json"

type ActualizarPedidoRequest struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_curso listo"`
}

type PedidoCocinaResponse struct {
	ID        string          `json:"id"`
	VentaID   string          `json:"venta_id"`
	Estado    string          `json:"estado"`
	Items     json.RawMessage `json:"items"`
	CreatedAt string          `json:"created_at"`
}
