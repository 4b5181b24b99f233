package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NewCocinaHandler consumes jobs:cocina. The kitchen display polls the
// pedidos API; this handler verifies the ticket landed and emits the
// structured event the display's push channel tails.
func NewCocinaHandler(pedidos repository.CocinaRepository) Handler {
	return func(ctx context.Context, payload json.RawMessage) error {
		var job service.PedidoCocinaJob
		if err := json.Unmarshal(payload, &job); err != nil {
			return fmt.Errorf("cocina: unmarshal job: %w", err)
		}
		pedidoID, err := uuid.Parse(job.PedidoID)
		if err != nil {
			return fmt.Errorf("cocina: pedido_id inválido: %w", err)
		}
		pedido, err := pedidos.FindByID(ctx, pedidoID)
		if err != nil {
			return fmt.Errorf("cocina: cargar pedido: %w", err)
		}

		log.Info().
			Str("pedido_id", job.PedidoID).
			Str("venta_id", job.VentaID).
			Str("estado", string(pedido.Estado)).
			Msg("pedido despachado a cocina")
		return nil
	}
}
