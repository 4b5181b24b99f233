package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/rs/zerolog/log"
)

// NewAlertaHandler consumes jobs:alertas. Alerts are an operational
// sink: each one becomes a structured warn-level event that the log
// pipeline fans out (dashboards, notification bots).
func NewAlertaHandler() Handler {
	return func(_ context.Context, payload json.RawMessage) error {
		var job service.AlertaJob
		if err := json.Unmarshal(payload, &job); err != nil {
			return fmt.Errorf("alerta: unmarshal job: %w", err)
		}
		log.Warn().
			Str("tipo", job.Tipo).
			Str("detalle", job.Detalle).
			Msg("alerta operativa")
		return nil
	}
}
