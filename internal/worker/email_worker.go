package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/infra"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/service"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// NewEmailHandler consumes jobs:email. It renders the venta's ticket
// PDF and sends it through the SMTP breaker, so a downed relay never
// blocks the worker goroutine on connection timeouts.
func NewEmailHandler(ventas repository.VentaRepository, mailer *infra.Mailer, cb *infra.CircuitBreaker, negocio, storagePath string) Handler {
	return func(ctx context.Context, payload json.RawMessage) error {
		var job service.TicketEmailJob
		if err := json.Unmarshal(payload, &job); err != nil {
			return fmt.Errorf("email: unmarshal job: %w", err)
		}
		ventaID, err := uuid.Parse(job.VentaID)
		if err != nil {
			return fmt.Errorf("email: venta_id inválido: %w", err)
		}
		venta, err := ventas.FindByID(ctx, ventaID)
		if err != nil {
			return fmt.Errorf("email: cargar venta: %w", err)
		}

		pdfPath, err := infra.GenerateTicketPDF(venta, negocio, storagePath)
		if err != nil {
			return err
		}

		subject := fmt.Sprintf("Tu ticket de %s", negocio)
		body := fmt.Sprintf("Gracias por tu visita. Total: $%s", venta.TotalNeto.StringFixed(2))
		err = cb.Execute(func() error {
			return mailer.SendTicket(job.Email, subject, body, pdfPath)
		})
		if err != nil {
			return fmt.Errorf("email: enviar ticket: %w", err)
		}

		log.Info().Str("venta_id", job.VentaID).Str("email", job.Email).Msg("ticket enviado por email")
		return nil
	}
}
