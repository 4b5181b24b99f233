package service

import (
	"context"
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// StockService fronts the ingredient ledger. Manual movimientos
// (compras, ajustes, mermas) append entries the same way the sale
// engine does; the cached stock never moves without its ledger entry.
type StockService interface {
	CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*model.Ingrediente, error)
	Detalle(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error)
	ListIngredientes(ctx context.Context) ([]model.Ingrediente, error)

	RegistrarMovimiento(ctx context.Context, req dto.MovimientoStockRequest) (*model.StockMovimiento, error)
	ListMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]model.StockMovimiento, int64, error)

	// Alertas lists active ingredients at or below their minimum.
	Alertas(ctx context.Context) ([]model.Ingrediente, error)
	// VerificarConsistencia replays the full ledger of one ingredient
	// and compares it against the cached stock.
	VerificarConsistencia(ctx context.Context, ingredienteID uuid.UUID) (*dto.ConsistenciaResponse, error)
}

type stockService struct {
	stock repository.StockRepository
	jobs  Encolador
}

func NewStockService(stock repository.StockRepository, jobs Encolador) StockService {
	return &stockService{stock: stock, jobs: jobs}
}

func (s *stockService) CrearIngrediente(ctx context.Context, req dto.CrearIngredienteRequest) (*model.Ingrediente, error) {
	ing := &model.Ingrediente{
		Nombre:      req.Nombre,
		Unidad:      req.Unidad,
		StockMinimo: req.StockMinimo,
		Activo:      true,
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "categoria_id inválido"}
		}
		ing.CategoriaID = &id
	}
	if err := s.stock.CreateIngrediente(ctx, ing); err != nil {
		return nil, err
	}
	return ing, nil
}

func (s *stockService) Detalle(ctx context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	ing, err := s.stock.FindIngrediente(ctx, id)
	if err != nil {
		return nil, notFoundOr("ingrediente", id, err)
	}
	return ing, nil
}

func (s *stockService) ListIngredientes(ctx context.Context) ([]model.Ingrediente, error) {
	return s.stock.ListIngredientes(ctx)
}

func (s *stockService) RegistrarMovimiento(ctx context.Context, req dto.MovimientoStockRequest) (*model.StockMovimiento, error) {
	ingredienteID, err := uuid.Parse(req.IngredienteID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "ingrediente_id inválido"}
	}
	if req.Delta.IsZero() {
		return nil, &poserror.ConfigurationError{Detalle: "delta no puede ser cero"}
	}

	var mov *model.StockMovimiento
	err = runTx(ctx, s.stock.DB(), func(tx *gorm.DB) error {
		if _, err := s.stock.FindIngredienteTx(tx, ingredienteID); err != nil {
			return notFoundOr("ingrediente", ingredienteID, err)
		}
		mov = &model.StockMovimiento{
			IngredienteID: ingredienteID,
			Tipo:          model.StockTipo(req.Tipo),
			Delta:         req.Delta,
			Motivo:        req.Motivo,
		}
		if req.ReferenciaID != nil {
			refID, err := uuid.Parse(*req.ReferenciaID)
			if err != nil {
				return &poserror.ConfigurationError{Detalle: "referencia_id inválido"}
			}
			mov.ReferenciaID = &refID
		}
		if err := s.stock.CreateMovimientoTx(tx, mov); err != nil {
			return err
		}
		// Manual entries correct reality, so a negative cache is
		// allowed here; only sales guard against it.
		return s.stock.AplicarDeltaTx(tx, ingredienteID, req.Delta, false)
	})
	if err != nil {
		return nil, err
	}

	s.alertaSiBajoMinimo(ctx, ingredienteID)
	return mov, nil
}

func (s *stockService) alertaSiBajoMinimo(ctx context.Context, ingredienteID uuid.UUID) {
	if s.jobs == nil {
		return
	}
	ing, err := s.stock.FindIngrediente(ctx, ingredienteID)
	if err != nil {
		return
	}
	if ing.StockActual.GreaterThan(ing.StockMinimo) {
		return
	}
	job := AlertaJob{
		Tipo: "stock_bajo",
		Detalle: fmt.Sprintf("%s en %s %s (mínimo %s)",
			ing.Nombre, ing.StockActual, ing.Unidad, ing.StockMinimo),
	}
	if err := s.jobs.Encolar(ctx, ColaAlertas, job); err != nil {
		log.Warn().Err(err).Str("ingrediente_id", ingredienteID.String()).Msg("no se pudo encolar alerta de stock")
	}
}

func (s *stockService) ListMovimientos(ctx context.Context, filter repository.MovimientoStockFilter) ([]model.StockMovimiento, int64, error) {
	return s.stock.ListMovimientos(ctx, filter)
}

func (s *stockService) Alertas(ctx context.Context) ([]model.Ingrediente, error) {
	return s.stock.ListBajoMinimo(ctx)
}

func (s *stockService) VerificarConsistencia(ctx context.Context, ingredienteID uuid.UUID) (*dto.ConsistenciaResponse, error) {
	ing, err := s.stock.FindIngrediente(ctx, ingredienteID)
	if err != nil {
		return nil, notFoundOr("ingrediente", ingredienteID, err)
	}
	ledger, err := s.stock.SumDeltas(ctx, ingredienteID)
	if err != nil {
		return nil, err
	}
	return &dto.ConsistenciaResponse{
		IngredienteID: ingredienteID.String(),
		StockCache:    ing.StockActual,
		StockLedger:   ledger,
		Consistente:   ing.StockActual.Equal(ledger),
	}, nil
}
