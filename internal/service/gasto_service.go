package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// GastoService records expenses against the open turno. Each gasto
// debits the cash ledger and, when it purchases ingredients, credits
// the stock ledger with compra movimientos in the same transaction.
type GastoService interface {
	Crear(ctx context.Context, req dto.CrearGastoRequest) (*model.Gasto, error)
	Detalle(ctx context.Context, id uuid.UUID) (*model.Gasto, error)
	ListPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Gasto, error)

	CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*model.Proveedor, error)
	ListProveedores(ctx context.Context) ([]model.Proveedor, error)
}

type gastoService struct {
	gastos repository.GastoRepository
	cajas  repository.CajaRepository
	stock  repository.StockRepository
}

func NewGastoService(gastos repository.GastoRepository, cajas repository.CajaRepository, stock repository.StockRepository) GastoService {
	return &gastoService{gastos: gastos, cajas: cajas, stock: stock}
}

func (s *gastoService) Crear(ctx context.Context, req dto.CrearGastoRequest) (*model.Gasto, error) {
	turnoID, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "turno_id inválido"}
	}
	turno, err := s.cajas.FindTurnoByID(ctx, turnoID)
	if err != nil {
		return nil, notFoundOr("turno", turnoID, err)
	}
	if turno.Estado != model.TurnoAbierto {
		return nil, &poserror.InvalidStateError{
			Entidad: "turno", ID: turnoID,
			Estado: string(turno.Estado), Esperado: string(model.TurnoAbierto),
		}
	}

	gasto := &model.Gasto{
		TurnoID:        turnoID,
		Monto:          req.Monto,
		Fecha:          time.Now(),
		MedioPago:      model.MedioPago(req.MedioPago),
		Descripcion:    &req.Descripcion,
		ActualizaStock: req.ActualizaStock,
	}
	if req.ProveedorID != nil {
		id, err := uuid.Parse(*req.ProveedorID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "proveedor_id inválido"}
		}
		gasto.ProveedorID = &id
	}
	if req.CategoriaID != nil {
		id, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "categoria_id inválido"}
		}
		gasto.CategoriaID = &id
	}
	if len(req.Items) > 0 {
		raw, err := json.Marshal(req.Items)
		if err != nil {
			return nil, err
		}
		gasto.Items = model.JSONB(raw)
	}

	err = runTx(ctx, s.gastos.DB(), func(tx *gorm.DB) error {
		if err := s.gastos.CreateTx(tx, gasto); err != nil {
			return err
		}

		mov := &model.MovimientoCaja{
			TurnoID:      turnoID,
			Tipo:         model.MovimientoEgreso,
			Origen:       model.OrigenGasto,
			MedioPago:    gasto.MedioPago,
			Monto:        gasto.Monto,
			Descripcion:  req.Descripcion,
			ReferenciaID: &gasto.ID,
		}
		if err := s.cajas.CreateMovimientoTx(tx, mov); err != nil {
			return err
		}

		if !gasto.ActualizaStock {
			return nil
		}
		for _, item := range req.Items {
			ingredienteID, err := uuid.Parse(item.IngredienteID)
			if err != nil {
				return &poserror.ConfigurationError{Detalle: "ingrediente_id inválido en items"}
			}
			sm := &model.StockMovimiento{
				IngredienteID: ingredienteID,
				Tipo:          model.StockCompra,
				Delta:         item.Cantidad,
				ReferenciaID:  &gasto.ID,
			}
			if err := s.stock.CreateMovimientoTx(tx, sm); err != nil {
				return err
			}
			if err := s.stock.AplicarDeltaTx(tx, ingredienteID, item.Cantidad, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("gasto_id", gasto.ID.String()).Str("turno_id", turnoID.String()).
		Str("monto", gasto.Monto.String()).Msg("gasto registrado")
	return gasto, nil
}

func (s *gastoService) Detalle(ctx context.Context, id uuid.UUID) (*model.Gasto, error) {
	gasto, err := s.gastos.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("gasto", id, err)
	}
	return gasto, nil
}

func (s *gastoService) ListPorTurno(ctx context.Context, turnoID uuid.UUID) ([]model.Gasto, error) {
	return s.gastos.ListPorTurno(ctx, turnoID)
}

func (s *gastoService) CrearProveedor(ctx context.Context, req dto.CrearProveedorRequest) (*model.Proveedor, error) {
	p := &model.Proveedor{
		Nombre:   req.Nombre,
		Telefono: req.Telefono,
		Email:    req.Email,
	}
	if err := s.gastos.CreateProveedor(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *gastoService) ListProveedores(ctx context.Context) ([]model.Proveedor, error) {
	return s.gastos.ListProveedores(ctx)
}
