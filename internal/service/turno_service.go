package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TurnoService manages cajas, cash sessions and the manual side of the
// cash ledger. Opens serialize on a caja row lock so at most one turno
// per caja is ever abierto; closes settle the ledger and record the
// arqueo.
type TurnoService interface {
	CrearCaja(ctx context.Context, req dto.CrearCajaRequest) (*model.Caja, error)
	ListCajas(ctx context.Context) ([]model.Caja, error)

	Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirTurnoRequest) (*model.Turno, error)
	Cerrar(ctx context.Context, req dto.CerrarTurnoRequest) (*dto.CierreTurnoResponse, error)
	Detalle(ctx context.Context, id uuid.UUID) (*model.Turno, error)
	ListTurnos(ctx context.Context, page, limit int) ([]model.Turno, int64, error)
	// SaldoEsperado computes the running expected drawer balance of an
	// open turno. Never exposed to the cashier before a blind arqueo.
	SaldoEsperado(ctx context.Context, id uuid.UUID) (decimal.Decimal, error)

	RegistrarMovimientoManual(ctx context.Context, req dto.MovimientoManualRequest) (*model.MovimientoCaja, error)
	ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error)
}

type turnoService struct {
	cajas  repository.CajaRepository
	ventas repository.VentaRepository
	jobs   Encolador
}

func NewTurnoService(cajas repository.CajaRepository, ventas repository.VentaRepository, jobs Encolador) TurnoService {
	return &turnoService{cajas: cajas, ventas: ventas, jobs: jobs}
}

func (s *turnoService) CrearCaja(ctx context.Context, req dto.CrearCajaRequest) (*model.Caja, error) {
	caja := &model.Caja{Nombre: req.Nombre, Activo: true}
	if err := s.cajas.CreateCaja(ctx, caja); err != nil {
		return nil, err
	}
	return caja, nil
}

func (s *turnoService) ListCajas(ctx context.Context) ([]model.Caja, error) {
	return s.cajas.ListCajas(ctx)
}

func (s *turnoService) Abrir(ctx context.Context, usuarioID uuid.UUID, req dto.AbrirTurnoRequest) (*model.Turno, error) {
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "caja_id inválido"}
	}

	var turno *model.Turno
	err = runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
		caja, err := s.cajas.FindCajaForUpdateTx(tx, cajaID)
		if err != nil {
			return notFoundOr("caja", cajaID, err)
		}
		if !caja.Activo {
			return &poserror.InvalidStateError{
				Entidad: "caja", ID: cajaID, Estado: "inactiva", Esperado: "activa",
			}
		}
		abierto, err := s.cajas.FindTurnoAbiertoPorCajaTx(tx, cajaID)
		if err != nil {
			return err
		}
		if abierto != nil {
			return &poserror.ConflictError{
				Entidad: "caja", ID: cajaID,
				Detalle: fmt.Sprintf("ya tiene el turno %s abierto", abierto.ID),
			}
		}
		turno = &model.Turno{
			CajaID:       cajaID,
			UsuarioID:    usuarioID,
			Estado:       model.TurnoAbierto,
			SaldoInicial: req.SaldoInicial,
			ArqueoCiego:  req.ArqueoCiego,
			AbiertoAt:    time.Now(),
		}
		return s.cajas.CreateTurnoTx(tx, turno)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("turno_id", turno.ID.String()).Str("caja_id", cajaID.String()).
		Str("saldo_inicial", req.SaldoInicial.String()).Msg("turno abierto")
	return turno, nil
}

func (s *turnoService) Cerrar(ctx context.Context, req dto.CerrarTurnoRequest) (*dto.CierreTurnoResponse, error) {
	turnoID, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "turno_id inválido"}
	}

	var resp *dto.CierreTurnoResponse
	err = runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
		// Row lock: concurrent closes and manual movimientos serialize
		// here, so the arqueo sums a ledger no one else is appending to
		// and saldo_final is written exactly once.
		turno, err := s.cajas.FindTurnoForUpdateTx(tx, turnoID)
		if err != nil {
			return notFoundOr("turno", turnoID, err)
		}
		if turno.Estado != model.TurnoAbierto {
			return &poserror.InvalidStateError{
				Entidad: "turno", ID: turnoID,
				Estado: string(turno.Estado), Esperado: string(model.TurnoAbierto),
			}
		}

		abiertas, err := s.ventas.CountAbiertasPorTurnoTx(tx, turnoID)
		if err != nil {
			return err
		}
		if abiertas > 0 {
			return &poserror.PendingSalesError{TurnoID: turnoID, VentasAbiertas: abiertas}
		}

		ingresos, egresos, err := s.cajas.SumMovimientosTx(tx, turnoID)
		if err != nil {
			return err
		}
		esperado := turno.SaldoInicial.Add(ingresos).Sub(egresos)
		desvio := esperado.Sub(req.SaldoContado)
		ahora := time.Now()

		turno.Estado = model.TurnoCerrado
		turno.SaldoEsperado = &esperado
		turno.SaldoFinal = &req.SaldoContado
		turno.Desvio = &desvio
		turno.Observaciones = req.Observaciones
		turno.CerradoAt = &ahora
		if err := s.cajas.UpdateTurnoTx(tx, turno); err != nil {
			return err
		}

		resp = &dto.CierreTurnoResponse{
			TurnoID:       turnoID.String(),
			SaldoEsperado: esperado,
			SaldoContado:  req.SaldoContado,
			Desvio:        desvio,
			Estado:        string(model.TurnoCerrado),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("turno_id", turnoID.String()).
		Str("esperado", resp.SaldoEsperado.String()).
		Str("contado", resp.SaldoContado.String()).
		Str("desvio", resp.Desvio.String()).Msg("turno cerrado")

	if !resp.Desvio.IsZero() && s.jobs != nil {
		job := AlertaJob{
			Tipo:    "desvio_caja",
			Detalle: fmt.Sprintf("turno %s cerrado con desvío %s", turnoID, resp.Desvio),
		}
		if err := s.jobs.Encolar(ctx, ColaAlertas, job); err != nil {
			log.Warn().Err(err).Str("turno_id", turnoID.String()).Msg("no se pudo encolar alerta de desvío")
		}
	}
	return resp, nil
}

func (s *turnoService) Detalle(ctx context.Context, id uuid.UUID) (*model.Turno, error) {
	turno, err := s.cajas.FindTurnoByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("turno", id, err)
	}
	return turno, nil
}

func (s *turnoService) ListTurnos(ctx context.Context, page, limit int) ([]model.Turno, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	return s.cajas.ListTurnos(ctx, page, limit)
}

func (s *turnoService) SaldoEsperado(ctx context.Context, id uuid.UUID) (decimal.Decimal, error) {
	var esperado decimal.Decimal
	err := runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
		turno, err := s.cajas.FindTurnoByID(ctx, id)
		if err != nil {
			return notFoundOr("turno", id, err)
		}
		ingresos, egresos, err := s.cajas.SumMovimientosTx(tx, id)
		if err != nil {
			return err
		}
		esperado = turno.SaldoInicial.Add(ingresos).Sub(egresos)
		return nil
	})
	return esperado, err
}

func (s *turnoService) RegistrarMovimientoManual(ctx context.Context, req dto.MovimientoManualRequest) (*model.MovimientoCaja, error) {
	turnoID, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "turno_id inválido"}
	}

	var mov *model.MovimientoCaja
	err = runTx(ctx, s.cajas.DB(), func(tx *gorm.DB) error {
		// Same lock as Cerrar: the estado check stays valid until commit,
		// no entry can slip in under a close already summing the ledger.
		turno, err := s.cajas.FindTurnoForUpdateTx(tx, turnoID)
		if err != nil {
			return notFoundOr("turno", turnoID, err)
		}
		if turno.Estado != model.TurnoAbierto {
			return &poserror.InvalidStateError{
				Entidad: "turno", ID: turnoID,
				Estado: string(turno.Estado), Esperado: string(model.TurnoAbierto),
			}
		}
		mov = &model.MovimientoCaja{
			TurnoID:     turnoID,
			Tipo:        model.MovimientoTipo(req.Tipo),
			Origen:      model.OrigenManual,
			MedioPago:   model.MedioPago(req.MedioPago),
			Monto:       req.Monto,
			Descripcion: req.Descripcion,
		}
		return s.cajas.CreateMovimientoTx(tx, mov)
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

func (s *turnoService) ListMovimientos(ctx context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	return s.cajas.ListMovimientos(ctx, turnoID)
}
