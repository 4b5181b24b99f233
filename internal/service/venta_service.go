package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService is the sale engine. Every mutation of an open venta
// locks its row, applies the change and recomputes the derived totals
// in the same transaction. Closing settles payments, consumes recipe
// stock and credits the cash ledger atomically; voiding a closed venta
// appends compensating entries instead of rewriting history.
type VentaService interface {
	Abrir(ctx context.Context, mozoID *uuid.UUID, req dto.AbrirVentaRequest) (*model.Venta, error)
	Detalle(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter repository.VentaFilter) ([]model.Venta, int64, error)

	AgregarItem(ctx context.Context, ventaID uuid.UUID, req dto.AgregarItemRequest) (*model.Venta, error)
	EliminarItem(ctx context.Context, ventaID, itemID uuid.UUID) (*model.Venta, error)
	AplicarDescuento(ctx context.Context, ventaID uuid.UUID, req dto.DescuentoRequest) (*model.Venta, error)
	RegistrarPago(ctx context.Context, ventaID uuid.UUID, req dto.PagoRequest) (*model.Venta, error)

	Cerrar(ctx context.Context, ventaID uuid.UUID, req dto.CerrarVentaRequest) (*model.Venta, error)
	Anular(ctx context.Context, ventaID uuid.UUID, req dto.AnularVentaRequest) (*model.Venta, error)
}

type ventaService struct {
	ventas   repository.VentaRepository
	cajas    repository.CajaRepository
	stock    repository.StockRepository
	catalogo repository.CatalogoRepository
	jobs     Encolador
}

func NewVentaService(
	ventas repository.VentaRepository,
	cajas repository.CajaRepository,
	stock repository.StockRepository,
	catalogo repository.CatalogoRepository,
	jobs Encolador,
) VentaService {
	return &ventaService{ventas: ventas, cajas: cajas, stock: stock, catalogo: catalogo, jobs: jobs}
}

func (s *ventaService) Abrir(ctx context.Context, mozoID *uuid.UUID, req dto.AbrirVentaRequest) (*model.Venta, error) {
	venta := &model.Venta{
		Tipo:   model.VentaTipo(req.Tipo),
		Estado: model.VentaAbierta,
		MozoID: mozoID,
	}
	if req.MesaID != nil {
		id, err := uuid.Parse(*req.MesaID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "mesa_id inválido"}
		}
		venta.MesaID = &id
	}
	if req.ClienteID != nil {
		id, err := uuid.Parse(*req.ClienteID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "cliente_id inválido"}
		}
		venta.ClienteID = &id
	}
	if req.TurnoID != nil {
		id, err := uuid.Parse(*req.TurnoID)
		if err != nil {
			return nil, &poserror.ConfigurationError{Detalle: "turno_id inválido"}
		}
		turno, err := s.cajas.FindTurnoByID(ctx, id)
		if err != nil {
			return nil, notFoundOr("turno", id, err)
		}
		if turno.Estado != model.TurnoAbierto {
			return nil, &poserror.InvalidStateError{
				Entidad: "turno", ID: id,
				Estado: string(turno.Estado), Esperado: string(model.TurnoAbierto),
			}
		}
		venta.TurnoID = &id
		venta.CajaID = &turno.CajaID
	}
	if err := s.ventas.Create(ctx, venta); err != nil {
		return nil, err
	}
	return venta, nil
}

func (s *ventaService) Detalle(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	venta, err := s.ventas.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("venta", id, err)
	}
	return venta, nil
}

func (s *ventaService) List(ctx context.Context, filter repository.VentaFilter) ([]model.Venta, int64, error) {
	return s.ventas.List(ctx, filter)
}

// recalcularTx refreshes the derived totals from the venta's current
// items and discounts. A standing cliente discount participates as one
// more percentage entry without being persisted on the venta.
func (s *ventaService) recalcularTx(tx *gorm.DB, ventaID uuid.UUID) error {
	venta, err := s.ventas.FindByIDTx(tx, ventaID)
	if err != nil {
		return err
	}
	bruto := decimal.Zero
	for _, item := range venta.Items {
		bruto = bruto.Add(item.Subtotal())
	}
	descuentos := venta.Descuentos
	if venta.Cliente != nil && venta.Cliente.DescuentoPct != nil && venta.Cliente.DescuentoPct.IsPositive() {
		descuentos = append(descuentos, model.Descuento{
			Tipo:  model.DescuentoPorcentual,
			Valor: *venta.Cliente.DescuentoPct,
		})
	}
	totalDescuento, neto := CalcularDescuento(bruto, descuentos)
	return s.ventas.UpdateTotalesTx(tx, ventaID, bruto, totalDescuento, neto)
}

// lockAbiertaTx locks the venta and verifies it can still be edited.
func (s *ventaService) lockAbiertaTx(tx *gorm.DB, ventaID uuid.UUID) (*model.Venta, error) {
	venta, err := s.ventas.FindForUpdateTx(tx, ventaID)
	if err != nil {
		return nil, notFoundOr("venta", ventaID, err)
	}
	if venta.Estado != model.VentaAbierta {
		return nil, &poserror.InvalidStateError{
			Entidad: "venta", ID: ventaID,
			Estado: string(venta.Estado), Esperado: string(model.VentaAbierta),
		}
	}
	return venta, nil
}

func (s *ventaService) AgregarItem(ctx context.Context, ventaID uuid.UUID, req dto.AgregarItemRequest) (*model.Venta, error) {
	productoID, err := uuid.Parse(req.ProductoID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "producto_id inválido"}
	}
	producto, err := s.catalogo.FindProductoByID(ctx, productoID)
	if err != nil {
		return nil, notFoundOr("producto", productoID, err)
	}
	if !producto.Activo {
		return nil, &poserror.InvalidStateError{
			Entidad: "producto", ID: productoID, Estado: "inactivo", Esperado: "activo",
		}
	}

	// Virtual stock check: nothing is committed here, the close re-checks
	// under lock. This only rejects what would certainly fail at close.
	if producto.ControlaStock {
		consumos, err := ResolverConsumos([]model.VentaItem{{Producto: producto, Cantidad: req.Cantidad}})
		if err != nil {
			return nil, err
		}
		for _, con := range consumos {
			if !con.Bloquear {
				continue
			}
			ing, err := s.stock.FindIngrediente(ctx, con.Ingrediente.ID)
			if err != nil {
				return nil, err
			}
			if ing.StockActual.LessThan(con.Cantidad) {
				return nil, &poserror.InsufficientStockError{
					IngredienteID: ing.ID,
					Ingrediente:   ing.Nombre,
					Disponible:    ing.StockActual,
					Requerido:     con.Cantidad,
				}
			}
		}
	}

	precio := decimal.Zero
	if req.PrecioUnitario != nil {
		precio = *req.PrecioUnitario
	} else {
		precio, err = s.catalogo.PrecioActivo(ctx, productoID)
		if err != nil {
			return nil, err
		}
	}

	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if _, err := s.lockAbiertaTx(tx, ventaID); err != nil {
			return err
		}
		item := &model.VentaItem{
			VentaID:        ventaID,
			ProductoID:     productoID,
			Cantidad:       req.Cantidad,
			PrecioUnitario: precio,
			Modificadores:  model.JSONB(req.Modificadores),
		}
		if err := s.ventas.CreateItemTx(tx, item); err != nil {
			return err
		}
		return s.recalcularTx(tx, ventaID)
	})
	if err != nil {
		return nil, err
	}
	return s.ventas.FindByID(ctx, ventaID)
}

func (s *ventaService) EliminarItem(ctx context.Context, ventaID, itemID uuid.UUID) (*model.Venta, error) {
	err := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if _, err := s.lockAbiertaTx(tx, ventaID); err != nil {
			return err
		}
		if err := s.ventas.DeleteItemTx(tx, ventaID, itemID); err != nil {
			return notFoundOr("item", itemID, err)
		}
		return s.recalcularTx(tx, ventaID)
	})
	if err != nil {
		return nil, err
	}
	return s.ventas.FindByID(ctx, ventaID)
}

func (s *ventaService) AplicarDescuento(ctx context.Context, ventaID uuid.UUID, req dto.DescuentoRequest) (*model.Venta, error) {
	tipo := model.DescuentoTipo(req.Tipo)
	if tipo == model.DescuentoPorcentual && req.Valor.GreaterThan(cien) {
		return nil, &poserror.ConfigurationError{Detalle: "descuento porcentual mayor a 100"}
	}
	err := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if _, err := s.lockAbiertaTx(tx, ventaID); err != nil {
			return err
		}
		d := &model.Descuento{
			VentaID: &ventaID,
			Tipo:    tipo,
			Valor:   req.Valor,
			Motivo:  req.Motivo,
		}
		if err := s.ventas.CreateDescuentoTx(tx, d); err != nil {
			return err
		}
		return s.recalcularTx(tx, ventaID)
	})
	if err != nil {
		return nil, err
	}
	return s.ventas.FindByID(ctx, ventaID)
}

func (s *ventaService) RegistrarPago(ctx context.Context, ventaID uuid.UUID, req dto.PagoRequest) (*model.Venta, error) {
	err := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if _, err := s.lockAbiertaTx(tx, ventaID); err != nil {
			return err
		}
		pago := &model.Pago{
			VentaID:    ventaID,
			Medio:      model.MedioPago(req.Medio),
			Monto:      req.Monto,
			Referencia: req.Referencia,
		}
		return s.ventas.CreatePagoTx(tx, pago)
	})
	if err != nil {
		return nil, err
	}
	return s.ventas.FindByID(ctx, ventaID)
}

func (s *ventaService) Cerrar(ctx context.Context, ventaID uuid.UUID, req dto.CerrarVentaRequest) (*model.Venta, error) {
	cajaID, err := uuid.Parse(req.CajaID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "caja_id inválido"}
	}
	turnoID, err := uuid.Parse(req.TurnoID)
	if err != nil {
		return nil, &poserror.ConfigurationError{Detalle: "turno_id inválido"}
	}

	err = runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		if _, err := s.lockAbiertaTx(tx, ventaID); err != nil {
			return err
		}
		venta, err := s.ventas.FindByIDTx(tx, ventaID)
		if err != nil {
			return err
		}
		if len(venta.Items) == 0 {
			return &poserror.EmptySaleError{VentaID: ventaID}
		}

		turno, err := s.cajas.FindTurnoAbiertoPorCajaTx(tx, cajaID)
		if err != nil {
			return err
		}
		if turno == nil || turno.ID != turnoID {
			return &poserror.InvalidStateError{
				Entidad: "turno", ID: turnoID,
				Estado: "cerrado o inexistente", Esperado: string(model.TurnoAbierto),
			}
		}

		// Freeze the totals before checking payments.
		bruto := decimal.Zero
		for _, item := range venta.Items {
			bruto = bruto.Add(item.Subtotal())
		}
		descuentos := venta.Descuentos
		if venta.Cliente != nil && venta.Cliente.DescuentoPct != nil && venta.Cliente.DescuentoPct.IsPositive() {
			descuentos = append(descuentos, model.Descuento{
				Tipo:  model.DescuentoPorcentual,
				Valor: *venta.Cliente.DescuentoPct,
			})
		}
		totalDescuento, neto := CalcularDescuento(bruto, descuentos)

		pagado := decimal.Zero
		for _, p := range venta.Pagos {
			pagado = pagado.Add(p.Monto)
		}
		requerido := neto.Add(req.Propina)
		if !pagado.Equal(requerido) {
			return &poserror.PaymentMismatchError{VentaID: ventaID, Requerido: requerido, Pagado: pagado}
		}

		// Consume recipe stock.
		consumos, err := ResolverConsumos(venta.Items)
		if err != nil {
			return err
		}
		for _, c := range consumos {
			mov := &model.StockMovimiento{
				IngredienteID: c.Ingrediente.ID,
				Tipo:          model.StockReceta,
				Delta:         c.Cantidad.Neg(),
				ReferenciaID:  &ventaID,
			}
			if err := s.stock.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
			err := s.stock.AplicarDeltaTx(tx, c.Ingrediente.ID, c.Cantidad.Neg(), c.Bloquear)
			if errors.Is(err, repository.ErrStockInsuficiente) {
				// The preloaded snapshot can be stale by now; report the
				// value the guard actually rejected, read under its lock.
				disponible := c.Ingrediente.StockActual
				if fresco, ferr := s.stock.FindIngredienteTx(tx, c.Ingrediente.ID); ferr == nil {
					disponible = fresco.StockActual
				}
				return &poserror.InsufficientStockError{
					IngredienteID: c.Ingrediente.ID,
					Ingrediente:   c.Ingrediente.Nombre,
					Disponible:    disponible,
					Requerido:     c.Cantidad,
				}
			}
			if err != nil {
				return err
			}
		}

		// Credit the cash ledger, one entry per pago.
		for _, p := range venta.Pagos {
			mov := &model.MovimientoCaja{
				TurnoID:      turnoID,
				Tipo:         model.MovimientoIngreso,
				Origen:       model.OrigenVenta,
				MedioPago:    p.Medio,
				Monto:        p.Monto,
				Descripcion:  fmt.Sprintf("venta %s", ventaID),
				ReferenciaID: &ventaID,
			}
			if err := s.cajas.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
		}

		if err := s.ventas.UpdateTotalesTx(tx, ventaID, bruto, totalDescuento, neto); err != nil {
			return err
		}
		return s.ventas.CerrarTx(tx, ventaID, cajaID, turnoID, req.Propina)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("venta_id", ventaID.String()).Str("turno_id", turnoID.String()).Msg("venta cerrada")
	s.publicarPostCierre(ctx, ventaID, req.ClienteEmail)
	return s.ventas.FindByID(ctx, ventaID)
}

// publicarPostCierre enqueues the asynchronous follow-ups of a close:
// the e-mailed ticket and a low-stock sweep. Failures only log; the
// close already committed.
func (s *ventaService) publicarPostCierre(ctx context.Context, ventaID uuid.UUID, email *string) {
	if s.jobs == nil {
		return
	}
	if email != nil && *email != "" {
		job := TicketEmailJob{VentaID: ventaID.String(), Email: *email}
		if err := s.jobs.Encolar(ctx, ColaEmail, job); err != nil {
			log.Warn().Err(err).Str("venta_id", ventaID.String()).Msg("no se pudo encolar ticket por email")
		}
	}
	job := AlertaJob{Tipo: "stock_bajo", Detalle: fmt.Sprintf("revisión post venta %s", ventaID)}
	if err := s.jobs.Encolar(ctx, ColaAlertas, job); err != nil {
		log.Warn().Err(err).Str("venta_id", ventaID.String()).Msg("no se pudo encolar alerta de stock")
	}
}

func (s *ventaService) Anular(ctx context.Context, ventaID uuid.UUID, req dto.AnularVentaRequest) (*model.Venta, error) {
	err := runTx(ctx, s.ventas.DB(), func(tx *gorm.DB) error {
		venta, err := s.ventas.FindForUpdateTx(tx, ventaID)
		if err != nil {
			return notFoundOr("venta", ventaID, err)
		}
		switch venta.Estado {
		case model.VentaAnulada:
			return &poserror.InvalidStateError{
				Entidad: "venta", ID: ventaID,
				Estado: string(model.VentaAnulada), Esperado: "abierta o cerrada",
			}
		case model.VentaAbierta:
			// Nothing was committed yet: no ledgers to compensate.
			return s.ventas.AnularTx(tx, ventaID, req.Motivo)
		}

		full, err := s.ventas.FindByIDTx(tx, ventaID)
		if err != nil {
			return err
		}

		// Reverse stock with compensating entries; the original
		// movimientos stay untouched.
		consumos, err := ResolverConsumos(full.Items)
		if err != nil {
			return err
		}
		motivo := fmt.Sprintf("anulación venta %s: %s", ventaID, req.Motivo)
		for _, c := range consumos {
			mov := &model.StockMovimiento{
				IngredienteID: c.Ingrediente.ID,
				Tipo:          model.StockAjuste,
				Delta:         c.Cantidad,
				ReferenciaID:  &ventaID,
				Motivo:        &motivo,
			}
			if err := s.stock.CreateMovimientoTx(tx, mov); err != nil {
				return err
			}
			if err := s.stock.AplicarDeltaTx(tx, c.Ingrediente.ID, c.Cantidad, false); err != nil {
				return err
			}
		}

		// Reverse cash with egresos mirroring each pago.
		if full.TurnoID != nil {
			for _, p := range full.Pagos {
				mov := &model.MovimientoCaja{
					TurnoID:      *full.TurnoID,
					Tipo:         model.MovimientoEgreso,
					Origen:       model.OrigenVenta,
					MedioPago:    p.Medio,
					Monto:        p.Monto,
					Descripcion:  motivo,
					ReferenciaID: &ventaID,
				}
				if err := s.cajas.CreateMovimientoTx(tx, mov); err != nil {
					return err
				}
			}
		}
		return s.ventas.AnularTx(tx, ventaID, req.Motivo)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("venta_id", ventaID.String()).Str("motivo", req.Motivo).Msg("venta anulada")
	return s.ventas.FindByID(ctx, ventaID)
}
