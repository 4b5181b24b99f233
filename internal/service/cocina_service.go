package service

import (
	"context"
	"encoding/json"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// pedidoItem is the frozen line snapshot stored on a kitchen ticket.
type pedidoItem struct {
	Producto      string          `json:"producto"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	Modificadores json.RawMessage `json:"modificadores,omitempty"`
}

// CocinaService dispatches kitchen tickets from open ventas and walks
// them through pendiente → en_curso → listo. The item snapshot is
// frozen at dispatch so later edits to the venta don't reach the
// kitchen display.
type CocinaService interface {
	Despachar(ctx context.Context, ventaID uuid.UUID) (*model.PedidoCocina, error)
	ActualizarEstado(ctx context.Context, pedidoID uuid.UUID, estado model.PedidoEstado) (*model.PedidoCocina, error)
	ListPorEstado(ctx context.Context, estado model.PedidoEstado) ([]model.PedidoCocina, error)
}

type cocinaService struct {
	pedidos repository.CocinaRepository
	ventas  repository.VentaRepository
	jobs    Encolador
}

func NewCocinaService(pedidos repository.CocinaRepository, ventas repository.VentaRepository, jobs Encolador) CocinaService {
	return &cocinaService{pedidos: pedidos, ventas: ventas, jobs: jobs}
}

func (s *cocinaService) Despachar(ctx context.Context, ventaID uuid.UUID) (*model.PedidoCocina, error) {
	venta, err := s.ventas.FindByID(ctx, ventaID)
	if err != nil {
		return nil, notFoundOr("venta", ventaID, err)
	}
	if venta.Estado != model.VentaAbierta {
		return nil, &poserror.InvalidStateError{
			Entidad: "venta", ID: ventaID,
			Estado: string(venta.Estado), Esperado: string(model.VentaAbierta),
		}
	}
	if len(venta.Items) == 0 {
		return nil, &poserror.EmptySaleError{VentaID: ventaID}
	}

	items := make([]pedidoItem, 0, len(venta.Items))
	for _, item := range venta.Items {
		nombre := item.ProductoID.String()
		if item.Producto != nil {
			nombre = item.Producto.Nombre
		}
		items = append(items, pedidoItem{
			Producto:      nombre,
			Cantidad:      item.Cantidad,
			Modificadores: json.RawMessage(item.Modificadores),
		})
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}

	pedido := &model.PedidoCocina{
		VentaID: ventaID,
		Estado:  model.PedidoPendiente,
		Items:   model.JSONB(raw),
	}
	if err := s.pedidos.Create(ctx, pedido); err != nil {
		return nil, err
	}

	if s.jobs != nil {
		job := PedidoCocinaJob{PedidoID: pedido.ID.String(), VentaID: ventaID.String()}
		if err := s.jobs.Encolar(ctx, ColaCocina, job); err != nil {
			log.Warn().Err(err).Str("pedido_id", pedido.ID.String()).Msg("no se pudo encolar pedido de cocina")
		}
	}
	return pedido, nil
}

// transiciones válidas del ticket de cocina; sólo hacia adelante.
var transicionesPedido = map[model.PedidoEstado]model.PedidoEstado{
	model.PedidoPendiente: model.PedidoEnCurso,
	model.PedidoEnCurso:   model.PedidoListo,
}

func (s *cocinaService) ActualizarEstado(ctx context.Context, pedidoID uuid.UUID, estado model.PedidoEstado) (*model.PedidoCocina, error) {
	pedido, err := s.pedidos.FindByID(ctx, pedidoID)
	if err != nil {
		return nil, notFoundOr("pedido", pedidoID, err)
	}
	if transicionesPedido[pedido.Estado] != estado {
		return nil, &poserror.InvalidStateError{
			Entidad: "pedido", ID: pedidoID,
			Estado: string(pedido.Estado), Esperado: string(estado),
		}
	}
	if err := s.pedidos.UpdateEstado(ctx, pedidoID, estado); err != nil {
		return nil, err
	}
	pedido.Estado = estado
	return pedido, nil
}

func (s *cocinaService) ListPorEstado(ctx context.Context, estado model.PedidoEstado) ([]model.PedidoCocina, error) {
	return s.pedidos.ListPorEstado(ctx, estado)
}
