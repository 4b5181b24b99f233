package handler

import (
	"encoding/json"
	"time"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Model → DTO mappers. Handlers never return gorm models directly.

func uuidPtrToStr(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func timePtrToStr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func ventaToDTO(v *model.Venta) dto.VentaResponse {
	resp := dto.VentaResponse{
		ID:             v.ID.String(),
		Tipo:           string(v.Tipo),
		Estado:         string(v.Estado),
		MesaID:         uuidPtrToStr(v.MesaID),
		ClienteID:      uuidPtrToStr(v.ClienteID),
		TurnoID:        uuidPtrToStr(v.TurnoID),
		Items:          make([]dto.ItemVentaResponse, 0, len(v.Items)),
		Pagos:          make([]dto.PagoResponse, 0, len(v.Pagos)),
		Descuentos:     make([]dto.DescuentoResponse, 0, len(v.Descuentos)),
		TotalBruto:     v.TotalBruto,
		TotalDescuento: v.TotalDescuento,
		TotalNeto:      v.TotalNeto,
		Propina:        v.Propina,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range v.Items {
		item := dto.ItemVentaResponse{
			ID:             it.ID.String(),
			ProductoID:     it.ProductoID.String(),
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Subtotal:       it.Subtotal(),
			Modificadores:  json.RawMessage(it.Modificadores),
		}
		if it.Producto != nil {
			item.Producto = it.Producto.Nombre
		}
		resp.Items = append(resp.Items, item)
	}
	pagado := decimal.Zero
	for _, p := range v.Pagos {
		pagado = pagado.Add(p.Monto)
		resp.Pagos = append(resp.Pagos, dto.PagoResponse{
			Medio:      string(p.Medio),
			Monto:      p.Monto,
			Referencia: p.Referencia,
		})
	}
	resp.TotalPagado = pagado
	for _, d := range v.Descuentos {
		resp.Descuentos = append(resp.Descuentos, dto.DescuentoResponse{
			Tipo:   string(d.Tipo),
			Valor:  d.Valor,
			Motivo: d.Motivo,
		})
	}
	return resp
}

// turnoToDTO hides SaldoEsperado and Desvio while the turno is open:
// the cashier must count blind.
func turnoToDTO(t *model.Turno) dto.TurnoResponse {
	resp := dto.TurnoResponse{
		ID:            t.ID.String(),
		CajaID:        t.CajaID.String(),
		UsuarioID:     t.UsuarioID.String(),
		Estado:        string(t.Estado),
		SaldoInicial:  t.SaldoInicial,
		ArqueoCiego:   t.ArqueoCiego,
		Observaciones: t.Observaciones,
		AbiertoAt:     t.AbiertoAt.Format(time.RFC3339),
		CerradoAt:     timePtrToStr(t.CerradoAt),
	}
	if t.Estado == model.TurnoCerrado {
		resp.SaldoEsperado = t.SaldoEsperado
		resp.SaldoFinal = t.SaldoFinal
		resp.Desvio = t.Desvio
	}
	return resp
}

func cajaToDTO(c *model.Caja) dto.CajaResponse {
	return dto.CajaResponse{ID: c.ID.String(), Nombre: c.Nombre, Activo: c.Activo}
}

func movimientoCajaToDTO(m *model.MovimientoCaja) dto.MovimientoCajaResponse {
	return dto.MovimientoCajaResponse{
		ID:          m.ID.String(),
		Tipo:        string(m.Tipo),
		Origen:      string(m.Origen),
		MedioPago:   string(m.MedioPago),
		Monto:       m.Monto,
		Descripcion: m.Descripcion,
		CreatedAt:   m.CreatedAt.Format(time.RFC3339),
	}
}

func productoToDTO(p *model.Producto) dto.ProductoResponse {
	catID := p.CategoriaID.String()
	return dto.ProductoResponse{
		ID:            p.ID.String(),
		Nombre:        p.Nombre,
		SKU:           p.SKU,
		CategoriaID:   &catID,
		Precio:        p.PrecioLista,
		ControlaStock: p.ControlaStock,
		Favorito:      p.Favorito,
		Activo:        p.Activo,
		TieneReceta:   p.Receta != nil && len(p.Receta.Items) > 0,
	}
}

func recetaToDTO(p *model.Producto) dto.RecetaResponse {
	resp := dto.RecetaResponse{ProductoID: p.ID.String()}
	if p.Receta == nil {
		return resp
	}
	for _, it := range p.Receta.Items {
		item := dto.RecetaItemResponse{
			IngredienteID:    it.IngredienteID.String(),
			SubIngredienteID: uuidPtrToStr(it.SubIngredienteID),
			Cantidad:         it.Cantidad,
		}
		if it.Ingrediente != nil {
			item.Ingrediente = it.Ingrediente.Nombre
			item.Unidad = it.Ingrediente.Unidad
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}

func ingredienteToDTO(i *model.Ingrediente) dto.IngredienteResponse {
	return dto.IngredienteResponse{
		ID:          i.ID.String(),
		Nombre:      i.Nombre,
		Unidad:      i.Unidad,
		StockActual: i.StockActual,
		StockMinimo: i.StockMinimo,
		Activo:      i.Activo,
	}
}

func movimientoStockToDTO(m *model.StockMovimiento) dto.MovimientoStockResponse {
	resp := dto.MovimientoStockResponse{
		ID:            m.ID.String(),
		IngredienteID: m.IngredienteID.String(),
		Tipo:          string(m.Tipo),
		Delta:         m.Delta,
		Motivo:        m.Motivo,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.Ingrediente != nil {
		resp.Ingrediente = m.Ingrediente.Nombre
	}
	return resp
}

func clienteToDTO(c *model.Cliente) dto.ClienteResponse {
	return dto.ClienteResponse{
		ID:                c.ID.String(),
		Nombre:            c.Nombre,
		Email:             c.Email,
		Telefono:          c.Telefono,
		DescuentoPct:      c.DescuentoPct,
		CtaCorrienteSaldo: c.CtaCorrienteSaldo,
		Activo:            true,
	}
}

func gastoToDTO(g *model.Gasto) dto.GastoResponse {
	resp := dto.GastoResponse{
		ID:          g.ID.String(),
		TurnoID:     g.TurnoID.String(),
		Monto:       g.Monto,
		MedioPago:   string(g.MedioPago),
		Descripcion: g.Descripcion,
		Fecha:       g.Fecha.Format(time.RFC3339),
	}
	if g.Proveedor != nil {
		resp.Proveedor = &g.Proveedor.Nombre
	}
	return resp
}

func pedidoToDTO(p *model.PedidoCocina) dto.PedidoCocinaResponse {
	return dto.PedidoCocinaResponse{
		ID:        p.ID.String(),
		VentaID:   p.VentaID.String(),
		Estado:    string(p.Estado),
		Items:     json.RawMessage(p.Items),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
	}
}

func mesaToDTO(m *model.Mesa) dto.MesaResponse {
	return dto.MesaResponse{
		ID:         m.ID.String(),
		Sala:       m.Sala,
		Numero:     m.Numero,
		CamareroID: uuidPtrToStr(m.CamareroID),
	}
}
