package service

import (
	"context"
	"testing"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ventaFixture struct {
	ventas   *stubVentaRepo
	cajas    *stubCajaRepo
	stock    *stubStockRepo
	catalogo *stubCatalogoRepo
	jobs     *stubEncolador
	svc      VentaService

	caja  *model.Caja
	turno *model.Turno
	cafe  *model.Ingrediente
	// espresso: controla stock, receta 18 g de café, precio 100
	espresso *model.Producto
	// gaseosa: sin receta, sin control de stock, precio 100
	gaseosa *model.Producto
}

func newVentaFixture(t *testing.T) *ventaFixture {
	t.Helper()
	f := &ventaFixture{
		ventas:   newStubVentaRepo(),
		cajas:    newStubCajaRepo(),
		stock:    newStubStockRepo(),
		catalogo: newStubCatalogoRepo(),
		jobs:     &stubEncolador{},
	}
	f.svc = NewVentaService(f.ventas, f.cajas, f.stock, f.catalogo, f.jobs)

	f.caja = &model.Caja{ID: uuid.New(), Nombre: "Caja 1", Activo: true}
	f.cajas.cajas[f.caja.ID] = f.caja
	f.turno = &model.Turno{
		ID:           uuid.New(),
		CajaID:       f.caja.ID,
		UsuarioID:    uuid.New(),
		Estado:       model.TurnoAbierto,
		SaldoInicial: d("1000"),
	}
	f.cajas.turnos[f.turno.ID] = f.turno

	f.cafe = &model.Ingrediente{
		ID: uuid.New(), Nombre: "café molido", Unidad: "g",
		StockActual: d("100"), StockMinimo: d("20"), Activo: true,
	}
	f.stock.ingredientes[f.cafe.ID] = f.cafe

	f.espresso = &model.Producto{
		ID: uuid.New(), Nombre: "Espresso", SKU: "ESP-01",
		PrecioLista: d("100"), ControlaStock: true, Activo: true,
	}
	f.espresso.Receta = &model.Receta{
		ID: uuid.New(), ProductoID: f.espresso.ID,
		Items: []model.RecetaItem{{
			IngredienteID: f.cafe.ID, Cantidad: d("18"), Ingrediente: f.cafe,
		}},
	}
	f.gaseosa = &model.Producto{
		ID: uuid.New(), Nombre: "Gaseosa", SKU: "GAS-01",
		PrecioLista: d("100"), ControlaStock: false, Activo: true,
	}
	for _, p := range []*model.Producto{f.espresso, f.gaseosa} {
		f.catalogo.productos[p.ID] = p
		f.ventas.productos[p.ID] = p
	}
	return f
}

func (f *ventaFixture) abrirVenta(t *testing.T) *model.Venta {
	t.Helper()
	turnoID := f.turno.ID.String()
	venta, err := f.svc.Abrir(context.Background(), nil, dto.AbrirVentaRequest{
		Tipo: "mostrador", TurnoID: &turnoID,
	})
	require.NoError(t, err)
	return venta
}

func (f *ventaFixture) agregarItem(t *testing.T, ventaID uuid.UUID, p *model.Producto, cantidad string) {
	t.Helper()
	_, err := f.svc.AgregarItem(context.Background(), ventaID, dto.AgregarItemRequest{
		ProductoID: p.ID.String(), Cantidad: d(cantidad),
	})
	require.NoError(t, err)
}

func (f *ventaFixture) pagar(t *testing.T, ventaID uuid.UUID, monto string) {
	t.Helper()
	_, err := f.svc.RegistrarPago(context.Background(), ventaID, dto.PagoRequest{
		Medio: "efectivo", Monto: d(monto),
	})
	require.NoError(t, err)
}

func (f *ventaFixture) cerrarReq(propina string) dto.CerrarVentaRequest {
	return dto.CerrarVentaRequest{
		CajaID:  f.caja.ID.String(),
		TurnoID: f.turno.ID.String(),
		Propina: d(propina),
	}
}

func TestCerrarVenta_DescuentaStockYAcreditaCaja(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.espresso, "3")
	f.pagar(t, venta.ID, "300")

	cerrada, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	require.NoError(t, err)

	assert.Equal(t, model.VentaCerrada, cerrada.Estado)
	assert.True(t, d("300").Equal(cerrada.TotalBruto))
	assert.True(t, d("300").Equal(cerrada.TotalNeto))

	// 3 espressos × 18 g = 54 g consumidos del cache.
	assert.True(t, d("46").Equal(f.cafe.StockActual), "stock quedó en %s", f.cafe.StockActual)

	// Una entrada en el libro de stock, negativa y referenciando la venta.
	require.Len(t, f.stock.movimientos, 1)
	mov := f.stock.movimientos[0]
	assert.Equal(t, model.StockReceta, mov.Tipo)
	assert.True(t, d("-54").Equal(mov.Delta))
	require.NotNil(t, mov.ReferenciaID)
	assert.Equal(t, venta.ID, *mov.ReferenciaID)

	// Un ingreso en el libro de caja por el pago.
	require.Len(t, f.cajas.movimientos, 1)
	assert.Equal(t, model.MovimientoIngreso, f.cajas.movimientos[0].Tipo)
	assert.True(t, d("300").Equal(f.cajas.movimientos[0].Monto))
	assert.Equal(t, model.OrigenVenta, f.cajas.movimientos[0].Origen)
}

func TestCerrarVenta_PropinaSumaAlRequerido(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.gaseosa, "1")
	f.pagar(t, venta.ID, "120")

	cerrada, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("20"))
	require.NoError(t, err)
	assert.True(t, d("20").Equal(cerrada.Propina))
	// La propina viaja en el pago pero no infla el neto.
	assert.True(t, d("100").Equal(cerrada.TotalNeto))
}

func TestCerrarVenta_PagoDistintoDelRequeridoFalla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.espresso, "3")
	f.pagar(t, venta.ID, "200")

	_, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	var mismatch *poserror.PaymentMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.True(t, d("300").Equal(mismatch.Requerido))
	assert.True(t, d("200").Equal(mismatch.Pagado))
}

func TestCerrarVenta_SinItemsFalla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)

	_, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	var vacia *poserror.EmptySaleError
	require.ErrorAs(t, err, &vacia)
}

func TestCerrarVenta_StockInsuficienteConControlFalla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.espresso, "3")
	f.pagar(t, venta.ID, "300")

	// Otra venta consumió el café entre el alta del item y el cierre:
	// el chequeo virtual pasó, el cierre es el que manda. La receta
	// precargada conserva el snapshot viejo (100 g) para verificar que
	// el error reporta lo que vio el guard, no el preload.
	viejo := *f.cafe
	f.espresso.Receta.Items[0].Ingrediente = &viejo
	f.cafe.StockActual = d("40") // 3 espressos necesitan 54 g

	_, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	var sinStock *poserror.InsufficientStockError
	require.ErrorAs(t, err, &sinStock)
	assert.Equal(t, f.cafe.ID, sinStock.IngredienteID)
	assert.True(t, d("54").Equal(sinStock.Requerido))
	assert.True(t, d("40").Equal(sinStock.Disponible), "disponible = %s", sinStock.Disponible)

	// Nada quedó aplicado al cache.
	assert.True(t, d("40").Equal(f.cafe.StockActual))
}

func TestAgregarItem_ChequeoVirtualDeStock(t *testing.T) {
	f := newVentaFixture(t)
	f.cafe.StockActual = d("40")
	venta := f.abrirVenta(t)

	_, err := f.svc.AgregarItem(context.Background(), venta.ID, dto.AgregarItemRequest{
		ProductoID: f.espresso.ID.String(), Cantidad: d("3"),
	})
	var sinStock *poserror.InsufficientStockError
	require.ErrorAs(t, err, &sinStock)
	assert.True(t, d("40").Equal(sinStock.Disponible))

	detalle, err := f.svc.Detalle(context.Background(), venta.ID)
	require.NoError(t, err)
	assert.Empty(t, detalle.Items)
}

func TestCerrarVenta_TurnoCerradoFalla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.gaseosa, "1")
	f.pagar(t, venta.ID, "100")

	f.turno.Estado = model.TurnoCerrado

	_, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	var estado *poserror.InvalidStateError
	require.ErrorAs(t, err, &estado)
}

func TestCerrarVenta_EncolaTicketYAlerta(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.gaseosa, "1")
	f.pagar(t, venta.ID, "100")

	req := f.cerrarReq("0")
	email := "cliente@example.com"
	req.ClienteEmail = &email

	_, err := f.svc.Cerrar(context.Background(), venta.ID, req)
	require.NoError(t, err)

	assert.Len(t, f.jobs.porCola(ColaEmail), 1)
	assert.Len(t, f.jobs.porCola(ColaAlertas), 1)
}

func TestCerrarVentaCerrada_Falla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.gaseosa, "1")
	f.pagar(t, venta.ID, "100")

	_, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	require.NoError(t, err)

	_, err = f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	var estado *poserror.InvalidStateError
	require.ErrorAs(t, err, &estado)
}

func TestAplicarDescuento_PorcentualYFijo(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.gaseosa, "10") // bruto 1000

	_, err := f.svc.AplicarDescuento(context.Background(), venta.ID, dto.DescuentoRequest{
		Tipo: "porcentual", Valor: d("10"),
	})
	require.NoError(t, err)
	actual, err := f.svc.AplicarDescuento(context.Background(), venta.ID, dto.DescuentoRequest{
		Tipo: "fijo", Valor: d("50"),
	})
	require.NoError(t, err)

	assert.True(t, d("1000").Equal(actual.TotalBruto))
	assert.True(t, d("150").Equal(actual.TotalDescuento))
	assert.True(t, d("850").Equal(actual.TotalNeto))
}

func TestAplicarDescuento_PorcentualMayorACienFalla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)

	_, err := f.svc.AplicarDescuento(context.Background(), venta.ID, dto.DescuentoRequest{
		Tipo: "porcentual", Valor: d("120"),
	})
	var cfg *poserror.ConfigurationError
	require.ErrorAs(t, err, &cfg)
}

func TestDescuentoDeClienteEsVirtual(t *testing.T) {
	f := newVentaFixture(t)
	pct := d("10")
	cliente := &model.Cliente{ID: uuid.New(), Nombre: "Socio", DescuentoPct: &pct}
	f.ventas.clientes[cliente.ID] = cliente

	turnoID := f.turno.ID.String()
	clienteID := cliente.ID.String()
	venta, err := f.svc.Abrir(context.Background(), nil, dto.AbrirVentaRequest{
		Tipo: "mostrador", TurnoID: &turnoID, ClienteID: &clienteID,
	})
	require.NoError(t, err)

	actual, err := f.svc.AgregarItem(context.Background(), venta.ID, dto.AgregarItemRequest{
		ProductoID: f.gaseosa.ID.String(), Cantidad: d("10"),
	})
	require.NoError(t, err)

	// El 10% del cliente rebaja el neto sin persistirse como descuento.
	assert.True(t, d("100").Equal(actual.TotalDescuento))
	assert.True(t, d("900").Equal(actual.TotalNeto))
	assert.Empty(t, actual.Descuentos)
}

func TestAgregarItem_RespetaPrecioOverride(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)

	precio := d("80")
	actual, err := f.svc.AgregarItem(context.Background(), venta.ID, dto.AgregarItemRequest{
		ProductoID: f.gaseosa.ID.String(), Cantidad: d("2"), PrecioUnitario: &precio,
	})
	require.NoError(t, err)
	assert.True(t, d("160").Equal(actual.TotalBruto))
}

func TestAgregarItem_ProductoInactivoFalla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.gaseosa.Activo = false

	_, err := f.svc.AgregarItem(context.Background(), venta.ID, dto.AgregarItemRequest{
		ProductoID: f.gaseosa.ID.String(), Cantidad: d("1"),
	})
	var estado *poserror.InvalidStateError
	require.ErrorAs(t, err, &estado)
}

func TestEliminarItem_Recalcula(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.gaseosa, "2")
	f.agregarItem(t, venta.ID, f.espresso, "1")

	detalle, err := f.svc.Detalle(context.Background(), venta.ID)
	require.NoError(t, err)
	require.Len(t, detalle.Items, 2)

	actual, err := f.svc.EliminarItem(context.Background(), venta.ID, detalle.Items[0].ID)
	require.NoError(t, err)
	require.Len(t, actual.Items, 1)
	assert.True(t, d("100").Equal(actual.TotalBruto))
}

func TestAnularVentaAbierta_NoCompensaNada(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.espresso, "2")

	anulada, err := f.svc.Anular(context.Background(), venta.ID, dto.AnularVentaRequest{Motivo: "cliente se fue"})
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, anulada.Estado)
	require.NotNil(t, anulada.MotivoAnulacion)

	// Nada llegó a los libros: no hay contraasientos que escribir.
	assert.Empty(t, f.stock.movimientos)
	assert.Empty(t, f.cajas.movimientos)
	assert.True(t, d("100").Equal(f.cafe.StockActual))
}

func TestAnularVentaCerrada_CompensaStockYCaja(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	f.agregarItem(t, venta.ID, f.espresso, "3")
	f.pagar(t, venta.ID, "300")
	_, err := f.svc.Cerrar(context.Background(), venta.ID, f.cerrarReq("0"))
	require.NoError(t, err)
	require.True(t, d("46").Equal(f.cafe.StockActual))

	anulada, err := f.svc.Anular(context.Background(), venta.ID, dto.AnularVentaRequest{Motivo: "error de carga"})
	require.NoError(t, err)
	assert.Equal(t, model.VentaAnulada, anulada.Estado)

	// El stock vuelve por contraasiento: el original queda intacto.
	assert.True(t, d("100").Equal(f.cafe.StockActual), "stock quedó en %s", f.cafe.StockActual)
	require.Len(t, f.stock.movimientos, 2)
	assert.Equal(t, model.StockReceta, f.stock.movimientos[0].Tipo)
	assert.True(t, d("-54").Equal(f.stock.movimientos[0].Delta))
	assert.Equal(t, model.StockAjuste, f.stock.movimientos[1].Tipo)
	assert.True(t, d("54").Equal(f.stock.movimientos[1].Delta))

	// El pago se revierte con un egreso espejo.
	require.Len(t, f.cajas.movimientos, 2)
	assert.Equal(t, model.MovimientoIngreso, f.cajas.movimientos[0].Tipo)
	assert.Equal(t, model.MovimientoEgreso, f.cajas.movimientos[1].Tipo)
	assert.True(t, d("300").Equal(f.cajas.movimientos[1].Monto))
}

func TestAnularVentaAnulada_Falla(t *testing.T) {
	f := newVentaFixture(t)
	venta := f.abrirVenta(t)
	_, err := f.svc.Anular(context.Background(), venta.ID, dto.AnularVentaRequest{Motivo: "x"})
	require.NoError(t, err)

	_, err = f.svc.Anular(context.Background(), venta.ID, dto.AnularVentaRequest{Motivo: "de nuevo"})
	var estado *poserror.InvalidStateError
	require.ErrorAs(t, err, &estado)
}
