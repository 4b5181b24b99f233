package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// In-memory repository stubs. DB() returns nil so runTx executes the
// callback without a real transaction; rollback behavior is covered by
// the integration suite against postgres.

// ── Encolador stub ───────────────────────────────────────────────────────────

type encoladoJob struct {
	Cola    string
	Payload json.RawMessage
}

type stubEncolador struct{ jobs []encoladoJob }

func (e *stubEncolador) Encolar(_ context.Context, cola string, payload interface{}) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	e.jobs = append(e.jobs, encoladoJob{Cola: cola, Payload: raw})
	return nil
}

func (e *stubEncolador) porCola(cola string) []encoladoJob {
	var out []encoladoJob
	for _, j := range e.jobs {
		if j.Cola == cola {
			out = append(out, j)
		}
	}
	return out
}

var _ Encolador = (*stubEncolador)(nil)

// ── CajaRepository stub ──────────────────────────────────────────────────────

type stubCajaRepo struct {
	cajas       map[uuid.UUID]*model.Caja
	turnos      map[uuid.UUID]*model.Turno
	movimientos []model.MovimientoCaja
	// turnosBloqueados records every FindTurnoForUpdateTx call so tests
	// can assert that mutating paths take the row lock.
	turnosBloqueados []uuid.UUID
}

func newStubCajaRepo() *stubCajaRepo {
	return &stubCajaRepo{
		cajas:  make(map[uuid.UUID]*model.Caja),
		turnos: make(map[uuid.UUID]*model.Turno),
	}
}

func (r *stubCajaRepo) DB() *gorm.DB { return nil }

func (r *stubCajaRepo) CreateCaja(_ context.Context, c *model.Caja) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.cajas[c.ID] = c
	return nil
}

func (r *stubCajaRepo) FindCajaByID(_ context.Context, id uuid.UUID) (*model.Caja, error) {
	c, ok := r.cajas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCajaRepo) FindCajaForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Caja, error) {
	return r.FindCajaByID(context.Background(), id)
}

func (r *stubCajaRepo) ListCajas(_ context.Context) ([]model.Caja, error) {
	var out []model.Caja
	for _, c := range r.cajas {
		out = append(out, *c)
	}
	return out, nil
}

func (r *stubCajaRepo) CreateTurnoTx(_ *gorm.DB, t *model.Turno) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	r.turnos[t.ID] = t
	return nil
}

func (r *stubCajaRepo) FindTurnoByID(_ context.Context, id uuid.UUID) (*model.Turno, error) {
	t, ok := r.turnos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return t, nil
}

func (r *stubCajaRepo) FindTurnoForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Turno, error) {
	r.turnosBloqueados = append(r.turnosBloqueados, id)
	return r.FindTurnoByID(context.Background(), id)
}

func (r *stubCajaRepo) FindTurnoAbiertoPorCajaTx(_ *gorm.DB, cajaID uuid.UUID) (*model.Turno, error) {
	for _, t := range r.turnos {
		if t.CajaID == cajaID && t.Estado == model.TurnoAbierto {
			return t, nil
		}
	}
	return nil, nil
}

func (r *stubCajaRepo) UpdateTurnoTx(_ *gorm.DB, t *model.Turno) error {
	r.turnos[t.ID] = t
	return nil
}

func (r *stubCajaRepo) ListTurnos(_ context.Context, _, _ int) ([]model.Turno, int64, error) {
	var out []model.Turno
	for _, t := range r.turnos {
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *stubCajaRepo) CreateMovimientoTx(_ *gorm.DB, m *model.MovimientoCaja) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubCajaRepo) ListMovimientos(_ context.Context, turnoID uuid.UUID) ([]model.MovimientoCaja, error) {
	var out []model.MovimientoCaja
	for _, m := range r.movimientos {
		if m.TurnoID == turnoID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubCajaRepo) SumMovimientosTx(_ *gorm.DB, turnoID uuid.UUID) (decimal.Decimal, decimal.Decimal, error) {
	ingresos, egresos := decimal.Zero, decimal.Zero
	for _, m := range r.movimientos {
		if m.TurnoID != turnoID {
			continue
		}
		if m.Tipo == model.MovimientoIngreso {
			ingresos = ingresos.Add(m.Monto)
		} else {
			egresos = egresos.Add(m.Monto)
		}
	}
	return ingresos, egresos, nil
}

var _ repository.CajaRepository = (*stubCajaRepo)(nil)

// ── VentaRepository stub ─────────────────────────────────────────────────────

type stubVentaRepo struct {
	ventas map[uuid.UUID]*model.Venta
	// productos backs the Items.Producto preload at read time.
	productos map[uuid.UUID]*model.Producto
	clientes  map[uuid.UUID]*model.Cliente
}

func newStubVentaRepo() *stubVentaRepo {
	return &stubVentaRepo{
		ventas:    make(map[uuid.UUID]*model.Venta),
		productos: make(map[uuid.UUID]*model.Producto),
		clientes:  make(map[uuid.UUID]*model.Cliente),
	}
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

func (r *stubVentaRepo) Create(_ context.Context, v *model.Venta) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	v.CreatedAt = time.Now()
	r.ventas[v.ID] = v
	return nil
}

func (r *stubVentaRepo) hidratar(v *model.Venta) *model.Venta {
	for i := range v.Items {
		if p, ok := r.productos[v.Items[i].ProductoID]; ok {
			v.Items[i].Producto = p
		}
	}
	if v.ClienteID != nil {
		if c, ok := r.clientes[*v.ClienteID]; ok {
			v.Cliente = c
		}
	}
	return v
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r.hidratar(v), nil
}

func (r *stubVentaRepo) FindForUpdateTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubVentaRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID) (*model.Venta, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubVentaRepo) CreateItemTx(_ *gorm.DB, item *model.VentaItem) error {
	v, ok := r.ventas[item.VentaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	v.Items = append(v.Items, *item)
	return nil
}

func (r *stubVentaRepo) DeleteItemTx(_ *gorm.DB, ventaID, itemID uuid.UUID) error {
	v, ok := r.ventas[ventaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for i, item := range v.Items {
		if item.ID == itemID {
			v.Items = append(v.Items[:i], v.Items[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *stubVentaRepo) CreatePagoTx(_ *gorm.DB, p *model.Pago) error {
	v, ok := r.ventas[p.VentaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	v.Pagos = append(v.Pagos, *p)
	return nil
}

func (r *stubVentaRepo) CreateDescuentoTx(_ *gorm.DB, desc *model.Descuento) error {
	if desc.VentaID == nil {
		return gorm.ErrRecordNotFound
	}
	v, ok := r.ventas[*desc.VentaID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if desc.ID == uuid.Nil {
		desc.ID = uuid.New()
	}
	v.Descuentos = append(v.Descuentos, *desc)
	return nil
}

func (r *stubVentaRepo) UpdateTotalesTx(_ *gorm.DB, id uuid.UUID, bruto, descuento, neto decimal.Decimal) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.TotalBruto = bruto
	v.TotalDescuento = descuento
	v.TotalNeto = neto
	return nil
}

func (r *stubVentaRepo) CerrarTx(_ *gorm.DB, id, cajaID, turnoID uuid.UUID, propina decimal.Decimal) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = model.VentaCerrada
	v.CajaID = &cajaID
	v.TurnoID = &turnoID
	v.Propina = propina
	return nil
}

func (r *stubVentaRepo) UpdateEstadoTx(_ *gorm.DB, id uuid.UUID, estado model.VentaEstado) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = estado
	return nil
}

func (r *stubVentaRepo) AnularTx(_ *gorm.DB, id uuid.UUID, motivo string) error {
	v, ok := r.ventas[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	v.Estado = model.VentaAnulada
	v.MotivoAnulacion = &motivo
	return nil
}

func (r *stubVentaRepo) CountAbiertasPorTurnoTx(_ *gorm.DB, turnoID uuid.UUID) (int64, error) {
	var n int64
	for _, v := range r.ventas {
		if v.TurnoID != nil && *v.TurnoID == turnoID && v.Estado == model.VentaAbierta {
			n++
		}
	}
	return n, nil
}

func (r *stubVentaRepo) List(_ context.Context, filter repository.VentaFilter) ([]model.Venta, int64, error) {
	var out []model.Venta
	for _, v := range r.ventas {
		if filter.Estado != "" && v.Estado != filter.Estado {
			continue
		}
		out = append(out, *r.hidratar(v))
	}
	return out, int64(len(out)), nil
}

var _ repository.VentaRepository = (*stubVentaRepo)(nil)

// ── StockRepository stub ─────────────────────────────────────────────────────

type stubStockRepo struct {
	ingredientes map[uuid.UUID]*model.Ingrediente
	movimientos  []model.StockMovimiento
}

func newStubStockRepo() *stubStockRepo {
	return &stubStockRepo{ingredientes: make(map[uuid.UUID]*model.Ingrediente)}
}

func (r *stubStockRepo) DB() *gorm.DB { return nil }

func (r *stubStockRepo) CreateIngrediente(_ context.Context, i *model.Ingrediente) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubStockRepo) UpdateIngrediente(_ context.Context, i *model.Ingrediente) error {
	r.ingredientes[i.ID] = i
	return nil
}

func (r *stubStockRepo) FindIngrediente(_ context.Context, id uuid.UUID) (*model.Ingrediente, error) {
	i, ok := r.ingredientes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubStockRepo) FindIngredienteTx(_ *gorm.DB, id uuid.UUID) (*model.Ingrediente, error) {
	return r.FindIngrediente(context.Background(), id)
}

func (r *stubStockRepo) ListIngredientes(_ context.Context) ([]model.Ingrediente, error) {
	var out []model.Ingrediente
	for _, i := range r.ingredientes {
		out = append(out, *i)
	}
	return out, nil
}

func (r *stubStockRepo) ListBajoMinimo(_ context.Context) ([]model.Ingrediente, error) {
	var out []model.Ingrediente
	for _, i := range r.ingredientes {
		if i.Activo && i.StockActual.LessThanOrEqual(i.StockMinimo) {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (r *stubStockRepo) CreateMovimientoTx(_ *gorm.DB, m *model.StockMovimiento) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.CreatedAt = time.Now()
	r.movimientos = append(r.movimientos, *m)
	return nil
}

func (r *stubStockRepo) AplicarDeltaTx(_ *gorm.DB, ingredienteID uuid.UUID, delta decimal.Decimal, bloquearNegativo bool) error {
	i, ok := r.ingredientes[ingredienteID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	nuevo := i.StockActual.Add(delta)
	if bloquearNegativo && nuevo.IsNegative() {
		return repository.ErrStockInsuficiente
	}
	i.StockActual = nuevo
	return nil
}

func (r *stubStockRepo) SumDeltas(_ context.Context, ingredienteID uuid.UUID) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, m := range r.movimientos {
		if m.IngredienteID == ingredienteID {
			total = total.Add(m.Delta)
		}
	}
	return total, nil
}

func (r *stubStockRepo) ListMovimientos(_ context.Context, filter repository.MovimientoStockFilter) ([]model.StockMovimiento, int64, error) {
	var out []model.StockMovimiento
	for _, m := range r.movimientos {
		if filter.IngredienteID != nil && m.IngredienteID != *filter.IngredienteID {
			continue
		}
		if filter.Tipo != "" && m.Tipo != filter.Tipo {
			continue
		}
		out = append(out, m)
	}
	return out, int64(len(out)), nil
}

var _ repository.StockRepository = (*stubStockRepo)(nil)

// ── CatalogoRepository stub ──────────────────────────────────────────────────

type stubCatalogoRepo struct {
	productos map[uuid.UUID]*model.Producto
	// precios overrides PrecioActivo per producto; fallback PrecioLista.
	precios map[uuid.UUID]decimal.Decimal
	subs    map[uuid.UUID][]model.SubIngrediente
}

func newStubCatalogoRepo() *stubCatalogoRepo {
	return &stubCatalogoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		precios:   make(map[uuid.UUID]decimal.Decimal),
		subs:      make(map[uuid.UUID][]model.SubIngrediente),
	}
}

func (r *stubCatalogoRepo) CreateProducto(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubCatalogoRepo) UpdateProducto(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubCatalogoRepo) FindProductoByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubCatalogoRepo) FindProductoBySKU(_ context.Context, sku string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubCatalogoRepo) ListProductos(_ context.Context, soloActivos bool) ([]model.Producto, error) {
	var out []model.Producto
	for _, p := range r.productos {
		if soloActivos && !p.Activo {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *stubCatalogoRepo) GuardarReceta(_ context.Context, productoID uuid.UUID, items []model.RecetaItem) error {
	p, ok := r.productos[productoID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Receta = &model.Receta{ID: uuid.New(), ProductoID: productoID, Items: items}
	return nil
}

func (r *stubCatalogoRepo) CreateSubIngrediente(_ context.Context, s *model.SubIngrediente) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.subs[s.PadreID] = append(r.subs[s.PadreID], *s)
	return nil
}

func (r *stubCatalogoRepo) ListSubIngredientes(_ context.Context, padreID uuid.UUID) ([]model.SubIngrediente, error) {
	return r.subs[padreID], nil
}

func (r *stubCatalogoRepo) CreateLista(_ context.Context, _ *model.ListaPrecio) error { return nil }

func (r *stubCatalogoRepo) ActivarLista(_ context.Context, _ uuid.UUID) error { return nil }

func (r *stubCatalogoRepo) SetListaItem(_ context.Context, _ *model.ListaPrecioItem) error {
	return nil
}

func (r *stubCatalogoRepo) PrecioActivo(_ context.Context, productoID uuid.UUID) (decimal.Decimal, error) {
	if precio, ok := r.precios[productoID]; ok {
		return precio, nil
	}
	p, ok := r.productos[productoID]
	if !ok {
		return decimal.Zero, gorm.ErrRecordNotFound
	}
	return p.PrecioLista, nil
}

var _ repository.CatalogoRepository = (*stubCatalogoRepo)(nil)

// ── UsuarioRepository stub ───────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uuid.UUID]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var out []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	u, ok := r.usuarios[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── CocinaRepository stub ────────────────────────────────────────────────────

type stubCocinaRepo struct {
	pedidos map[uuid.UUID]*model.PedidoCocina
}

func newStubCocinaRepo() *stubCocinaRepo {
	return &stubCocinaRepo{pedidos: make(map[uuid.UUID]*model.PedidoCocina)}
}

func (r *stubCocinaRepo) Create(_ context.Context, p *model.PedidoCocina) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedAt = time.Now()
	r.pedidos[p.ID] = p
	return nil
}

func (r *stubCocinaRepo) FindByID(_ context.Context, id uuid.UUID) (*model.PedidoCocina, error) {
	p, ok := r.pedidos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubCocinaRepo) UpdateEstado(_ context.Context, id uuid.UUID, estado model.PedidoEstado) error {
	p, ok := r.pedidos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Estado = estado
	return nil
}

func (r *stubCocinaRepo) ListPorEstado(_ context.Context, estado model.PedidoEstado) ([]model.PedidoCocina, error) {
	var out []model.PedidoCocina
	for _, p := range r.pedidos {
		if p.Estado == estado {
			out = append(out, *p)
		}
	}
	return out, nil
}

var _ repository.CocinaRepository = (*stubCocinaRepo)(nil)
