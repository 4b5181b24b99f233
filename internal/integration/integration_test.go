//go:build integration

package integration

// End-to-end flows against real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./internal/integration/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/config"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/infra"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/router"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test env ─────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("cafeteria_test"),
		tcpostgres.WithUsername("cafeteria"),
		tcpostgres.WithPassword("cafeteria"),
		tcpostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "secreto-de-integracion",
		JWTExpirationHours: 8,
		WorkerPoolSize:     1,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		NombreNegocio:      "Cafetería Test",
		PDFStoragePath:     t.TempDir(),
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	hash, err := bcrypt.GenerateFromPassword([]byte("cafeteria2026"), bcrypt.DefaultCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin",
		Nombre:       "Admin",
		Rol:          model.RolAdmin,
		PasswordHash: string(hash),
		Activo:       true,
	}).Error)

	smtpCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	srv := httptest.NewServer(router.New(cfg, db, rdb, smtpCB))
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "cafeteria2026"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var login dto.LoginResponse
	decodeJSON(t, loginResp, &login)
	require.NotEmpty(t, login.Token)

	return &testEnv{server: srv, db: db, token: login.Token}
}

// seedVentaBase creates caja+turno, an ingredient with stock, a product
// with a recipe, and returns the ids needed to drive a sale.
type ventaBase struct {
	cajaID        string
	turnoID       string
	ingredienteID string
	productoID    string
}

func (e *testEnv) seedVentaBase(t *testing.T) ventaBase {
	t.Helper()
	var b ventaBase

	cajaResp := do(t, e.server, "POST", "/v1/cajas",
		jsonBody(t, map[string]any{"nombre": "Caja 1"}), e.token)
	require.Equal(t, http.StatusCreated, cajaResp.StatusCode)
	var caja dto.CajaResponse
	decodeJSON(t, cajaResp, &caja)
	b.cajaID = caja.ID

	turnoResp := do(t, e.server, "POST", "/v1/turnos/abrir",
		jsonBody(t, map[string]any{"caja_id": b.cajaID, "saldo_inicial": "1000"}), e.token)
	require.Equal(t, http.StatusCreated, turnoResp.StatusCode)
	var turno dto.TurnoResponse
	decodeJSON(t, turnoResp, &turno)
	b.turnoID = turno.ID

	ingResp := do(t, e.server, "POST", "/v1/stock/ingredientes",
		jsonBody(t, map[string]any{"nombre": "café molido", "unidad": "g", "stock_minimo": "200"}), e.token)
	require.Equal(t, http.StatusCreated, ingResp.StatusCode)
	var ing dto.IngredienteResponse
	decodeJSON(t, ingResp, &ing)
	b.ingredienteID = ing.ID

	movResp := do(t, e.server, "POST", "/v1/stock/movimientos",
		jsonBody(t, map[string]any{
			"ingrediente_id": b.ingredienteID, "tipo": "compra", "delta": "1000",
		}), e.token)
	require.Equal(t, http.StatusCreated, movResp.StatusCode)

	catResp := do(t, e.server, "POST", "/v1/categorias",
		jsonBody(t, map[string]any{"nombre": "Cafetería"}), e.token)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, catResp, &cat)

	prodResp := do(t, e.server, "POST", "/v1/productos",
		jsonBody(t, map[string]any{
			"nombre": "Espresso", "sku": "ESP-01", "categoria_id": cat.ID,
			"precio_lista": "100", "controla_stock": true,
		}), e.token)
	require.Equal(t, http.StatusCreated, prodResp.StatusCode)
	var prod dto.ProductoResponse
	decodeJSON(t, prodResp, &prod)
	b.productoID = prod.ID

	recetaResp := do(t, e.server, "PUT", "/v1/recetas",
		jsonBody(t, map[string]any{
			"producto_id": b.productoID,
			"items": []map[string]any{
				{"ingrediente_id": b.ingredienteID, "cantidad": "18"},
			},
		}), e.token)
	require.Equal(t, http.StatusOK, recetaResp.StatusCode)

	return b
}

func (e *testEnv) stockActual(t *testing.T, ingredienteID string) decimal.Decimal {
	t.Helper()
	resp := do(t, e.server, "GET", "/v1/stock/ingredientes/"+ingredienteID, nil, e.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var ing dto.IngredienteResponse
	decodeJSON(t, resp, &ing)
	return ing.StockActual
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestIntegration_CicloCompletoDeVenta(t *testing.T) {
	env := setupTestEnv(t)
	base := env.seedVentaBase(t)

	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{"tipo": "mostrador", "turno_id": base.turnoID}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	var venta dto.VentaResponse
	decodeJSON(t, ventaResp, &venta)

	itemResp := do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/items",
		jsonBody(t, map[string]any{"producto_id": base.productoID, "cantidad": "3"}), env.token)
	require.Equal(t, http.StatusOK, itemResp.StatusCode)
	decodeJSON(t, itemResp, &venta)
	assert.True(t, decimal.RequireFromString("300").Equal(venta.TotalBruto))

	pagoResp := do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/pagos",
		jsonBody(t, map[string]any{"medio": "efectivo", "monto": "300"}), env.token)
	require.Equal(t, http.StatusOK, pagoResp.StatusCode)

	cerrarResp := do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/cerrar",
		jsonBody(t, map[string]any{"caja_id": base.cajaID, "turno_id": base.turnoID, "propina": "0"}), env.token)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	decodeJSON(t, cerrarResp, &venta)
	assert.Equal(t, "cerrada", venta.Estado)

	// 3 espressos × 18 g: el cache baja de 1000 a 946.
	stock := env.stockActual(t, base.ingredienteID)
	assert.True(t, decimal.RequireFromString("946").Equal(stock), "stock quedó en %s", stock)
}

func TestIntegration_PagoInsuficienteRechazaElCierre(t *testing.T) {
	env := setupTestEnv(t)
	base := env.seedVentaBase(t)

	var venta dto.VentaResponse
	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{"tipo": "mostrador", "turno_id": base.turnoID}), env.token)
	require.Equal(t, http.StatusCreated, ventaResp.StatusCode)
	decodeJSON(t, ventaResp, &venta)

	do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/items",
		jsonBody(t, map[string]any{"producto_id": base.productoID, "cantidad": "2"}), env.token).Body.Close()
	do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/pagos",
		jsonBody(t, map[string]any{"medio": "efectivo", "monto": "150"}), env.token).Body.Close()

	cerrarResp := do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/cerrar",
		jsonBody(t, map[string]any{"caja_id": base.cajaID, "turno_id": base.turnoID, "propina": "0"}), env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, cerrarResp.StatusCode)
	cerrarResp.Body.Close()
}

func TestIntegration_AnularVentaDevuelveElStock(t *testing.T) {
	env := setupTestEnv(t)
	base := env.seedVentaBase(t)

	var venta dto.VentaResponse
	ventaResp := do(t, env.server, "POST", "/v1/ventas",
		jsonBody(t, map[string]any{"tipo": "mostrador", "turno_id": base.turnoID}), env.token)
	decodeJSON(t, ventaResp, &venta)

	do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/items",
		jsonBody(t, map[string]any{"producto_id": base.productoID, "cantidad": "3"}), env.token).Body.Close()
	do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/pagos",
		jsonBody(t, map[string]any{"medio": "efectivo", "monto": "300"}), env.token).Body.Close()
	cerrarResp := do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/cerrar",
		jsonBody(t, map[string]any{"caja_id": base.cajaID, "turno_id": base.turnoID, "propina": "0"}), env.token)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	cerrarResp.Body.Close()

	anularResp := do(t, env.server, "POST", "/v1/ventas/"+venta.ID+"/anular",
		jsonBody(t, map[string]any{"motivo": "error de carga"}), env.token)
	require.Equal(t, http.StatusOK, anularResp.StatusCode)
	decodeJSON(t, anularResp, &venta)
	assert.Equal(t, "anulada", venta.Estado)

	stock := env.stockActual(t, base.ingredienteID)
	assert.True(t, decimal.RequireFromString("1000").Equal(stock), "stock quedó en %s", stock)

	// El libro conserva ambos asientos: el consumo y su contraasiento.
	var total int64
	require.NoError(t, env.db.Model(&model.StockMovimiento{}).
		Where("referencia_id = ?", venta.ID).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}

func TestIntegration_ArqueoCiegoConDesvio(t *testing.T) {
	env := setupTestEnv(t)
	base := env.seedVentaBase(t)

	// Movimiento manual para mover el esperado: 1000 + 500 = 1500.
	movResp := do(t, env.server, "POST", "/v1/turnos/movimientos",
		jsonBody(t, map[string]any{
			"turno_id": base.turnoID, "tipo": "ingreso", "medio_pago": "efectivo",
			"monto": "500", "descripcion": "fondo extra",
		}), env.token)
	require.Equal(t, http.StatusCreated, movResp.StatusCode)
	movResp.Body.Close()

	// El detalle de un turno abierto nunca muestra el esperado.
	detResp := do(t, env.server, "GET", "/v1/turnos/"+base.turnoID, nil, env.token)
	require.Equal(t, http.StatusOK, detResp.StatusCode)
	var abierto dto.TurnoResponse
	decodeJSON(t, detResp, &abierto)
	assert.Nil(t, abierto.SaldoEsperado)

	cerrarResp := do(t, env.server, "POST", "/v1/turnos/cerrar",
		jsonBody(t, map[string]any{"turno_id": base.turnoID, "saldo_contado": "1450"}), env.token)
	require.Equal(t, http.StatusOK, cerrarResp.StatusCode)
	var cierre dto.CierreTurnoResponse
	decodeJSON(t, cerrarResp, &cierre)
	assert.True(t, decimal.RequireFromString("1500").Equal(cierre.SaldoEsperado))
	// Faltante de 50 en el conteo: esperado - contado = 1500 - 1450.
	assert.True(t, decimal.RequireFromString("50").Equal(cierre.Desvio))

	// Segundo turno en la misma caja recién ahora es posible.
	reabrirResp := do(t, env.server, "POST", "/v1/turnos/abrir",
		jsonBody(t, map[string]any{"caja_id": base.cajaID, "saldo_inicial": "1450"}), env.token)
	assert.Equal(t, http.StatusCreated, reabrirResp.StatusCode)
	reabrirResp.Body.Close()
}

func TestIntegration_DobleAperturaDeTurnoDaConflicto(t *testing.T) {
	env := setupTestEnv(t)
	base := env.seedVentaBase(t)

	resp := do(t, env.server, "POST", "/v1/turnos/abrir",
		jsonBody(t, map[string]any{"caja_id": base.cajaID, "saldo_inicial": "0"}), env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestIntegration_ConsistenciaDeLedger(t *testing.T) {
	env := setupTestEnv(t)
	base := env.seedVentaBase(t)

	resp := do(t, env.server, "GET", "/v1/stock/ingredientes/"+base.ingredienteID+"/consistencia", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var consistencia dto.ConsistenciaResponse
	decodeJSON(t, resp, &consistencia)
	assert.True(t, consistencia.Consistente)
	assert.True(t, decimal.RequireFromString("1000").Equal(consistencia.StockLedger))
}

func TestIntegration_HealthReportaDependencias(t *testing.T) {
	env := setupTestEnv(t)

	resp := do(t, env.server, "GET", "/health", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var health map[string]any
	decodeJSON(t, resp, &health)
	assert.Equal(t, true, health["ok"])
	assert.Equal(t, "connected", health["db"])
	assert.Equal(t, "connected", health["redis"])
}
