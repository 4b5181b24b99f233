package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/dto"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	stock *stubStockRepo
	jobs  *stubEncolador
	svc   StockService

	harina *model.Ingrediente
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	f := &stockFixture{
		stock: newStubStockRepo(),
		jobs:  &stubEncolador{},
	}
	f.svc = NewStockService(f.stock, f.jobs)
	f.harina = &model.Ingrediente{
		ID: uuid.New(), Nombre: "harina", Unidad: "g",
		StockActual: d("5000"), StockMinimo: d("1000"), Activo: true,
	}
	f.stock.ingredientes[f.harina.ID] = f.harina
	return f
}

func (f *stockFixture) registrar(t *testing.T, tipo, delta string) *model.StockMovimiento {
	t.Helper()
	mov, err := f.svc.RegistrarMovimiento(context.Background(), dto.MovimientoStockRequest{
		IngredienteID: f.harina.ID.String(),
		Tipo:          tipo,
		Delta:         d(delta),
	})
	require.NoError(t, err)
	return mov
}

func TestRegistrarMovimiento_ActualizaCacheYLibroJuntos(t *testing.T) {
	f := newStockFixture(t)

	mov := f.registrar(t, "compra", "2000")
	assert.Equal(t, model.StockCompra, mov.Tipo)

	assert.True(t, d("7000").Equal(f.harina.StockActual), "stock quedó en %s", f.harina.StockActual)
	require.Len(t, f.stock.movimientos, 1)
	assert.True(t, d("2000").Equal(f.stock.movimientos[0].Delta))
}

func TestRegistrarMovimiento_DeltaCeroFalla(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.svc.RegistrarMovimiento(context.Background(), dto.MovimientoStockRequest{
		IngredienteID: f.harina.ID.String(),
		Tipo:          "ajuste",
		Delta:         d("0"),
	})
	var cfg *poserror.ConfigurationError
	require.ErrorAs(t, err, &cfg)
	assert.Empty(t, f.stock.movimientos)
}

func TestRegistrarMovimiento_ManualPuedeDejarNegativo(t *testing.T) {
	// Una merma registrada tarde puede superar el cache: el ajuste
	// manual documenta la realidad, no la bloquea.
	f := newStockFixture(t)
	f.harina.StockActual = d("100")

	f.registrar(t, "merma", "-250")
	assert.True(t, d("-150").Equal(f.harina.StockActual))
}

func TestRegistrarMovimiento_BajoMinimoEncolaAlerta(t *testing.T) {
	f := newStockFixture(t)

	// 5000 - 4200 = 800, por debajo del mínimo de 1000.
	f.registrar(t, "merma", "-4200")

	alertas := f.jobs.porCola(ColaAlertas)
	require.Len(t, alertas, 1)
	var job AlertaJob
	require.NoError(t, json.Unmarshal(alertas[0].Payload, &job))
	assert.Equal(t, "stock_bajo", job.Tipo)
}

func TestRegistrarMovimiento_SobreMinimoNoAlerta(t *testing.T) {
	f := newStockFixture(t)

	f.registrar(t, "merma", "-500")
	assert.Empty(t, f.jobs.porCola(ColaAlertas))
}

func TestAlertas_ListaSoloActivosBajoMinimo(t *testing.T) {
	f := newStockFixture(t)
	f.harina.StockActual = d("900")

	inactivo := &model.Ingrediente{
		ID: uuid.New(), Nombre: "azúcar", Unidad: "g",
		StockActual: d("0"), StockMinimo: d("500"), Activo: false,
	}
	f.stock.ingredientes[inactivo.ID] = inactivo

	bajos, err := f.svc.Alertas(context.Background())
	require.NoError(t, err)
	require.Len(t, bajos, 1)
	assert.Equal(t, f.harina.ID, bajos[0].ID)
}

func TestVerificarConsistencia_CacheIgualALibro(t *testing.T) {
	f := newStockFixture(t)
	f.harina.StockActual = d("0")

	f.registrar(t, "compra", "3000")
	f.registrar(t, "merma", "-500")

	resp, err := f.svc.VerificarConsistencia(context.Background(), f.harina.ID)
	require.NoError(t, err)
	assert.True(t, resp.Consistente)
	assert.True(t, d("2500").Equal(resp.StockCache))
	assert.True(t, d("2500").Equal(resp.StockLedger))
}

func TestVerificarConsistencia_DetectaCacheAdulterado(t *testing.T) {
	f := newStockFixture(t)
	f.harina.StockActual = d("0")
	f.registrar(t, "compra", "3000")

	// Alguien tocó el cache sin pasar por el libro.
	f.harina.StockActual = d("2800")

	resp, err := f.svc.VerificarConsistencia(context.Background(), f.harina.ID)
	require.NoError(t, err)
	assert.False(t, resp.Consistente)
	assert.True(t, d("2800").Equal(resp.StockCache))
	assert.True(t, d("3000").Equal(resp.StockLedger))
}

func TestListMovimientos_FiltraPorTipo(t *testing.T) {
	f := newStockFixture(t)
	f.registrar(t, "compra", "1000")
	f.registrar(t, "merma", "-200")
	f.registrar(t, "compra", "500")

	movs, total, err := f.svc.ListMovimientos(context.Background(), repository.MovimientoStockFilter{
		Tipo: model.StockCompra,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, movs, 2)
}
