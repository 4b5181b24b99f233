package service

import (
	"testing"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalcularDescuento_PorcentualSobreBrutoAntesDelFijo(t *testing.T) {
	// 10% de 1000 = 100, más 50 fijo = 150. El porcentaje se calcula
	// sobre el bruto, nunca sobre el bruto ya rebajado.
	descuentos := []model.Descuento{
		{Tipo: model.DescuentoPorcentual, Valor: d("10")},
		{Tipo: model.DescuentoFijo, Valor: d("50")},
	}
	total, neto := CalcularDescuento(d("1000"), descuentos)
	assert.True(t, d("150").Equal(total), "total descuento = %s", total)
	assert.True(t, d("850").Equal(neto), "neto = %s", neto)
}

func TestCalcularDescuento_OrdenDeAplicacionIrrelevante(t *testing.T) {
	// Fijo declarado primero: el resultado no cambia.
	descuentos := []model.Descuento{
		{Tipo: model.DescuentoFijo, Valor: d("50")},
		{Tipo: model.DescuentoPorcentual, Valor: d("10")},
	}
	total, neto := CalcularDescuento(d("1000"), descuentos)
	assert.True(t, d("150").Equal(total))
	assert.True(t, d("850").Equal(neto))
}

func TestCalcularDescuento_ClampeaAlBruto(t *testing.T) {
	descuentos := []model.Descuento{
		{Tipo: model.DescuentoFijo, Valor: d("150")},
	}
	total, neto := CalcularDescuento(d("100"), descuentos)
	assert.True(t, d("100").Equal(total))
	assert.True(t, neto.IsZero(), "el neto nunca es negativo, fue %s", neto)
}

func TestCalcularDescuento_SinDescuentos(t *testing.T) {
	total, neto := CalcularDescuento(d("320.50"), nil)
	assert.True(t, total.IsZero())
	assert.True(t, d("320.50").Equal(neto))
}

func TestCalcularDescuento_RedondeaADosDecimales(t *testing.T) {
	// 12.5% de 99.99 = 12.49875 → 12.50
	descuentos := []model.Descuento{
		{Tipo: model.DescuentoPorcentual, Valor: d("12.5")},
	}
	total, neto := CalcularDescuento(d("99.99"), descuentos)
	assert.True(t, d("12.50").Equal(total), "total = %s", total)
	assert.True(t, d("87.49").Equal(neto), "neto = %s", neto)
}

func TestCalcularDescuento_VariosPorcentualesSumanSobreElBruto(t *testing.T) {
	descuentos := []model.Descuento{
		{Tipo: model.DescuentoPorcentual, Valor: d("10")},
		{Tipo: model.DescuentoPorcentual, Valor: d("5")},
	}
	total, neto := CalcularDescuento(d("200"), descuentos)
	assert.True(t, d("30").Equal(total))
	assert.True(t, d("170").Equal(neto))
}
