package service

import (
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"

	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// CalcularDescuento reduces a venta's discount set against its gross
// total. Percentage discounts are computed on the gross before any
// fixed amount is subtracted, so the two kinds never compound. The
// total discount is clamped to the gross: the net can reach zero but
// never go negative.
func CalcularDescuento(bruto decimal.Decimal, descuentos []model.Descuento) (totalDescuento, neto decimal.Decimal) {
	total := decimal.Zero
	for _, d := range descuentos {
		if d.Tipo == model.DescuentoPorcentual {
			total = total.Add(bruto.Mul(d.Valor).Div(cien))
		}
	}
	for _, d := range descuentos {
		if d.Tipo == model.DescuentoFijo {
			total = total.Add(d.Valor)
		}
	}
	total = total.Round(2)
	if total.GreaterThan(bruto) {
		total = bruto
	}
	return total, bruto.Sub(total)
}
