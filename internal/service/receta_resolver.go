package service

import (
	"fmt"

	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/model"
	"github.com/Fsosaleonetti/Software-Completo-Cafeteria/internal/poserror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ConsumoIngrediente is the merged base-unit consumption of one
// ingredient across every line of a venta. Bloquear is set when any
// contributing producto has controla_stock, making a negative result a
// hard failure instead of a warning.
type ConsumoIngrediente struct {
	Ingrediente model.Ingrediente
	Cantidad    decimal.Decimal
	Bloquear    bool
}

// ResolverConsumos expands each item's receta into ingredient
// consumption expressed in the ingredient's base unit. Sub-ingredient
// lines land on the parent ingredient scaled by the conversion factor.
// Repeated ingredients are merged; order follows first appearance.
//
// A producto flagged controla_stock without a receta is a catalog
// misconfiguration and aborts the whole resolution. Productos without
// stock control and without receta simply consume nothing.
func ResolverConsumos(items []model.VentaItem) ([]ConsumoIngrediente, error) {
	porIngrediente := make(map[uuid.UUID]int)
	var consumos []ConsumoIngrediente

	for _, item := range items {
		p := item.Producto
		if p == nil {
			return nil, &poserror.ConfigurationError{
				Detalle: fmt.Sprintf("item %s sin producto cargado", item.ID),
			}
		}
		if p.Receta == nil || len(p.Receta.Items) == 0 {
			if p.ControlaStock {
				return nil, &poserror.ConfigurationError{
					Detalle: fmt.Sprintf("producto %s controla stock pero no tiene receta", p.Nombre),
				}
			}
			continue
		}
		for _, ri := range p.Receta.Items {
			if ri.Ingrediente == nil {
				return nil, &poserror.ConfigurationError{
					Detalle: fmt.Sprintf("receta de %s referencia un ingrediente inexistente", p.Nombre),
				}
			}
			cantidad := ri.Cantidad.Mul(item.Cantidad)
			if ri.SubIngrediente != nil {
				cantidad = cantidad.Mul(ri.SubIngrediente.Factor)
			}

			idx, visto := porIngrediente[ri.IngredienteID]
			if !visto {
				porIngrediente[ri.IngredienteID] = len(consumos)
				consumos = append(consumos, ConsumoIngrediente{
					Ingrediente: *ri.Ingrediente,
					Cantidad:    cantidad,
					Bloquear:    p.ControlaStock,
				})
				continue
			}
			consumos[idx].Cantidad = consumos[idx].Cantidad.Add(cantidad)
			consumos[idx].Bloquear = consumos[idx].Bloquear || p.ControlaStock
		}
	}
	return consumos, nil
}
