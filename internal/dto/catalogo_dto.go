package dto

import "github.com/shopspring/decimal"

// ─── Productos ───────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2"`
	SKU           string          `json:"sku"            validate:"required,min=2"`
	CategoriaID   string          `json:"categoria_id"   validate:"required,uuid"`
	PrecioLista   decimal.Decimal `json:"precio_lista"   validate:"min=0"`
	ControlaStock bool            `json:"controla_stock"`
	Favorito      bool            `json:"favorito"`
}

type ActualizarProductoRequest struct {
	Nombre        *string          `json:"nombre"         validate:"omitempty,min=2"`
	CategoriaID   *string          `json:"categoria_id"   validate:"omitempty,uuid"`
	PrecioLista   *decimal.Decimal `json:"precio_lista"   validate:"omitempty,min=0"`
	ControlaStock *bool            `json:"controla_stock"`
	Favorito      *bool            `json:"favorito"`
	Activo        *bool            `json:"activo"`
}

type ProductoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	SKU           string          `json:"sku"`
	CategoriaID   *string         `json:"categoria_id,omitempty"`
	Precio        decimal.Decimal `json:"precio"`
	ControlaStock bool            `json:"controla_stock"`
	Favorito      bool            `json:"favorito"`
	Activo        bool            `json:"activo"`
	TieneReceta   bool            `json:"tiene_receta"`
}

// ─── Recetas ─────────────────────────────────────────────────────────────────

type RecetaItemRequest struct {
	IngredienteID    string          `json:"ingrediente_id"     validate:"required,uuid"`
	SubIngredienteID *string         `json:"sub_ingrediente_id" validate:"omitempty,uuid"`
	Cantidad         decimal.Decimal `json:"cantidad"           validate:"required,gt=0"`
}

type GuardarRecetaRequest struct {
	ProductoID string              `json:"producto_id" validate:"required,uuid"`
	Items      []RecetaItemRequest `json:"items"       validate:"required,min=1,dive"`
}

type RecetaItemResponse struct {
	Ingrediente      string          `json:"ingrediente"`
	IngredienteID    string          `json:"ingrediente_id"`
	SubIngredienteID *string         `json:"sub_ingrediente_id,omitempty"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Unidad           string          `json:"unidad"`
}

type RecetaResponse struct {
	ProductoID string               `json:"producto_id"`
	Items      []RecetaItemResponse `json:"items"`
}

type CrearSubIngredienteRequest struct {
	PadreID string          `json:"padre_id" validate:"required,uuid"`
	Nombre  string          `json:"nombre"   validate:"required,min=2"`
	Factor  decimal.Decimal `json:"factor"   validate:"required,gt=0"`
}

// ─── Listas de precio ────────────────────────────────────────────────────────

type CrearListaPrecioRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2"`
}

type SetListaItemRequest struct {
	ListaID    string          `json:"lista_id"    validate:"required,uuid"`
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Precio     decimal.Decimal `json:"precio"      validate:"required,min=0"`
}
