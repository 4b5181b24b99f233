package dto

type CrearCategoriaRequest struct {
	Nombre   string  `json:"nombre"    validate:"required,min=2"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

type CategoriaResponse struct {
	ID       string              `json:"id"`
	Nombre   string              `json:"nombre"`
	ParentID *string             `json:"parent_id,omitempty"`
	Hijas    []CategoriaResponse `json:"hijas,omitempty"`
}
