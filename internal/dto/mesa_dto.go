package dto

type CrearMesaRequest struct {
	Sala       string  `json:"sala"        validate:"required"`
	Numero     string  `json:"numero"      validate:"required"`
	CamareroID *string `json:"camarero_id" validate:"omitempty,uuid"`
}

type MesaResponse struct {
	ID         string  `json:"id"`
	Sala       string  `json:"sala"`
	Numero     string  `json:"numero"`
	CamareroID *string `json:"camarero_id,omitempty"`
}
