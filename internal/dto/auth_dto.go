package dto

// LoginRequest accepts either a password or a short numeric PIN.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"omitempty,min=4"`
	Pin      string `json:"pin"      validate:"omitempty,numeric,min=4,max=8"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario UsuarioResponse `json:"usuario"`
}

type CrearUsuarioRequest struct {
	Username string   `json:"username" validate:"required,min=3"`
	Nombre   string   `json:"nombre"   validate:"required"`
	Password string   `json:"password" validate:"required,min=6"`
	Pin      *string  `json:"pin"      validate:"omitempty,numeric,min=4,max=8"`
	Rol      string   `json:"rol"      validate:"required,oneof=admin mozo cocina caja"`
	CajaIDs  []string `json:"caja_ids" validate:"omitempty,dive,uuid"`
}

type ActualizarUsuarioRequest struct {
	Nombre   *string  `json:"nombre"`
	Password *string  `json:"password" validate:"omitempty,min=6"`
	Pin      *string  `json:"pin"      validate:"omitempty,numeric,min=4,max=8"`
	Rol      *string  `json:"rol"      validate:"omitempty,oneof=admin mozo cocina caja"`
	CajaIDs  []string `json:"caja_ids" validate:"omitempty,dive,uuid"`
}

type UsuarioResponse struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	Nombre   string   `json:"nombre"`
	Rol      string   `json:"rol"`
	Activo   bool     `json:"activo"`
	CajaIDs  []string `json:"caja_ids,omitempty"`
}
