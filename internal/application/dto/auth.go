package dto

import "encoding/json"

// LoginRequest credenciales del usuario.
type LoginRequest struct {
	Correo   string `json:"correo" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse sesión emitida por el backend.
type LoginResponse struct {
	Token   string          `json:"token"`
	Usuario json.RawMessage `json:"usuario,omitempty"`
}
