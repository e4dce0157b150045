package entity

import "encoding/json"

// Session token de sesión emitido por el backend más el perfil del usuario.
// El token es opaco para el gateway (solo se reenvía como Bearer).
type Session struct {
	Token   string          `json:"token"`
	Usuario json.RawMessage `json:"usuario,omitempty"`
}
