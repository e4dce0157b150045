package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrDuplicate           = errors.New("recurso duplicado")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrSessionExpired      = errors.New("sesión inválida o expirada")
	ErrRouteNotImplemented = errors.New("ruta no implementada en el backend")
	ErrBackendUnavailable  = errors.New("backend no disponible")
)

// APIError respuesta no-2xx del backend que no corresponde a 401 ni a una ruta faltante.
// Conserva el status y el mensaje de error parseado del cuerpo.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("error %d del backend", e.Status)
}

// NewAPIError construye un APIError con mensaje por defecto según el status.
func NewAPIError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}
