// Package dto define los contratos de entrada y salida de la capa HTTP.
package dto

// ErrorResponse formato único de error hacia el front.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewErrorResponse helper para respuestas de error.
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Code: code, Message: message}
}
