package models

// ErrorResponse es el sobre de error del API: mensaje genérico para el
// usuario más un detail opcional para diagnóstico.
type ErrorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}
