// Package apierror holds the JSON bodies of every error response. Clients
// only ever see a Spanish "detail" message; causes stay in the server log.
package apierror

import "fmt"

const (
	MsgInterno    = "Error interno del servidor"
	MsgIDInvalido = "ID inválido"
	MsgLimite     = "Demasiadas solicitudes. Intente nuevamente en un momento."
	MsgValidacion = "Error de validación"
)

// APIError is the envelope for all 4xx/5xx responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

func Interno() *APIError { return New(MsgInterno) }

func JSONInvalido(err error) *APIError {
	return New("JSON inválido: " + err.Error())
}

// ValidationError is the 422 body, one message per rejected field.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: MsgValidacion, Fields: fields}
}

// MensajeCampo renders a validator tag and its parameter for the form.
// Unknown tags fall back to the tag name.
func MensajeCampo(tag, param string) string {
	switch tag {
	case "required":
		return "es obligatorio"
	case "min":
		return fmt.Sprintf("mínimo %s", param)
	case "max":
		return fmt.Sprintf("máximo %s", param)
	case "gt":
		return fmt.Sprintf("debe ser mayor a %s", param)
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", param)
	case "oneof":
		return fmt.Sprintf("debe ser uno de: %s", param)
	case "uuid":
		return "debe ser un UUID"
	default:
		return tag
	}
}
