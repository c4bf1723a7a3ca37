package service

import (
	"errors"
	"fmt"
	"time"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is; the
// message shown to the client is the ErrorNegocio text.
var (
	ErrNoEncontrado = errors.New("no encontrado")
	ErrConflicto    = errors.New("conflicto")
	ErrInvalido     = errors.New("datos inválidos")
)

// ErrorNegocio is a business rule violation with a user-facing message.
type ErrorNegocio struct {
	kind error
	msg  string
}

func (e *ErrorNegocio) Error() string { return e.msg }
func (e *ErrorNegocio) Unwrap() error { return e.kind }

func noEncontrado(format string, args ...interface{}) error {
	return &ErrorNegocio{kind: ErrNoEncontrado, msg: fmt.Sprintf(format, args...)}
}

func conflicto(format string, args ...interface{}) error {
	return &ErrorNegocio{kind: ErrConflicto, msg: fmt.Sprintf(format, args...)}
}

func invalido(format string, args ...interface{}) error {
	return &ErrorNegocio{kind: ErrInvalido, msg: fmt.Sprintf(format, args...)}
}

const formatoFecha = "2006-01-02"

// dia truncates t to its calendar date in UTC.
func dia(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fmtFecha(t time.Time) string { return t.Format(formatoFecha) }

func fmtFechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtFecha(*t)
	return &s
}

// parseFechaOpcional parses a YYYY-MM-DD string; nil or "" yield nil.
func parseFechaOpcional(s *string, campo string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse(formatoFecha, *s)
	if err != nil {
		return nil, invalido("%s inválida: %s", campo, *s)
	}
	return &t, nil
}
