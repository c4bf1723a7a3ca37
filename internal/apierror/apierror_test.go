package apierror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMensajeCampo(t *testing.T) {
	tests := []struct {
		tag, param, want string
	}{
		{"required", "", "es obligatorio"},
		{"min", "2", "mínimo 2"},
		{"max", "120", "máximo 120"},
		{"gt", "0", "debe ser mayor a 0"},
		{"oneof", "leche insumo empaque", "debe ser uno de: leche insumo empaque"},
		{"uuid", "", "debe ser un UUID"},
		{"email", "", "email"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MensajeCampo(tc.tag, tc.param), tc.tag)
	}
}

func TestConstructores(t *testing.T) {
	assert.Equal(t, MsgInterno, Interno().Detail)
	assert.Equal(t, "JSON inválido: unexpected EOF", JSONInvalido(errors.New("unexpected EOF")).Detail)

	v := NewValidation(map[string]string{"Nombre": "es obligatorio"})
	assert.Equal(t, MsgValidacion, v.Detail)
	assert.Equal(t, "es obligatorio", v.Fields["Nombre"])
}
