package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusPerKind(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{Validation("falta el título"), fiber.StatusBadRequest},
		{Auth("credenciales inválidas"), fiber.StatusUnauthorized},
		{Forbidden("solo administradores"), fiber.StatusForbidden},
		{NotFound("libro no encontrado"), fiber.StatusNotFound},
		{Conflict("email duplicado"), fiber.StatusBadRequest},
		{Upload("fallo de almacenamiento", errors.New("timeout")), fiber.StatusInternalServerError},
		{Internal(errors.New("sorpresa")), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.Status, tc.err.Message)
	}
}

func TestAsThroughWrapping(t *testing.T) {
	orig := NotFound("no está")
	wrapped := fmt.Errorf("capa extra: %w", orig)

	got, ok := As(wrapped)
	require.True(t, ok)
	assert.Same(t, orig, got)

	_, ok = As(errors.New("cualquiera"))
	assert.False(t, ok)
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("conexión rechazada")
	err := Upload("fallo al subir", cause)

	assert.Contains(t, err.Error(), "fallo al subir")
	assert.Contains(t, err.Error(), "conexión rechazada")
	assert.ErrorIs(t, err, cause)

	bare := Validation("sin título")
	assert.Equal(t, "sin título", bare.Error())
}
