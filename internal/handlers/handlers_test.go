package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/libroteca/backend/internal/middleware"
	"github.com/libroteca/backend/internal/models"
)

// newTestApp is the production app construction, so limits and error
// rendering under test match what the server runs.
func newTestApp() *fiber.App {
	return NewApp()
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestAuthRequiredWithoutToken(t *testing.T) {
	app := newTestApp()
	app.Get("/privado", middleware.AuthRequired, func(c *fiber.Ctx) error {
		return ok(c, "nunca", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/privado", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "Token no proporcionado", env.Message)
}

func TestAuthRequiredWithGarbageToken(t *testing.T) {
	app := newTestApp()
	app.Get("/privado", middleware.AuthRequired, func(c *fiber.Ctx) error {
		return ok(c, "nunca", nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-token")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, decodeEnvelope(t, resp).Success)
}

func TestAuthRequiredRejectsRawTokenWithoutBearer(t *testing.T) {
	app := newTestApp()
	app.Get("/privado", middleware.AuthRequired, func(c *fiber.Ctx) error {
		return ok(c, "nunca", nil)
	})

	req := httptest.NewRequest(http.MethodGet, "/privado", nil)
	req.Header.Set("Authorization", "token-sin-prefijo")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Formato de token inválido", decodeEnvelope(t, resp).Message)
}

func withRol(rol string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user_id", "u1")
		c.Locals("rol", rol)
		return c.Next()
	}
}

func TestAdminOnlyRejectsPlainUser(t *testing.T) {
	app := newTestApp()
	app.Get("/admin", withRol(models.RolUsuario), middleware.AdminOnly, func(c *fiber.Ctx) error {
		return ok(c, "nunca", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Acceso denegado. Solo administradores", decodeEnvelope(t, resp).Message)
}

func TestAdminOnlyPassesAdmin(t *testing.T) {
	app := newTestApp()
	app.Get("/admin", withRol(models.RolAdmin), middleware.AdminOnly, func(c *fiber.Ctx) error {
		return ok(c, "dentro", nil)
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	env := decodeEnvelope(t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "dentro", env.Message)
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestRegistroValidation(t *testing.T) {
	app := newTestApp()
	app.Post("/usuarios/registro", RegistroHandler)

	t.Run("missing fields", func(t *testing.T) {
		resp := postJSON(t, app, "/usuarios/registro", `{}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.False(t, decodeEnvelope(t, resp).Success)
	})

	t.Run("bad email", func(t *testing.T) {
		resp := postJSON(t, app, "/usuarios/registro",
			`{"nombre":"Ana","email":"no-es-email","password":"secret"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Email inválido", decodeEnvelope(t, resp).Message)
	})

	t.Run("bad birthday", func(t *testing.T) {
		resp := postJSON(t, app, "/usuarios/registro",
			`{"nombre":"Ana","email":"ana@x.com","password":"secret","birthday":"ayer"}`)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

// A multipart body well past Fiber's 4MB default must still reach the
// MIME/size validation instead of dying at the transport with a 413; the
// declared-pdf-as-imagen mismatch then rejects it before any storage write.
func TestUploadOverFourMBReachesValidation(t *testing.T) {
	app := newTestApp()
	app.Post("/libros/subir", withRol(models.RolUsuario), SubirArchivosHandler)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("titulo", "Tomo grande"))
	require.NoError(t, w.WriteField("autor", "A1"))

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="imagen"; filename="tomo.pdf"`)
	header.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte{'a'}, 5*1024*1024))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/libros/subir", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Solo se permiten archivos de imagen", decodeEnvelope(t, resp).Message)
}

func TestCrearLibroValidation(t *testing.T) {
	app := newTestApp()
	app.Post("/libros", withRol(models.RolUsuario), CrearLibroHandler)

	resp := postJSON(t, app, "/libros", `{"titulo":"Solo título"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, decodeEnvelope(t, resp).Success)
}
