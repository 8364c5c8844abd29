package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/models"
)

// AdminOnly gates a route to admin accounts. It must run after AuthRequired,
// which puts the verified role into the request locals.
func AdminOnly(c *fiber.Ctx) error {
	rol, ok := c.Locals("rol").(string)
	if !ok {
		return apperrors.Auth("Usuario no autenticado")
	}
	if rol != models.RolAdmin {
		return apperrors.Forbidden("Acceso denegado. Solo administradores")
	}
	return c.Next()
}
