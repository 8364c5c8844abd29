package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/services"
)

// AuthRequired validates the bearer token and loads the caller into the
// request locals. A token whose user has since been deleted is rejected,
// so deleting an account revokes its outstanding tokens.
func AuthRequired(c *fiber.Ctx) error {
	tokenString := c.Get("Authorization")
	if tokenString == "" {
		return apperrors.Auth("Token no proporcionado")
	}
	if !strings.HasPrefix(tokenString, "Bearer ") {
		return apperrors.Auth("Formato de token inválido")
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")
	if tokenString == "" {
		return apperrors.Auth("Formato de token inválido")
	}

	userID, _, err := services.ParseJWT(tokenString)
	if err != nil {
		return err
	}

	user, err := services.GetUserByID(userID)
	if err != nil {
		return apperrors.Auth("Token inválido")
	}

	// The role comes from the stored user, not the token, so stale claims
	// cannot outlive the account's state.
	c.Locals("user_id", user.ID)
	c.Locals("rol", user.Rol)
	return c.Next()
}
