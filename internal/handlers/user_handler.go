package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/models"
	"github.com/libroteca/backend/internal/services"
)

type registroRequest struct {
	Nombre   string `json:"nombre" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Birthday string `json:"birthday"`
	Photo    string `json:"photo"`
	Rol      string `json:"rol"`
}

// RegistroHandler creates an account and returns it with its first token.
func RegistroHandler(c *fiber.Ctx) error {
	var req registroRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}
	if err := validate.Struct(req); err != nil {
		return validationMessage(err)
	}
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return err
	}

	user, token, err := services.RegisterUser(services.RegisterInput{
		Nombre:   req.Nombre,
		Email:    req.Email,
		Password: req.Password,
		Birthday: birthday,
		Photo:    req.Photo,
		Rol:      req.Rol,
	})
	if err != nil {
		return err
	}

	return created(c, "Usuario registrado exitosamente", fiber.Map{
		"usuario": user,
		"token":   token,
	})
}

// LoginHandler authenticates and returns the user with a fresh token.
func LoginHandler(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}

	user, token, err := services.LoginUser(req.Email, req.Password)
	if err != nil {
		return err
	}

	return ok(c, "Login exitoso", fiber.Map{
		"usuario": user,
		"token":   token,
	})
}

// ObtenerPerfilHandler returns a user profile, password stripped.
func ObtenerPerfilHandler(c *fiber.Ctx) error {
	user, err := services.GetUserByID(c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, "Usuario obtenido exitosamente", user)
}

// ActualizarPerfilHandler updates nombre/birthday/photo of the caller's own
// profile. Admins may update anyone. Email, password and role never change
// through this route.
func ActualizarPerfilHandler(c *fiber.Ctx) error {
	if err := requireSelfOrAdmin(c); err != nil {
		return err
	}

	var req struct {
		Nombre   string `json:"nombre"`
		Birthday string `json:"birthday"`
		Photo    string `json:"photo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}
	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return err
	}

	user, err := services.UpdateProfile(c.Params("id"), services.ProfileUpdate{
		Nombre:   req.Nombre,
		Birthday: birthday,
		Photo:    req.Photo,
	})
	if err != nil {
		return err
	}
	return ok(c, "Perfil actualizado exitosamente", user)
}

// EliminarCuentaHandler removes an account. Self or admin only.
func EliminarCuentaHandler(c *fiber.Ctx) error {
	if err := requireSelfOrAdmin(c); err != nil {
		return err
	}
	if err := services.DeleteUser(c.Params("id")); err != nil {
		return err
	}
	return ok(c, "Cuenta eliminada exitosamente", nil)
}

// ListarUsuariosHandler dumps every account. Admin route.
func ListarUsuariosHandler(c *fiber.Ctx) error {
	users, err := services.ListUsers()
	if err != nil {
		return err
	}
	return okCount(c, "Usuarios obtenidos exitosamente", len(users), users)
}

func requireSelfOrAdmin(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	rol, _ := c.Locals("rol").(string)
	if userID != c.Params("id") && rol != models.RolAdmin {
		return apperrors.Forbidden("No tienes permisos sobre esta cuenta")
	}
	return nil
}
