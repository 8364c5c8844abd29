package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/config"
	"github.com/libroteca/backend/internal/services"
)

var validate = validator.New()

// NewApp builds the Fiber app with the service-wide limits and error handler.
// The body limit must clear Fiber's 4MB default: a multipart upload carries an
// imagen and optionally a pdf, each allowed up to the 50MB ceiling, plus form
// fields and framing.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    2*services.MaxFileSize + 1024*1024,
	})
}

func ok(c *fiber.Ctx, message string, data interface{}) error {
	resp := fiber.Map{"success": true, "message": message}
	if data != nil {
		resp["data"] = data
	}
	return c.JSON(resp)
}

func okCount(c *fiber.Ctx, message string, count int, data interface{}) error {
	return c.JSON(fiber.Map{"success": true, "message": message, "count": count, "data": data})
}

func created(c *fiber.Ctx, message string, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": message, "data": data})
}

// ErrorHandler is the app-wide fiber error handler. Every failure a handler
// returns ends up here and is rendered as the {success:false, message, error?}
// envelope. Internal detail only reaches the client in development mode;
// server-side it is always logged in full.
func ErrorHandler(c *fiber.Ctx, err error) error {
	if appErr, ok := apperrors.As(err); ok {
		resp := fiber.Map{"success": false, "message": appErr.Message}
		if appErr.Err != nil {
			log.Printf("%s %s: %v", c.Method(), c.Path(), appErr)
			if config.IsDevelopment() {
				resp["error"] = appErr.Err.Error()
			}
		}
		return c.Status(appErr.Status).JSON(resp)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"success": false, "message": fiberErr.Message})
	}

	log.Printf("%s %s: unexpected error: %v", c.Method(), c.Path(), err)
	resp := fiber.Map{"success": false, "message": "Error interno del servidor"}
	if config.IsDevelopment() {
		resp["error"] = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(resp)
}

// parseBirthday accepts the two date shapes clients send.
func parseBirthday(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.Validation("Formato de fecha inválido, usa AAAA-MM-DD")
}

func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		if f.Tag() == "email" {
			return apperrors.Validation("Email inválido")
		}
		return apperrors.Validation("El campo " + f.Field() + " es requerido")
	}
	return apperrors.Validation("Datos de entrada inválidos")
}
