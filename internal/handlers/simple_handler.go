package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/services"
	"github.com/libroteca/backend/internal/utils"
)

type libroConEnlacesRequest struct {
	Titulo       string `json:"titulo" validate:"required"`
	Autor        string `json:"autor" validate:"required"`
	Descripcion  string `json:"descripcion"`
	EnlaceImagen string `json:"enlaceImagen" validate:"required"`
	EnlacePdf    string `json:"enlacePdf"`
}

// CrearLibroConEnlacesHandler creates a book from externally hosted files.
// Share links (Google Drive "file/view" form) are rewritten into their
// direct-content URLs before being stored.
func CrearLibroConEnlacesHandler(c *fiber.Ctx) error {
	var req libroConEnlacesRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}
	if err := validate.Struct(req); err != nil {
		return validationMessage(err)
	}

	imagenDirecta := utils.NormalizeDriveLink(req.EnlaceImagen)
	pdfDirecto := ""
	if req.EnlacePdf != "" {
		pdfDirecto = utils.NormalizeDriveLink(req.EnlacePdf)
	}

	libro, err := services.CreateBook(viewerID(c), req.Titulo, req.Autor, req.Descripcion, pdfDirecto, imagenDirecta)
	if err != nil {
		return err
	}
	return created(c, "Libro creado exitosamente", libro)
}
