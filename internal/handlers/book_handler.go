package handlers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/services"
)

func viewerID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// ObtenerLibrosHandler lists the books visible to the caller, newest first.
// An optional usuarioId query narrows the list to one owner's books.
func ObtenerLibrosHandler(c *fiber.Ctx) error {
	libros, err := services.ListVisible(viewerID(c), c.Query("usuarioId"))
	if err != nil {
		return err
	}
	return ok(c, "Libros obtenidos exitosamente", libros)
}

// LibrosPorUsuarioHandler lists one user's public books.
func LibrosPorUsuarioHandler(c *fiber.Ctx) error {
	libros, err := services.ListByOwner(c.Params("usuarioId"))
	if err != nil {
		return err
	}
	return ok(c, "Libros del usuario obtenidos exitosamente", libros)
}

// BuscarPorTituloHandler searches visible books by title substring.
func BuscarPorTituloHandler(c *fiber.Ctx) error {
	titulo, err := unescapeParam(c, "titulo")
	if err != nil {
		return err
	}
	libros, err := services.SearchByTitle(titulo, viewerID(c))
	if err != nil {
		return err
	}
	return ok(c, "Búsqueda completada exitosamente", libros)
}

// ObtenerLibroHandler fetches one book as the caller sees it.
func ObtenerLibroHandler(c *fiber.Ctx) error {
	libro, err := services.GetBookByID(c.Params("id"), viewerID(c))
	if err != nil {
		return err
	}
	return ok(c, "Libro obtenido exitosamente", libro)
}

type crearLibroRequest struct {
	Titulo      string `json:"titulo" validate:"required"`
	Autor       string `json:"autor" validate:"required"`
	Descripcion string `json:"descripcion"`
	RutaPdf     string `json:"rutaPdf"`
	Photo       string `json:"photo"`
}

// CrearLibroHandler creates a book owned by the caller.
func CrearLibroHandler(c *fiber.Ctx) error {
	var req crearLibroRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}
	if err := validate.Struct(req); err != nil {
		return validationMessage(err)
	}

	libro, err := services.CreateBook(viewerID(c), req.Titulo, req.Autor, req.Descripcion, req.RutaPdf, req.Photo)
	if err != nil {
		return err
	}
	return created(c, "Libro creado exitosamente", libro)
}

// ActualizarLibroHandler lets the owner overwrite supplied fields. Non-owners
// get the same 404 as a missing book.
func ActualizarLibroHandler(c *fiber.Ctx) error {
	var req struct {
		Titulo      string  `json:"titulo"`
		Autor       string  `json:"autor"`
		Descripcion *string `json:"descripcion"`
		RutaPdf     *string `json:"rutaPdf"`
		Photo       *string `json:"photo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}

	libro, err := services.UpdateBook(c.Params("id"), viewerID(c), services.BookUpdate{
		Titulo:      req.Titulo,
		Autor:       req.Autor,
		Descripcion: req.Descripcion,
		RutaPdf:     req.RutaPdf,
		Photo:       req.Photo,
	})
	if err != nil {
		return err
	}
	return ok(c, "Libro actualizado exitosamente", libro)
}

// EliminarLibroHandler destroys the book when the caller owns it, otherwise
// hides it from the caller's view only.
func EliminarLibroHandler(c *fiber.Ctx) error {
	permanente, err := services.RemoveBook(c.Params("id"), viewerID(c))
	if err != nil {
		return err
	}
	if permanente {
		return ok(c, "Libro eliminado permanentemente", nil)
	}
	return ok(c, "Libro ocultado de tu biblioteca", nil)
}

// RestaurarLibroHandler undoes a per-user hide.
func RestaurarLibroHandler(c *fiber.Ctx) error {
	libro, err := services.RestoreBook(c.Params("id"), viewerID(c))
	if err != nil {
		return err
	}
	return ok(c, "Libro restaurado en tu biblioteca", libro)
}

// TodosLosLibrosHandler dumps every book regardless of visibility. Admin route.
func TodosLosLibrosHandler(c *fiber.Ctx) error {
	libros, err := services.ListAllBooks()
	if err != nil {
		return err
	}
	return okCount(c, "Todos los libros obtenidos exitosamente", len(libros), libros)
}

// unescapeParam decodes a path parameter so multi-word titles search as typed.
func unescapeParam(c *fiber.Ctx, name string) (string, error) {
	s, err := url.PathUnescape(c.Params(name))
	if err != nil {
		return "", apperrors.Validation("Parámetro inválido")
	}
	return s, nil
}
