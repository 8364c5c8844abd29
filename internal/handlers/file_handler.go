package handlers

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/services"
	"github.com/libroteca/backend/internal/utils"
)

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, apperrors.Validation("No se pudo abrir el archivo")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, apperrors.Upload("No se pudo leer el archivo", err)
	}
	return data, nil
}

// SubirArchivosHandler receives a multipart form with a required imagen and
// an optional pdf, stores both blobs and creates the book pointing at their
// durable URLs. Both files are validated before either byte hits storage, so
// a bad pdf never leaves an orphaned image behind.
func SubirArchivosHandler(c *fiber.Ctx) error {
	titulo := c.FormValue("titulo")
	autor := c.FormValue("autor")
	descripcion := c.FormValue("descripcion")
	if titulo == "" || autor == "" {
		return apperrors.Validation("Título y autor son requeridos")
	}

	imagenFH, err := c.FormFile("imagen")
	if err != nil {
		return apperrors.Validation("La imagen es requerida")
	}
	if err := services.ValidateUpload(imagenFH.Header.Get("Content-Type"), services.TipoImagen, imagenFH.Size); err != nil {
		return err
	}

	pdfFH, _ := c.FormFile("pdf")
	if pdfFH != nil {
		if err := services.ValidateUpload(pdfFH.Header.Get("Content-Type"), services.TipoPdf, pdfFH.Size); err != nil {
			return err
		}
	}

	imagenBytes, err := readMultipartFile(imagenFH)
	if err != nil {
		return err
	}

	tasks := []utils.ParallelTask{
		func() (interface{}, error) {
			return services.UploadFile(imagenBytes, imagenFH.Filename, imagenFH.Header.Get("Content-Type"), services.TipoImagen)
		},
	}
	if pdfFH != nil {
		pdfBytes, err := readMultipartFile(pdfFH)
		if err != nil {
			return err
		}
		tasks = append(tasks, func() (interface{}, error) {
			return services.UploadFile(pdfBytes, pdfFH.Filename, pdfFH.Header.Get("Content-Type"), services.TipoPdf)
		})
	}

	results, errs := utils.RunParallelTasks(tasks)
	for _, err := range errs {
		if err != nil {
			return err
		}
	}

	urlImagen, _ := results[0].(string)
	urlPdf := ""
	if len(results) > 1 {
		urlPdf, _ = results[1].(string)
	}

	libro, err := services.CreateBook(viewerID(c), titulo, autor, descripcion, urlPdf, urlImagen)
	if err != nil {
		return err
	}
	return created(c, "Libro creado exitosamente", libro)
}

// EliminarArchivoHandler removes a stored blob by its durable URL.
func EliminarArchivoHandler(c *fiber.Ctx) error {
	var req struct {
		URL  string `json:"url"`
		Tipo string `json:"tipo"`
	}
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Cuerpo de la petición inválido")
	}

	if err := services.DeleteFileByURL(req.URL, req.Tipo); err != nil {
		return err
	}
	return ok(c, "Archivo eliminado exitosamente", nil)
}
