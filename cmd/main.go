package main

import (
	"log"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/libroteca/backend/internal/config"
	"github.com/libroteca/backend/internal/db"
	"github.com/libroteca/backend/internal/handlers"
	"github.com/libroteca/backend/internal/middleware"
	"github.com/libroteca/backend/internal/storage"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading it, using environment variables")
	}
	cfg := config.Load()

	app := handlers.NewApp()

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New())

	// Connect to MongoDB and MinIO
	db.ConnectMongoDB(cfg.MongoURI, cfg.MongoDB)
	storage.InitMinio(cfg)

	// Usuario routes
	usuarios := app.Group("/usuarios")
	usuarios.Post("/registro", handlers.RegistroHandler)
	usuarios.Post("/login", handlers.LoginHandler)
	usuarios.Get("/", middleware.AuthRequired, middleware.AdminOnly, handlers.ListarUsuariosHandler)
	usuarios.Get("/:id", middleware.AuthRequired, handlers.ObtenerPerfilHandler)
	usuarios.Put("/:id", middleware.AuthRequired, handlers.ActualizarPerfilHandler)
	usuarios.Delete("/:id", middleware.AuthRequired, handlers.EliminarCuentaHandler)

	// Libro routes. Specific paths go first so they are not captured by :id.
	libros := app.Group("/libros", middleware.AuthRequired)
	libros.Get("/", handlers.ObtenerLibrosHandler)
	libros.Get("/buscar/titulo/:titulo", handlers.BuscarPorTituloHandler)
	libros.Get("/usuario/:usuarioId", handlers.LibrosPorUsuarioHandler)
	libros.Get("/admin/todos", middleware.AdminOnly, handlers.TodosLosLibrosHandler)
	libros.Post("/subir", handlers.SubirArchivosHandler)
	libros.Delete("/eliminar", handlers.EliminarArchivoHandler)
	libros.Post("/", handlers.CrearLibroHandler)
	libros.Get("/:id", handlers.ObtenerLibroHandler)
	libros.Put("/:id", handlers.ActualizarLibroHandler)
	libros.Delete("/:id", handlers.EliminarLibroHandler)
	libros.Patch("/:id/restaurar", handlers.RestaurarLibroHandler)

	// Link-based creation, admin only
	simple := app.Group("/simple", middleware.AuthRequired, middleware.AdminOnly)
	simple.Post("/libro-con-enlaces", handlers.CrearLibroConEnlacesHandler)

	log.Fatal(app.Listen(":" + cfg.Port))
}
