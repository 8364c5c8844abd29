package config

import "os"

// Config holds every environment-driven setting of the service.
type Config struct {
	Port      string
	MongoURI  string
	MongoDB   string
	JWTSecret string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	BucketImagenes string
	BucketPdfs     string

	// "development" exposes internal error detail in API responses.
	AppEnv string
}

var current Config

// Load reads the environment (godotenv is applied by main before this runs)
// and keeps the result package-wide. Local-dev fallbacks match docker-compose
// defaults so the server starts with an empty environment.
func Load() Config {
	current = Config{
		Port:           getenv("PORT", "8080"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getenv("MONGO_DB", "libroteca"),
		JWTSecret:      getenv("JWT_SECRET", "dev-secret-change-me"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		BucketImagenes: getenv("MINIO_BUCKET_IMAGENES", "libroteca-imagenes"),
		BucketPdfs:     getenv("MINIO_BUCKET_PDFS", "libroteca-pdfs"),
		AppEnv:         getenv("APP_ENV", "development"),
	}
	return current
}

// Get returns the last loaded configuration.
func Get() Config {
	return current
}

// IsDevelopment reports whether internal error detail may be shown to clients.
func IsDevelopment() bool {
	return current.AppEnv == "development"
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
