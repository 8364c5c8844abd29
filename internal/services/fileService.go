package services

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"github.com/libroteca/backend/internal/apperrors"
	"github.com/libroteca/backend/internal/config"
	"github.com/libroteca/backend/internal/storage"
)

// Destination kinds for uploaded blobs.
const (
	TipoImagen = "imagen"
	TipoPdf    = "pdf"
)

// MaxFileSize is the upload ceiling (50MB).
const MaxFileSize = 50 * 1024 * 1024

// S3-style presigned URLs cannot outlive 7 days, so that is how durable a
// signed read link gets here.
const signedURLExpiry = 7 * 24 * time.Hour

func bucketFor(tipo string) (string, error) {
	switch tipo {
	case TipoImagen:
		return config.Get().BucketImagenes, nil
	case TipoPdf:
		return config.Get().BucketPdfs, nil
	default:
		return "", apperrors.Validation("Tipo de archivo no válido")
	}
}

// ValidateUpload enforces the MIME/destination pairing and the size ceiling.
// It runs before any byte reaches the object store.
func ValidateUpload(mimeType, tipo string, size int64) error {
	if size > MaxFileSize {
		return apperrors.Validation("El archivo supera el límite de 50MB")
	}
	switch tipo {
	case TipoImagen:
		if !strings.HasPrefix(mimeType, "image/") {
			return apperrors.Validation("Solo se permiten archivos de imagen")
		}
	case TipoPdf:
		if mimeType != "application/pdf" {
			return apperrors.Validation("Solo se permiten archivos PDF")
		}
	default:
		return apperrors.Validation("Tipo de archivo no válido")
	}
	return nil
}

// ObjectNameFromURL derives the stored object name from a durable URL: the
// final path segment, stripped of any query string.
func ObjectNameFromURL(rawURL string) string {
	trimmed := rawURL
	if i := strings.IndexByte(trimmed, '?'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return path.Base(trimmed)
}

// UploadFile writes a validated blob into the bucket for its kind and returns
// a durable read URL. The object name is a fresh uuid plus the original
// extension, so names never collide. If presigning fails the unsigned object
// URL is returned instead; with public-read buckets that is a degraded but
// functional fallback, matching how the service has always behaved.
func UploadFile(fileBytes []byte, originalName, mimeType, tipo string) (string, error) {
	if err := ValidateUpload(mimeType, tipo, int64(len(fileBytes))); err != nil {
		return "", err
	}

	bucketName, err := bucketFor(tipo)
	if err != nil {
		return "", err
	}
	objectName := uuid.NewString() + strings.ToLower(path.Ext(originalName))

	_, err = storage.MinioClient.PutObject(
		context.Background(),
		bucketName,
		objectName,
		bytes.NewReader(fileBytes),
		int64(len(fileBytes)),
		minio.PutObjectOptions{ContentType: mimeType},
	)
	if err != nil {
		return "", apperrors.Upload("Error al subir el archivo", err)
	}

	signed, err := storage.MinioClient.PresignedGetObject(
		context.Background(), bucketName, objectName, signedURLExpiry, url.Values{})
	if err != nil {
		log.Printf("presigning failed for %s/%s, falling back to unsigned URL: %v", bucketName, objectName, err)
		return unsignedObjectURL(bucketName, objectName), nil
	}
	return signed.String(), nil
}

func unsignedObjectURL(bucketName, objectName string) string {
	cfg := config.Get()
	scheme := "http"
	if cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.MinioEndpoint, bucketName, objectName)
}

// DeleteFileByURL removes the object a durable URL points at. Failures are
// surfaced to the caller, never retried.
func DeleteFileByURL(rawURL, tipo string) error {
	if rawURL == "" {
		return apperrors.Validation("URL del archivo es requerida")
	}
	bucketName, err := bucketFor(tipo)
	if err != nil {
		return err
	}

	objectName := ObjectNameFromURL(rawURL)
	err = storage.MinioClient.RemoveObject(context.Background(), bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return apperrors.Upload("Error al eliminar el archivo", err)
	}
	log.Printf("Archivo eliminado: %s", objectName)
	return nil
}
