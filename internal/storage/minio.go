package storage

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/libroteca/backend/internal/config"
)

var MinioClient *minio.Client

// InitMinio connects to the object store and makes sure the image and pdf
// buckets exist.
func InitMinio(cfg config.Config) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, bucketName := range []string{cfg.BucketImagenes, cfg.BucketPdfs} {
		exists, err := client.BucketExists(ctx, bucketName)
		if err != nil {
			log.Printf("Warning: Failed to check bucket existence: %v", err)
			continue
		}
		if !exists {
			if err := client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
				log.Printf("Warning: Failed to create bucket: %v", err)
			} else {
				log.Printf("Created bucket: %s", bucketName)
			}
		}
	}

	MinioClient = client
	fmt.Println("✅ Connected to MinIO")
}
