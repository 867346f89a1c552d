package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/omkar-s8203/pune-home-circle/internal/config"
)

// ObjectStore is the binary store for listing images. UploadImage returns
// both the object name (for later removal) and the public URL stored on the
// image row.
type ObjectStore interface {
	UploadImage(ctx context.Context, ownerID, propertyID string, seq int, fileName string, file io.Reader, size int64) (string, string, error)
	DeleteImage(ctx context.Context, objectName string) error
	DeletePropertyImages(ctx context.Context, ownerID, propertyID string) error
}

type MinIOClient struct {
	client *minio.Client
	cfg    *config.Config
}

func NewMinIOClient(cfg *config.Config) (*MinIOClient, error) {
	client, err := minio.New(cfg.MinIO.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
		Secure: cfg.MinIO.UseSSL,
		Region: cfg.MinIO.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.MinIO.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		err = client.MakeBucket(ctx, cfg.MinIO.BucketName, minio.MakeBucketOptions{Region: cfg.MinIO.Region})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

func (m *MinIOClient) UploadImage(ctx context.Context, ownerID, propertyID string, seq int, fileName string, file io.Reader, size int64) (string, string, error) {
	fileExt := strings.ToLower(filepath.Ext(fileName))
	if fileExt == "" {
		fileExt = ".jpg"
	}

	contentType := mime.TypeByExtension(fileExt)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := fmt.Sprintf("properties/%s/%s/%d-%s%s",
		ownerID,
		propertyID,
		seq,
		uuid.New().String(),
		fileExt)

	_, err := m.client.PutObject(ctx, m.cfg.MinIO.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": fileName,
				"property-id":       propertyID,
				"uploaded-at":       time.Now().Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to MinIO: %w", err)
	}

	imageURL := fmt.Sprintf("%s/%s/%s",
		strings.TrimSuffix(m.cfg.MinIO.PublicBase, "/"),
		m.cfg.MinIO.BucketName,
		objectName)

	return objectName, imageURL, nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, objectName,
		minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to remove from MinIO: %w", err)
	}
	return nil
}

// DeletePropertyImages removes every object stored for one listing. Used by
// the cascade on property delete.
func (m *MinIOClient) DeletePropertyImages(ctx context.Context, ownerID, propertyID string) error {
	prefix := fmt.Sprintf("properties/%s/%s/", ownerID, propertyID)

	objects := m.client.ListObjects(ctx, m.cfg.MinIO.BucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return fmt.Errorf("failed to list property objects: %w", object.Err)
		}
		if err := m.client.RemoveObject(ctx, m.cfg.MinIO.BucketName, object.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", object.Key, err)
		}
	}

	return nil
}
