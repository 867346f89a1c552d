package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type imageRepository struct {
	db *sqlx.DB
}

func NewImageRepository(db *sqlx.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *models.PropertyImage) error {
	if image.ID == "" {
		image.ID = uuid.New().String()
	}
	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO property_images (id, property_id, image_url, display_order, created_at)
		VALUES (:id, :property_id, :image_url, :display_order, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, image); err != nil {
		return persistErr("create property image", err)
	}

	return nil
}

func (r *imageRepository) ListByPropertyID(ctx context.Context, propertyID string) ([]models.PropertyImage, error) {
	query := `
		SELECT * FROM property_images
		WHERE property_id = $1
		ORDER BY display_order
	`

	var images []models.PropertyImage
	if err := r.db.SelectContext(ctx, &images, query, propertyID); err != nil {
		return nil, persistErr("list property images", err)
	}

	return images, nil
}

func (r *imageRepository) DeleteByPropertyID(ctx context.Context, propertyID string) error {
	query := `DELETE FROM property_images WHERE property_id = $1`

	if _, err := r.db.ExecContext(ctx, query, propertyID); err != nil {
		return persistErr("delete property images", err)
	}

	return nil
}
