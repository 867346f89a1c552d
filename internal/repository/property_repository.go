package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type propertyRepository struct {
	db *sqlx.DB
}

func NewPropertyRepository(db *sqlx.DB) PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusPending
	}

	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	query := `
		INSERT INTO properties
		(id, user_id, title, property_type, rent, area, description, map_link, status, rejection_reason, created_at, updated_at)
		VALUES
		(:id, :user_id, :title, :property_type, :rent, :area, :description, :map_link, :status, :rejection_reason, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, property); err != nil {
		return persistErr("create property", err)
	}

	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	query := `SELECT * FROM properties WHERE id = $1`

	var property models.Property
	err := r.db.GetContext(ctx, &property, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("property %s: %w", id, apperr.ErrNotFound)
		}
		return nil, persistErr("get property", err)
	}

	props := []models.Property{property}
	if err := r.attachImages(ctx, props); err != nil {
		return nil, err
	}
	if err := r.attachProfiles(ctx, props); err != nil {
		return nil, err
	}

	return &props[0], nil
}

func (r *propertyRepository) ListApproved(ctx context.Context) ([]models.Property, error) {
	query := `
		SELECT * FROM properties
		WHERE status = 'approved'
		ORDER BY created_at DESC
	`

	var properties []models.Property
	if err := r.db.SelectContext(ctx, &properties, query); err != nil {
		return nil, persistErr("list approved properties", err)
	}

	if err := r.attachImages(ctx, properties); err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *propertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	query := `
		SELECT * FROM properties
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var properties []models.Property
	if err := r.db.SelectContext(ctx, &properties, query, ownerID); err != nil {
		return nil, persistErr("list owner properties", err)
	}

	if err := r.attachImages(ctx, properties); err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *propertyRepository) ListAll(ctx context.Context, status *models.PropertyStatus) ([]models.Property, error) {
	var properties []models.Property
	var err error

	if status != nil {
		query := `
			SELECT * FROM properties
			WHERE status = $1
			ORDER BY created_at DESC
		`
		err = r.db.SelectContext(ctx, &properties, query, *status)
	} else {
		query := `
			SELECT * FROM properties
			ORDER BY created_at DESC
		`
		err = r.db.SelectContext(ctx, &properties, query)
	}
	if err != nil {
		return nil, persistErr("list all properties", err)
	}

	if err := r.attachImages(ctx, properties); err != nil {
		return nil, err
	}
	if err := r.attachProfiles(ctx, properties); err != nil {
		return nil, err
	}

	return properties, nil
}

func (r *propertyRepository) UpdateStatus(ctx context.Context, id string, status models.PropertyStatus, rejectionReason string) error {
	query := `
		UPDATE properties
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, rejectionReason, id)
	if err != nil {
		return persistErr("update property status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("update property status", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("property %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *propertyRepository) Delete(ctx context.Context, id string) error {
	// property_images rows go with the property via ON DELETE CASCADE;
	// reports keep the recorded property id.
	query := `DELETE FROM properties WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return persistErr("delete property", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("delete property", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("property %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *propertyRepository) CountNonRejectedByOwner(ctx context.Context, ownerID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM properties
		WHERE user_id = $1 AND status != 'rejected'
	`

	var count int
	if err := r.db.GetContext(ctx, &count, query, ownerID); err != nil {
		return 0, persistErr("count owner properties", err)
	}

	return count, nil
}

func (r *propertyRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM properties`); err != nil {
		return 0, persistErr("count properties", err)
	}
	return count, nil
}

func (r *propertyRepository) CountByStatus(ctx context.Context, status models.PropertyStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM properties WHERE status = $1`
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, persistErr("count properties by status", err)
	}
	return count, nil
}

// attachImages stitches property_images onto the given properties in one
// query. This is the single place where the property+images composition is
// defined.
func (r *propertyRepository) attachImages(ctx context.Context, properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	ids := make([]string, 0, len(properties))
	for i := range properties {
		ids = append(ids, properties[i].ID)
	}

	query, args, err := sqlx.In(`
		SELECT * FROM property_images
		WHERE property_id IN (?)
		ORDER BY display_order
	`, ids)
	if err != nil {
		return persistErr("build image query", err)
	}

	var images []models.PropertyImage
	if err := r.db.SelectContext(ctx, &images, r.db.Rebind(query), args...); err != nil {
		return persistErr("list property images", err)
	}

	byProperty := make(map[string][]models.PropertyImage, len(properties))
	for _, img := range images {
		byProperty[img.PropertyID] = append(byProperty[img.PropertyID], img)
	}

	for i := range properties {
		properties[i].Images = byProperty[properties[i].ID]
	}

	return nil
}

// attachProfiles stitches owner profiles onto the given properties. A missing
// profile leaves the field nil rather than failing the read.
func (r *propertyRepository) attachProfiles(ctx context.Context, properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(properties))
	ids := make([]string, 0, len(properties))
	for i := range properties {
		if _, ok := seen[properties[i].UserID]; !ok {
			seen[properties[i].UserID] = struct{}{}
			ids = append(ids, properties[i].UserID)
		}
	}

	query, args, err := sqlx.In(`SELECT * FROM profiles WHERE id IN (?)`, ids)
	if err != nil {
		return persistErr("build profile query", err)
	}

	var profiles []models.Profile
	if err := r.db.SelectContext(ctx, &profiles, r.db.Rebind(query), args...); err != nil {
		return persistErr("list property profiles", err)
	}

	byID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}

	for i := range properties {
		properties[i].Profile = byID[properties[i].UserID]
	}

	return nil
}
