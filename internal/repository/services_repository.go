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

type servicesRepository struct {
	db *sqlx.DB
}

func NewServicesRepository(db *sqlx.DB) ServicesRepository {
	return &servicesRepository{db: db}
}

func (r *servicesRepository) CreateService(ctx context.Context, service *models.Service) error {
	if service.ID == "" {
		service.ID = uuid.New().String()
	}

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now

	query := `
		INSERT INTO services (id, title, description, price, image_url, is_active, display_order, created_at, updated_at)
		VALUES (:id, :title, :description, :price, :image_url, :is_active, :display_order, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, service); err != nil {
		return persistErr("create service", err)
	}

	return nil
}

func (r *servicesRepository) UpdateService(ctx context.Context, service *models.Service) error {
	service.UpdatedAt = time.Now()

	query := `
		UPDATE services SET
			title = :title,
			description = :description,
			price = :price,
			image_url = :image_url,
			is_active = :is_active,
			display_order = :display_order,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, service)
	if err != nil {
		return persistErr("update service", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("update service", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("service %s: %w", service.ID, apperr.ErrNotFound)
	}

	return nil
}

func (r *servicesRepository) DeleteService(ctx context.Context, id string) error {
	query := `DELETE FROM services WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return persistErr("delete service", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("delete service", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("service %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *servicesRepository) GetServiceByID(ctx context.Context, id string) (*models.Service, error) {
	query := `SELECT * FROM services WHERE id = $1`

	var service models.Service
	err := r.db.GetContext(ctx, &service, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("service %s: %w", id, apperr.ErrNotFound)
		}
		return nil, persistErr("get service", err)
	}

	return &service, nil
}

func (r *servicesRepository) ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	query := `SELECT * FROM services ORDER BY display_order`
	if activeOnly {
		query = `SELECT * FROM services WHERE is_active = TRUE ORDER BY display_order`
	}

	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, persistErr("list services", err)
	}

	return services, nil
}

func (r *servicesRepository) CreateRequest(ctx context.Context, request *models.ServiceRequest) error {
	if request.ID == "" {
		request.ID = uuid.New().String()
	}
	if request.Status == "" {
		request.Status = "new"
	}
	if request.CreatedAt.IsZero() {
		request.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO service_requests (id, service_id, user_id, name, email, phone, address, message, status, admin_notes, created_at)
		VALUES (:id, :service_id, :user_id, :name, :email, :phone, :address, :message, :status, :admin_notes, :created_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return persistErr("create service request", err)
	}

	return nil
}

func (r *servicesRepository) ListRequests(ctx context.Context) ([]models.ServiceRequest, error) {
	query := `
		SELECT * FROM service_requests
		ORDER BY created_at DESC
	`

	var requests []models.ServiceRequest
	if err := r.db.SelectContext(ctx, &requests, query); err != nil {
		return nil, persistErr("list service requests", err)
	}

	if err := r.attachServices(ctx, requests); err != nil {
		return nil, err
	}

	return requests, nil
}

func (r *servicesRepository) UpdateRequest(ctx context.Context, id, status, adminNotes string) error {
	query := `
		UPDATE service_requests
		SET status = $1, admin_notes = $2
		WHERE id = $3
	`

	result, err := r.db.ExecContext(ctx, query, status, adminNotes, id)
	if err != nil {
		return persistErr("update service request", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("update service request", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("service request %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *servicesRepository) DeleteRequest(ctx context.Context, id string) error {
	query := `DELETE FROM service_requests WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return persistErr("delete service request", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("delete service request", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("service request %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *servicesRepository) GetSponsorSettings(ctx context.Context) (*models.SponsorSettings, error) {
	query := `SELECT * FROM sponsor_settings LIMIT 1`

	var settings models.SponsorSettings
	err := r.db.GetContext(ctx, &settings, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sponsor settings: %w", apperr.ErrNotFound)
		}
		return nil, persistErr("get sponsor settings", err)
	}

	return &settings, nil
}

func (r *servicesRepository) UpdateSponsorSettings(ctx context.Context, settings *models.SponsorSettings) error {
	settings.UpdatedAt = time.Now()

	query := `
		UPDATE sponsor_settings SET
			qr_code_url = :qr_code_url,
			bank_name = :bank_name,
			account_holder_name = :account_holder_name,
			account_number = :account_number,
			ifsc_code = :ifsc_code,
			upi_id = :upi_id,
			message = :message,
			updated_by = :updated_by,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, settings)
	if err != nil {
		return persistErr("update sponsor settings", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("update sponsor settings", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("sponsor settings %s: %w", settings.ID, apperr.ErrNotFound)
	}

	return nil
}

func (r *servicesRepository) attachServices(ctx context.Context, requests []models.ServiceRequest) error {
	if len(requests) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(requests))
	ids := make([]string, 0, len(requests))
	for i := range requests {
		if _, ok := seen[requests[i].ServiceID]; !ok {
			seen[requests[i].ServiceID] = struct{}{}
			ids = append(ids, requests[i].ServiceID)
		}
	}

	query, args, err := sqlx.In(`SELECT * FROM services WHERE id IN (?)`, ids)
	if err != nil {
		return persistErr("build request service query", err)
	}

	var services []models.Service
	if err := r.db.SelectContext(ctx, &services, r.db.Rebind(query), args...); err != nil {
		return persistErr("list request services", err)
	}

	byID := make(map[string]*models.Service, len(services))
	for i := range services {
		byID[services[i].ID] = &services[i]
	}

	for i := range requests {
		requests[i].Service = byID[requests[i].ServiceID]
	}

	return nil
}
