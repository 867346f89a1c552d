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

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.ID == "" {
		report.ID = uuid.New().String()
	}
	if report.Status == "" {
		report.Status = models.ReportStatusOpen
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO reports (id, property_id, reporter_email, reason, status, admin_notes, created_at, resolved_at)
		VALUES (:id, :property_id, :reporter_email, :reason, :status, :admin_notes, :created_at, :resolved_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, report); err != nil {
		return persistErr("create report", err)
	}

	return nil
}

func (r *reportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	query := `SELECT * FROM reports WHERE id = $1`

	var report models.Report
	err := r.db.GetContext(ctx, &report, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report %s: %w", id, apperr.ErrNotFound)
		}
		return nil, persistErr("get report", err)
	}

	return &report, nil
}

func (r *reportRepository) ListAll(ctx context.Context) ([]models.Report, error) {
	query := `
		SELECT * FROM reports
		ORDER BY created_at DESC
	`

	var reports []models.Report
	if err := r.db.SelectContext(ctx, &reports, query); err != nil {
		return nil, persistErr("list reports", err)
	}

	if err := r.attachProperties(ctx, reports); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *reportRepository) UpdateStatus(ctx context.Context, id string, status models.ReportStatus, adminNotes string, resolvedAt *time.Time) error {
	query := `
		UPDATE reports
		SET status = $1, admin_notes = $2, resolved_at = $3
		WHERE id = $4
	`

	result, err := r.db.ExecContext(ctx, query, status, adminNotes, resolvedAt, id)
	if err != nil {
		return persistErr("update report status", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return persistErr("update report status", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("report %s: %w", id, apperr.ErrNotFound)
	}

	return nil
}

func (r *reportRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM reports`); err != nil {
		return 0, persistErr("count reports", err)
	}
	return count, nil
}

func (r *reportRepository) CountByStatus(ctx context.Context, status models.ReportStatus) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM reports WHERE status = $1`
	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, persistErr("count reports by status", err)
	}
	return count, nil
}

// attachProperties stitches target listings onto the reports. A report whose
// listing was deleted keeps a nil Property and is never dropped from the list.
func (r *reportRepository) attachProperties(ctx context.Context, reports []models.Report) error {
	if len(reports) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(reports))
	ids := make([]string, 0, len(reports))
	for i := range reports {
		if _, ok := seen[reports[i].PropertyID]; !ok {
			seen[reports[i].PropertyID] = struct{}{}
			ids = append(ids, reports[i].PropertyID)
		}
	}

	query, args, err := sqlx.In(`SELECT * FROM properties WHERE id IN (?)`, ids)
	if err != nil {
		return persistErr("build report property query", err)
	}

	var properties []models.Property
	if err := r.db.SelectContext(ctx, &properties, r.db.Rebind(query), args...); err != nil {
		return persistErr("list report properties", err)
	}

	byID := make(map[string]*models.Property, len(properties))
	for i := range properties {
		byID[properties[i].ID] = &properties[i]
	}

	for i := range reports {
		reports[i].Property = byID[reports[i].PropertyID]
	}

	return nil
}
