package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
)

// ReportService is the moderation queue. Report status moves forward only
// (open -> reviewed -> resolved, with open -> resolved allowed) and never
// touches the reported listing's own lifecycle - taking a listing down is a
// separate admin action.
type ReportService interface {
	File(ctx context.Context, propertyID, reason, reporterEmail string) (*models.Report, error)
	MarkReviewed(ctx context.Context, ident Identity, reportID string) error
	Resolve(ctx context.Context, ident Identity, reportID, adminNotes string) error
	List(ctx context.Context, ident Identity) ([]models.Report, error)
}

type reportService struct {
	reportRepo   repository.ReportRepository
	propertyRepo repository.PropertyRepository
}

func NewReportService(reportRepo repository.ReportRepository, propertyRepo repository.PropertyRepository) ReportService {
	return &reportService{
		reportRepo:   reportRepo,
		propertyRepo: propertyRepo,
	}
}

// File records a flag against a listing. Anyone may report, anonymously or
// with an email; the reason is required.
func (s *reportService) File(ctx context.Context, propertyID, reason, reporterEmail string) (*models.Report, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("a report reason is required: %w", apperr.ErrInvalidArgument)
	}

	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		return nil, err
	}

	report := &models.Report{
		PropertyID:    propertyID,
		ReporterEmail: strings.ToLower(strings.TrimSpace(reporterEmail)),
		Reason:        reason,
		Status:        models.ReportStatusOpen,
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// MarkReviewed moves an open report to reviewed. Re-marking a reviewed
// report is a no-op success so retries are safe; a resolved report cannot
// move backwards.
func (s *reportService) MarkReviewed(ctx context.Context, ident Identity, reportID string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}

	switch report.Status {
	case models.ReportStatusReviewed:
		return nil
	case models.ReportStatusResolved:
		return fmt.Errorf("report %s is already resolved: %w", reportID, apperr.ErrInvalidState)
	}

	return s.reportRepo.UpdateStatus(ctx, reportID, models.ReportStatusReviewed, report.AdminNotes, nil)
}

// Resolve closes a report from open or reviewed and stamps resolved_at.
func (s *reportService) Resolve(ctx context.Context, ident Identity, reportID, adminNotes string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return err
	}

	if report.Status == models.ReportStatusResolved {
		return fmt.Errorf("report %s is already resolved: %w", reportID, apperr.ErrInvalidState)
	}

	now := time.Now()
	return s.reportRepo.UpdateStatus(ctx, reportID, models.ReportStatusResolved, strings.TrimSpace(adminNotes), &now)
}

func (s *reportService) List(ctx context.Context, ident Identity) ([]models.Report, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}

	return s.reportRepo.ListAll(ctx)
}
