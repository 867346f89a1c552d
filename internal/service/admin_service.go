package service

import (
	"context"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
)

// AdminService computes the dashboard counters by reducing over the other
// collections. The reads are independent, with no cross-read transaction;
// a snapshot may mix reads taken moments apart.
type AdminService interface {
	Stats(ctx context.Context, ident Identity) (*models.AdminStats, error)
}

type adminService struct {
	propertyRepo  repository.PropertyRepository
	reportRepo    repository.ReportRepository
	blocklistRepo repository.BlocklistRepository
}

func NewAdminService(
	propertyRepo repository.PropertyRepository,
	reportRepo repository.ReportRepository,
	blocklistRepo repository.BlocklistRepository,
) AdminService {
	return &adminService{
		propertyRepo:  propertyRepo,
		reportRepo:    reportRepo,
		blocklistRepo: blocklistRepo,
	}
}

func (s *adminService) Stats(ctx context.Context, ident Identity) (*models.AdminStats, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}

	stats := &models.AdminStats{}
	var err error

	if stats.TotalListings, err = s.propertyRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.PendingApprovals, err = s.propertyRepo.CountByStatus(ctx, models.PropertyStatusPending); err != nil {
		return nil, err
	}
	if stats.ActiveListings, err = s.propertyRepo.CountByStatus(ctx, models.PropertyStatusApproved); err != nil {
		return nil, err
	}
	if stats.TotalReports, err = s.reportRepo.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.OpenReports, err = s.reportRepo.CountByStatus(ctx, models.ReportStatusOpen); err != nil {
		return nil, err
	}
	if stats.BlockedContacts, err = s.blocklistRepo.CountAll(ctx); err != nil {
		return nil, err
	}

	return stats, nil
}
