package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile, password string) error
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	GetByEmail(ctx context.Context, email string) (*models.Profile, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.Profile, error)
	UpdatePhone(ctx context.Context, id, phone string) error
	SetBlockedByEmail(ctx context.Context, email string, blocked bool) error
	UpdateRefreshToken(ctx context.Context, id, refreshToken string, expiryTime time.Time) error
	GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Profile, error)
}

type PropertyRepository interface {
	Create(ctx context.Context, property *models.Property) error
	GetByID(ctx context.Context, id string) (*models.Property, error)
	ListApproved(ctx context.Context) ([]models.Property, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error)
	ListAll(ctx context.Context, status *models.PropertyStatus) ([]models.Property, error)
	UpdateStatus(ctx context.Context, id string, status models.PropertyStatus, rejectionReason string) error
	Delete(ctx context.Context, id string) error
	CountNonRejectedByOwner(ctx context.Context, ownerID string) (int, error)
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.PropertyStatus) (int, error)
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.PropertyImage) error
	ListByPropertyID(ctx context.Context, propertyID string) ([]models.PropertyImage, error)
	DeleteByPropertyID(ctx context.Context, propertyID string) error
}

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, id string) (*models.Report, error)
	ListAll(ctx context.Context) ([]models.Report, error)
	UpdateStatus(ctx context.Context, id string, status models.ReportStatus, adminNotes string, resolvedAt *time.Time) error
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.ReportStatus) (int, error)
}

type BlocklistRepository interface {
	Create(ctx context.Context, contact *models.BlockedContact) error
	GetByID(ctx context.Context, id string) (*models.BlockedContact, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.BlockedContact, error)
	Match(ctx context.Context, email, phone string) (bool, error)
	CountAll(ctx context.Context) (int, error)
}

type ServicesRepository interface {
	CreateService(ctx context.Context, service *models.Service) error
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id string) error
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
	ListServices(ctx context.Context, activeOnly bool) ([]models.Service, error)

	CreateRequest(ctx context.Context, request *models.ServiceRequest) error
	ListRequests(ctx context.Context) ([]models.ServiceRequest, error)
	UpdateRequest(ctx context.Context, id, status, adminNotes string) error
	DeleteRequest(ctx context.Context, id string) error

	GetSponsorSettings(ctx context.Context) (*models.SponsorSettings, error)
	UpdateSponsorSettings(ctx context.Context, settings *models.SponsorSettings) error
}

type Repository struct {
	Profile   ProfileRepository
	Property  PropertyRepository
	Image     ImageRepository
	Report    ReportRepository
	Blocklist BlocklistRepository
	Services  ServicesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Profile:   NewProfileRepository(db),
		Property:  NewPropertyRepository(db),
		Image:     NewImageRepository(db),
		Report:    NewReportRepository(db),
		Blocklist: NewBlocklistRepository(db),
		Services:  NewServicesRepository(db),
	}
}

// persistErr tags a store error with the PersistenceFailure sentinel while
// keeping the driver message readable.
func persistErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, apperr.ErrPersistence, err)
}
