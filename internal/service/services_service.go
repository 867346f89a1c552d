package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/omkar-s8203/pune-home-circle/internal/apperr"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
)

// ServiceRequestInput is a customer inquiry against a catalog service.
type ServiceRequestInput struct {
	ServiceID string
	UserID    string
	Name      string
	Email     string
	Phone     string
	Address   string
	Message   string
}

// ServicesService is the auxiliary services catalog: fixed-price offerings,
// customer inquiries, and the sponsor-settings singleton. Plain CRUD.
type ServicesService interface {
	ListActive(ctx context.Context) ([]models.Service, error)
	ListAllServices(ctx context.Context, ident Identity) ([]models.Service, error)
	CreateService(ctx context.Context, ident Identity, svc *models.Service) error
	UpdateService(ctx context.Context, ident Identity, svc *models.Service) error
	DeleteService(ctx context.Context, ident Identity, id string) error

	CreateRequest(ctx context.Context, input ServiceRequestInput) (*models.ServiceRequest, error)
	ListRequests(ctx context.Context, ident Identity) ([]models.ServiceRequest, error)
	UpdateRequest(ctx context.Context, ident Identity, id, status, adminNotes string) error
	DeleteRequest(ctx context.Context, ident Identity, id string) error

	GetSponsorSettings(ctx context.Context) (*models.SponsorSettings, error)
	UpdateSponsorSettings(ctx context.Context, ident Identity, settings *models.SponsorSettings) error
}

type servicesService struct {
	repo repository.ServicesRepository
}

func NewServicesService(repo repository.ServicesRepository) ServicesService {
	return &servicesService{repo: repo}
}

func (s *servicesService) ListActive(ctx context.Context) ([]models.Service, error) {
	return s.repo.ListServices(ctx, true)
}

func (s *servicesService) ListAllServices(ctx context.Context, ident Identity) ([]models.Service, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	return s.repo.ListServices(ctx, false)
}

func (s *servicesService) CreateService(ctx context.Context, ident Identity, svc *models.Service) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	if strings.TrimSpace(svc.Title) == "" {
		return fmt.Errorf("service title is required: %w", apperr.ErrInvalidArgument)
	}
	return s.repo.CreateService(ctx, svc)
}

func (s *servicesService) UpdateService(ctx context.Context, ident Identity, svc *models.Service) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	if strings.TrimSpace(svc.Title) == "" {
		return fmt.Errorf("service title is required: %w", apperr.ErrInvalidArgument)
	}
	return s.repo.UpdateService(ctx, svc)
}

func (s *servicesService) DeleteService(ctx context.Context, ident Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return s.repo.DeleteService(ctx, id)
}

func (s *servicesService) CreateRequest(ctx context.Context, input ServiceRequestInput) (*models.ServiceRequest, error) {
	if strings.TrimSpace(input.Name) == "" ||
		strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return nil, fmt.Errorf("name, email and phone are required: %w", apperr.ErrInvalidArgument)
	}

	if _, err := s.repo.GetServiceByID(ctx, input.ServiceID); err != nil {
		return nil, err
	}

	request := &models.ServiceRequest{
		ServiceID: input.ServiceID,
		UserID:    input.UserID,
		Name:      strings.TrimSpace(input.Name),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Phone:     strings.TrimSpace(input.Phone),
		Address:   strings.TrimSpace(input.Address),
		Message:   strings.TrimSpace(input.Message),
	}

	if err := s.repo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

func (s *servicesService) ListRequests(ctx context.Context, ident Identity) ([]models.ServiceRequest, error) {
	if err := requireAdmin(ident); err != nil {
		return nil, err
	}
	return s.repo.ListRequests(ctx)
}

func (s *servicesService) UpdateRequest(ctx context.Context, ident Identity, id, status, adminNotes string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	if strings.TrimSpace(status) == "" {
		return fmt.Errorf("request status is required: %w", apperr.ErrInvalidArgument)
	}
	return s.repo.UpdateRequest(ctx, id, status, adminNotes)
}

func (s *servicesService) DeleteRequest(ctx context.Context, ident Identity, id string) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}
	return s.repo.DeleteRequest(ctx, id)
}

func (s *servicesService) GetSponsorSettings(ctx context.Context) (*models.SponsorSettings, error) {
	return s.repo.GetSponsorSettings(ctx)
}

func (s *servicesService) UpdateSponsorSettings(ctx context.Context, ident Identity, settings *models.SponsorSettings) error {
	if err := requireAdmin(ident); err != nil {
		return err
	}

	settings.UpdatedBy = ident.UserID
	return s.repo.UpdateSponsorSettings(ctx, settings)
}
