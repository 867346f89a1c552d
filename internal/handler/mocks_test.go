package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/omkar-s8203/pune-home-circle/internal/catalog"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

type MockPropertyService struct {
	mock.Mock
}

func (m *MockPropertyService) Submit(ctx context.Context, ident service.Identity, req service.SubmitRequest, files []service.ImageFile) (*service.SubmitResult, error) {
	args := m.Called(ctx, ident, req, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockPropertyService) ResumeImages(ctx context.Context, ident service.Identity, propertyID string, files []service.ImageFile) (*service.SubmitResult, error) {
	args := m.Called(ctx, ident, propertyID, files)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SubmitResult), args.Error(1)
}

func (m *MockPropertyService) Get(ctx context.Context, ident service.Identity, id string) (*models.Property, error) {
	args := m.Called(ctx, ident, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyService) ListApproved(ctx context.Context, filter catalog.Filter) ([]models.Property, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) ListMine(ctx context.Context, ident service.Identity) ([]models.Property, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) ListAll(ctx context.Context, ident service.Identity, status *models.PropertyStatus, filter catalog.Filter) ([]models.Property, error) {
	args := m.Called(ctx, ident, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyService) Approve(ctx context.Context, ident service.Identity, id string) error {
	args := m.Called(ctx, ident, id)
	return args.Error(0)
}

func (m *MockPropertyService) Reject(ctx context.Context, ident service.Identity, id, reason string) error {
	args := m.Called(ctx, ident, id, reason)
	return args.Error(0)
}

func (m *MockPropertyService) Delete(ctx context.Context, ident service.Identity, id string) error {
	args := m.Called(ctx, ident, id)
	return args.Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) File(ctx context.Context, propertyID, reason, reporterEmail string) (*models.Report, error) {
	args := m.Called(ctx, propertyID, reason, reporterEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportService) MarkReviewed(ctx context.Context, ident service.Identity, reportID string) error {
	args := m.Called(ctx, ident, reportID)
	return args.Error(0)
}

func (m *MockReportService) Resolve(ctx context.Context, ident service.Identity, reportID, adminNotes string) error {
	args := m.Called(ctx, ident, reportID, adminNotes)
	return args.Error(0)
}

func (m *MockReportService) List(ctx context.Context, ident service.Identity) ([]models.Report, error) {
	args := m.Called(ctx, ident)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}
