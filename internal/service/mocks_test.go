package service

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/omkar-s8203/pune-home-circle/internal/models"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, property *models.Property) error {
	args := m.Called(ctx, property)
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*models.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListApproved(ctx context.Context) ([]models.Property, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListByOwner(ctx context.Context, ownerID string) ([]models.Property, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListAll(ctx context.Context, status *models.PropertyStatus) ([]models.Property, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Property), args.Error(1)
}

func (m *MockPropertyRepository) UpdateStatus(ctx context.Context, id string, status models.PropertyStatus, rejectionReason string) error {
	args := m.Called(ctx, id, status, rejectionReason)
	return args.Error(0)
}

func (m *MockPropertyRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPropertyRepository) CountNonRejectedByOwner(ctx context.Context, ownerID string) (int, error) {
	args := m.Called(ctx, ownerID)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPropertyRepository) CountByStatus(ctx context.Context, status models.PropertyStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockImageRepository struct {
	mock.Mock
}

func (m *MockImageRepository) Create(ctx context.Context, image *models.PropertyImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockImageRepository) ListByPropertyID(ctx context.Context, propertyID string) ([]models.PropertyImage, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PropertyImage), args.Error(1)
}

func (m *MockImageRepository) DeleteByPropertyID(ctx context.Context, propertyID string) error {
	args := m.Called(ctx, propertyID)
	return args.Error(0)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *models.Profile, password string) error {
	args := m.Called(ctx, profile, password)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) VerifyPassword(ctx context.Context, email, password string) (*models.Profile, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

func (m *MockProfileRepository) UpdatePhone(ctx context.Context, id, phone string) error {
	args := m.Called(ctx, id, phone)
	return args.Error(0)
}

func (m *MockProfileRepository) SetBlockedByEmail(ctx context.Context, email string, blocked bool) error {
	args := m.Called(ctx, email, blocked)
	return args.Error(0)
}

func (m *MockProfileRepository) UpdateRefreshToken(ctx context.Context, id, refreshToken string, expiryTime time.Time) error {
	args := m.Called(ctx, id, refreshToken, expiryTime)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByRefreshToken(ctx context.Context, refreshToken string) (*models.Profile, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profile), args.Error(1)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) ListAll(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportRepository) UpdateStatus(ctx context.Context, id string, status models.ReportStatus, adminNotes string, resolvedAt *time.Time) error {
	args := m.Called(ctx, id, status, adminNotes, resolvedAt)
	return args.Error(0)
}

func (m *MockReportRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReportRepository) CountByStatus(ctx context.Context, status models.ReportStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockBlocklistRepository struct {
	mock.Mock
}

func (m *MockBlocklistRepository) Create(ctx context.Context, contact *models.BlockedContact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockBlocklistRepository) GetByID(ctx context.Context, id string) (*models.BlockedContact, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BlockedContact), args.Error(1)
}

func (m *MockBlocklistRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlocklistRepository) ListAll(ctx context.Context) ([]models.BlockedContact, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BlockedContact), args.Error(1)
}

func (m *MockBlocklistRepository) Match(ctx context.Context, email, phone string) (bool, error) {
	args := m.Called(ctx, email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlocklistRepository) CountAll(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockObjectStore struct {
	mock.Mock
}

func (m *MockObjectStore) UploadImage(ctx context.Context, ownerID, propertyID string, seq int, fileName string, file io.Reader, size int64) (string, string, error) {
	args := m.Called(ctx, ownerID, propertyID, seq, fileName, file, size)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockObjectStore) DeleteImage(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *MockObjectStore) DeletePropertyImages(ctx context.Context, ownerID, propertyID string) error {
	args := m.Called(ctx, ownerID, propertyID)
	return args.Error(0)
}
