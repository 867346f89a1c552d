package service

import (
	"github.com/omkar-s8203/pune-home-circle/internal/config"
	"github.com/omkar-s8203/pune-home-circle/internal/models"
	"github.com/omkar-s8203/pune-home-circle/internal/repository"
	"github.com/omkar-s8203/pune-home-circle/internal/storage"
)

// Identity is the caller resolved once per request by the auth middleware
// and threaded through every operation.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

// Anonymous is the identity of an unauthenticated caller.
var Anonymous = Identity{Role: models.RoleAnonymous}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

func (i Identity) IsAuthenticated() bool {
	return i.Role != models.RoleAnonymous && i.UserID != ""
}

type Service struct {
	Auth      AuthService
	Property  PropertyService
	Report    ReportService
	Blocklist BlocklistService
	Admin     AdminService
	Services  ServicesService
}

func NewService(repo *repository.Repository, cfg *config.Config, store storage.ObjectStore) *Service {
	blocklist := NewBlocklistService(repo.Blocklist, repo.Profile)

	return &Service{
		Auth:      NewAuthService(repo.Profile, cfg),
		Property:  NewPropertyService(repo.Property, repo.Image, repo.Profile, blocklist, store, cfg),
		Report:    NewReportService(repo.Report, repo.Property),
		Blocklist: blocklist,
		Admin:     NewAdminService(repo.Property, repo.Report, repo.Blocklist),
		Services:  NewServicesService(repo.Services),
	}
}
