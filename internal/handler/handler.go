package handlers

import (
	"github.com/go-playground/validator/v10"

	"github.com/omkar-s8203/pune-home-circle/internal/config"
	"github.com/omkar-s8203/pune-home-circle/internal/service"
)

type Handlers struct {
	Auth      service.AuthService
	Property  service.PropertyService
	Report    service.ReportService
	Blocklist service.BlocklistService
	Admin     service.AdminService
	Services  service.ServicesService
	Cfg       *config.Config
	Validate  *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config) *Handlers {
	return &Handlers{
		Auth:      services.Auth,
		Property:  services.Property,
		Report:    services.Report,
		Blocklist: services.Blocklist,
		Admin:     services.Admin,
		Services:  services.Services,
		Cfg:       cfg,
		Validate:  validator.New(),
	}
}
