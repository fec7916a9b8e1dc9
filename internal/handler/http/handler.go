package http

import (
	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/service"
	"github.com/motormarket/go-mobile-sync/internal/workers"
)

type Handler struct {
	services *service.Services
	audit    workers.AuditRecorder
	version  string

	logger *logger.Logger
}

func NewHandler(services *service.Services, audit workers.AuditRecorder, cfg config.App, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		audit:    audit,
		version:  cfg.Version,
		logger:   logger,
	}
}
