package service

import (
	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/store"
)

// Services bundles all business-logic services of the sync gateway.
type Services struct {
	AuthService     AuthService
	SyncService     SyncService
	ConflictService ConflictService
}

// NewServices wires every service to the shared storages.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:     NewAuthService(storages.UserRepository, cfg.App, logger),
		SyncService:     NewSyncService(storages.SnapshotRepository, storages.SyncLogRepository, logger),
		ConflictService: NewConflictService(storages.ConflictRepository, logger),
	}
}
