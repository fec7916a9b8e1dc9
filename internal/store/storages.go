package store

import "github.com/motormarket/go-mobile-sync/internal/logger"

// Storages bundles all repository implementations sharing one database
// connection.
type Storages struct {
	UserRepository     UserRepository
	SnapshotRepository SnapshotRepository
	SyncLogRepository  SyncLogRepository
	ConflictRepository ConflictRepository
}

// NewStorages wires every repository to the given connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:     NewUserRepository(db, log),
		SnapshotRepository: NewSnapshotRepository(db, log),
		SyncLogRepository:  NewSyncLogRepository(db, log),
		ConflictRepository: NewConflictRepository(db, log),
	}
}
