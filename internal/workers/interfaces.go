// Package workers provides background workers running alongside the HTTP
// server. It defines the Worker interface, a Workers aggregate that runs
// them in a unified way, and the asynchronous sync audit recorder.
package workers

//go:generate mockgen -source=interfaces.go -destination=../mock/workers_mock.go -package=mock

import "github.com/motormarket/go-mobile-sync/models"

// Worker is the interface implemented by any background worker. Run starts
// the worker; implementations are expected to spawn goroutines internally
// and return promptly.
type Worker interface {
	Run()
}

// AuditRecorder accepts sync audit entries for eventual persistence. The
// write path is fire-and-forget: Record never blocks the sync response and
// never surfaces storage errors to the caller.
type AuditRecorder interface {
	Record(entry models.SyncLogEntry)
}
