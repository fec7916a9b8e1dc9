package config

import (
	"fmt"
	"time"

	"github.com/motormarket/go-mobile-sync/models"
)

// AgentAdapter holds network settings used by the agent transport layer.
type AgentAdapter struct {
	// ServerAddress is the gateway base URL, e.g. "http://localhost:8080".
	ServerAddress string
	// RequestTimeout is the default timeout for outbound agent requests.
	RequestTimeout time.Duration
}

// AgentStorage groups the agent's local cache settings.
type AgentStorage struct {
	// CacheDSN is the SQLite connection string of the local entity cache.
	CacheDSN string
	// PendingImportFile is an optional spool of local edits drained into
	// the cache on startup. Empty disables the import.
	PendingImportFile string
}

// AgentJob contains background sync job settings.
type AgentJob struct {
	// SyncInterval defines how often the background sync job runs.
	SyncInterval time.Duration
	// Entities lists the entity types requested on every sync call.
	Entities []string
	// DeviceID identifies this device in sync calls.
	DeviceID string
	// AppVersion is reported to the gateway on every sync call.
	AppVersion string
	// ConflictStrategy is the resolution strategy pending local edits are
	// submitted under. Defaults to merge.
	ConflictStrategy string
}

// AgentCredentials holds the gateway account the agent signs in with when no
// cached session exists.
type AgentCredentials struct {
	Login    string
	Password string
}

// AgentConfig is the top-level agent configuration assembled from
// [StructuredConfig].
type AgentConfig struct {
	// Adapter contains gateway address and timeouts.
	Adapter AgentAdapter
	// Storage contains local cache settings.
	Storage AgentStorage
	// Job contains background sync job settings.
	Job AgentJob
	// Credentials contains the gateway account for first-run sign-in.
	Credentials AgentCredentials
}

// GetAgentConfig builds and validates an agent-specific config view from the
// merged structured configuration.
//
// When no entity list is configured, the agent defaults to requesting every
// recognized entity type.
func GetAgentConfig() (*AgentConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	entities := cfg.Agent.Entities
	if len(entities) == 0 {
		entities = []string{
			string(models.EntityListings),
			string(models.EntityFavorites),
			string(models.EntityNotifications),
			string(models.EntityProfile),
			string(models.EntityDrafts),
		}
	}

	strategy := cfg.Agent.ConflictStrategy
	if strategy == "" {
		strategy = string(models.ResolutionMerge)
	}

	agentCfg := &AgentConfig{
		Adapter: AgentAdapter{
			ServerAddress:  cfg.Agent.ServerAddress,
			RequestTimeout: cfg.Agent.RequestTimeout,
		},
		Storage: AgentStorage{
			CacheDSN:          cfg.Agent.CacheDSN,
			PendingImportFile: cfg.Agent.PendingImportFile,
		},
		Job: AgentJob{
			SyncInterval:     cfg.Agent.SyncInterval,
			Entities:         entities,
			DeviceID:         cfg.Agent.DeviceID,
			AppVersion:       cfg.App.Version,
			ConflictStrategy: strategy,
		},
		Credentials: AgentCredentials{
			Login:    cfg.Agent.Login,
			Password: cfg.Agent.Password,
		},
	}

	return agentCfg, agentCfg.validate()
}
