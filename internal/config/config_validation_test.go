package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/motormarket/go-mobile-sync/models"
)

func validAgentConfig() AgentConfig {
	return AgentConfig{
		Adapter: AgentAdapter{
			ServerAddress:  "http://localhost:8080",
			RequestTimeout: 5 * time.Second,
		},
		Storage: AgentStorage{
			CacheDSN: "/tmp/sync-agent.db",
		},
		Job: AgentJob{
			SyncInterval:     time.Minute,
			ConflictStrategy: string(models.ResolutionMerge),
		},
	}
}

func TestAgentConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AgentConfig)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(cfg *AgentConfig) {},
		},
		{
			name:    "missing server address",
			mutate:  func(cfg *AgentConfig) { cfg.Adapter.ServerAddress = "" },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "zero request timeout",
			mutate:  func(cfg *AgentConfig) { cfg.Adapter.RequestTimeout = 0 },
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name:    "missing cache dsn",
			mutate:  func(cfg *AgentConfig) { cfg.Storage.CacheDSN = "" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "in-memory cache rejected",
			// The watermark must survive restarts; a memory-backed cache
			// would force a full resync on every boot.
			mutate:  func(cfg *AgentConfig) { cfg.Storage.CacheDSN = ":memory:" },
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name:    "zero sync interval",
			mutate:  func(cfg *AgentConfig) { cfg.Job.SyncInterval = 0 },
			wantErr: ErrInvalidJobConfigs,
		},
		{
			name:    "unknown conflict strategy",
			mutate:  func(cfg *AgentConfig) { cfg.Job.ConflictStrategy = "newest_wins" },
			wantErr: ErrInvalidJobConfigs,
		},
		{
			name:   "explicit client_wins strategy",
			mutate: func(cfg *AgentConfig) { cfg.Job.ConflictStrategy = string(models.ResolutionClientWins) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validAgentConfig()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
