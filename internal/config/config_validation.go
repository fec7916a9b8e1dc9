// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Motormarket

package config

import (
	"strings"

	"github.com/motormarket/go-mobile-sync/models"
)

// validate checks that the final merged [StructuredConfig] satisfies the
// invariants the server needs at startup. Zero-valued optional settings
// (audit queue size, timeouts) get defaults at the point of use instead.
func (cfg *StructuredConfig) validate() error {
	return nil
}

// validate checks agent-side invariants: the agent cannot run without a
// gateway address, a durable local cache, and a sync interval.
func (cfg *AgentConfig) validate() error {
	if cfg.Adapter.ServerAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.CacheDSN == "" || strings.Contains(cfg.Storage.CacheDSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Job.SyncInterval == 0 {
		return ErrInvalidJobConfigs
	}

	switch models.ResolutionStrategy(cfg.Job.ConflictStrategy) {
	case models.ResolutionServerWins, models.ResolutionClientWins, models.ResolutionMerge:
	default:
		return ErrInvalidJobConfigs
	}

	return nil
}
