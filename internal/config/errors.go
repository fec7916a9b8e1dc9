package config

import "errors"

// Validation errors returned by [AgentConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidAdapterConfigs indicates invalid agent transport settings
	// (missing gateway address or request timeout).
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
	// ErrInvalidStorageConfigs indicates invalid agent cache settings
	// (empty DSN or an in-memory DSN, which would lose the watermark).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
	// ErrInvalidJobConfigs indicates invalid background sync job settings
	// (zero sync interval).
	ErrInvalidJobConfigs = errors.New("invalid sync job configuration")
)
