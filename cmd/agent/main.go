package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/motormarket/go-mobile-sync/internal/agent"
	"github.com/motormarket/go-mobile-sync/internal/config"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/utils"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewAgentLogger("sync-agent")
	cfg, err := config.GetAgentConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	gateway, err := agent.NewHTTPGatewayAdapter(cfg.Adapter, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create gateway adapter")
	}

	cache, err := agent.NewSQLiteCache(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local cache")
	}
	defer func() {
		if closeErr := cache.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing local cache")
		}
	}()

	deviceID, err := establishSession(ctx, gateway, cache, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("establish gateway session")
	}
	cfg.Job.DeviceID = deviceID

	if cfg.Storage.PendingImportFile != "" {
		imported, importErr := agent.ImportPendingChanges(ctx, cache, cfg.Storage.PendingImportFile, log)
		if importErr != nil {
			log.Warn().Err(importErr).Msg("importing spooled local edits failed")
		} else if imported > 0 {
			log.Info().Int("imported", imported).Msg("spooled local edits queued for submission")
		}
	}

	runner := agent.NewRunner(gateway, cache, cfg.Job, log)
	if err = runner.SyncOnce(ctx); err != nil {
		log.Error().Err(err).Msg("initial sync failed")
	}

	runner.Start(ctx)

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")
	runner.Stop()
}

// establishSession restores the cached bearer token when one exists,
// otherwise signs in with the configured credentials (registering the account
// on first contact) and persists the fresh session. It returns the device id
// to report on sync calls.
func establishSession(ctx context.Context, gateway agent.GatewayAdapter, cache agent.CacheStore, cfg *config.AgentConfig) (string, error) {
	token, deviceID, err := cache.Session(ctx)
	if err == nil {
		gateway.SetToken(token)
		return deviceID, nil
	}
	if !errors.Is(err, agent.ErrNoSession) {
		return "", fmt.Errorf("reading cached session: %w", err)
	}

	if cfg.Credentials.Login == "" || cfg.Credentials.Password == "" {
		return "", errors.New("no cached session and no credentials configured")
	}

	deviceID = cfg.Job.DeviceID
	if deviceID == "" {
		deviceID = utils.NewUUIDGenerator().Generate()
	}

	err = gateway.Login(ctx, cfg.Credentials.Login, cfg.Credentials.Password)
	if errors.Is(err, agent.ErrUnauthorized) || errors.Is(err, agent.ErrNotFound) {
		// The gateway reports an unknown login and a wrong password with
		// the same 401, so first contact is indistinguishable from bad
		// credentials until a registration attempt settles it.
		loginErr := err
		switch err = gateway.Register(ctx, cfg.Credentials.Login, cfg.Credentials.Password, cfg.Credentials.Login); {
		case err == nil:
		case errors.Is(err, agent.ErrConflict):
			// The account exists, so the configured password is wrong.
			return "", fmt.Errorf("signing in to gateway: %w", loginErr)
		default:
			return "", fmt.Errorf("registering with gateway: %w", err)
		}
	}
	if err != nil {
		return "", fmt.Errorf("signing in to gateway: %w", err)
	}

	if err = cache.SaveSession(ctx, gateway.Token(), deviceID); err != nil {
		return "", fmt.Errorf("persisting session: %w", err)
	}

	return deviceID, nil
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
