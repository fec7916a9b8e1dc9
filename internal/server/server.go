package server

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/motormarket/go-mobile-sync/internal/config"
	myHTTP "github.com/motormarket/go-mobile-sync/internal/handler/http"
	"github.com/motormarket/go-mobile-sync/internal/logger"
	"github.com/motormarket/go-mobile-sync/internal/workers"
)

type server struct {
	httpServer *httpServer
	audit      *workers.AuditWriter
	logger     *logger.Logger
}

// NewServer builds the HTTP transport from the handler's routes. The audit
// writer is owned here too so shutdown can drain its queue after the last
// request has been served.
func NewServer(handler *myHTTP.Handler, cfg config.Server, audit *workers.AuditWriter, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if cfg.HTTPAddress == "" {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handler.Init(), cfg, logger),
		audit:      audit,
		logger:     logger,
	}, nil
}

func (s *server) RunServer() {
	s.run()
}

func (s *server) Shutdown() {
	s.httpServer.Shutdown()

	// Drain the audit queue only after in-flight sync calls have finished
	// enqueueing their entries.
	if s.audit != nil {
		s.audit.Shutdown()
	}
}

func (s *server) run() {
	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Msg("Launching HTTP server")
	go s.httpServer.RunServer()

	<-idleConnectionsClosed
	s.logger.Info().Msg("server Shutdown gracefully")
}
