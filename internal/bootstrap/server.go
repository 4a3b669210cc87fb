package bootstrap

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/r-o-main/bulk-transfer-api/common"
	"github.com/r-o-main/bulk-transfer-api/common/mlog"
)

// Server represents the HTTP server of the bulk transfer service.
type Server struct {
	app           *fiber.App
	serverAddress string
	mlog.Logger
}

// ServerAddress is a convenience method to return the server address.
func (s *Server) ServerAddress() string {
	return s.serverAddress
}

// NewServer creates an instance of Server.
func NewServer(cfg *Config, app *fiber.App, logger mlog.Logger) *Server {
	serverAddress := cfg.ServerAddress
	if serverAddress == "" {
		serverAddress = ":3000"
	}

	return &Server{
		app:           app,
		serverAddress: serverAddress,
		Logger:        logger,
	}
}

// Run runs the server.
func (s *Server) Run(l *common.Launcher) error {
	defer func() {
		if err := s.Logger.Sync(); err != nil {
			s.Logger.Fatalf("Failed to sync logger: %s", err)
		}
	}()

	if err := s.app.Listen(s.ServerAddress()); err != nil {
		return errors.Wrap(err, "failed to run the server")
	}

	return nil
}
