package main

import (
	"os"

	"github.com/yigit/studentportal/internal/pkg/logger"
	"github.com/yigit/studentportal/internal/server"
)

func main() {
	srv, err := server.NewServer()
	if err != nil {
		// Details are logged by the bootstrap steps
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until a shutdown signal
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
