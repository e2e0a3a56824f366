// Package main runs the net worth tracking API server.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/nwtrack/networth/cmd/httpserver"
	"github.com/nwtrack/networth/db"
	"github.com/nwtrack/networth/internal/middleware"
	"github.com/nwtrack/networth/pkg/configpkg"
	"github.com/nwtrack/networth/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	if err := db.RunMigrations(config.DBDriver, config.DBSource); err != nil {
		logger.Fatal().Err(err).Msg("cannot apply migrations")
	}

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("NET WORTH API SERVER HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
