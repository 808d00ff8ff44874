// Package main provides the API to manage accounts and the movement of money between them.
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/bankingapp/account-service/cmd/httpserver"
	"github.com/bankingapp/account-service/internal/middleware"
	"github.com/bankingapp/account-service/pkg/configpkg"
	"github.com/bankingapp/account-service/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	server, err := httpserver.New(db, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	logger.Info().Msg("ACCOUNT SERVICE HAS STARTED")

	err = server.Engine.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}
