// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/bankingapp/account-service/internal/accountdelivery"
	"github.com/bankingapp/account-service/internal/accountrepo"
	"github.com/bankingapp/account-service/internal/accountservice"
	"github.com/bankingapp/account-service/internal/middleware"
	"github.com/bankingapp/account-service/internal/ownerclient"
	"github.com/bankingapp/account-service/internal/transactiondelivery"
	"github.com/bankingapp/account-service/internal/transactionrepo"
	"github.com/bankingapp/account-service/internal/transactionservice"
	"github.com/bankingapp/account-service/pkg/categorypkg"
	"github.com/bankingapp/account-service/pkg/configpkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	ownerRegistry := ownerclient.New(config.OwnerServiceAddress)

	accountService := accountservice.New(accountRepo, ownerRegistry)
	transactionService := transactionservice.New(transactionRepo, accountService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts", accountHandler.List)
	engine.GET("/accounts/:id", accountHandler.Get)
	engine.DELETE("/accounts/:id", accountHandler.Delete)
	engine.GET("/accounts/:id/transactions", transactionHandler.ListByAccount)

	engine.POST("/transactions", transactionHandler.Create)
	engine.GET("/transactions/:id", transactionHandler.Get)

	engine.POST("/transfers", transactionHandler.Transfer)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("category", categorypkg.ValidCategory)
		if err != nil {
			return nil, errors.New("cannot register category validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
