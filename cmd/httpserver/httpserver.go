// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/nwtrack/networth/internal/accountdelivery"
	"github.com/nwtrack/networth/internal/accountrepo"
	"github.com/nwtrack/networth/internal/accountservice"
	"github.com/nwtrack/networth/internal/balancedelivery"
	"github.com/nwtrack/networth/internal/balancerepo"
	"github.com/nwtrack/networth/internal/balanceservice"
	"github.com/nwtrack/networth/internal/categorydelivery"
	"github.com/nwtrack/networth/internal/categoryrepo"
	"github.com/nwtrack/networth/internal/categoryservice"
	"github.com/nwtrack/networth/internal/middleware"
	"github.com/nwtrack/networth/internal/sessiondelivery"
	"github.com/nwtrack/networth/internal/snapshotdelivery"
	"github.com/nwtrack/networth/internal/snapshotservice"
	"github.com/nwtrack/networth/pkg/configpkg"
	"github.com/nwtrack/networth/pkg/ownerpkg"
	"github.com/nwtrack/networth/pkg/tokenpkg"
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
	balanceRepo := balancerepo.NewRepoPGS(conn)
	categoryRepo := categoryrepo.NewRepoPGS(conn)

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	snapshotService := snapshotservice.New(accountRepo, balanceRepo, categoryRepo, logger)
	accountService := accountservice.New(accountRepo, snapshotService)
	balanceService := balanceservice.New(balanceRepo, snapshotService)
	categoryService := categoryservice.New(categoryRepo)

	accountHandler := accountdelivery.NewHandler(accountService)
	balanceHandler := balancedelivery.NewHandler(balanceService)
	categoryHandler := categorydelivery.NewHandler(categoryService)
	snapshotHandler := snapshotdelivery.NewHandler(snapshotService)
	sessionHandler := sessiondelivery.NewHandler(config, tokenMaker)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	if len(config.AllowedOrigins) > 0 {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = config.AllowedOrigins
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, middleware.AuthHeaderKey)
		corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
		engine.Use(cors.New(corsConfig))
	}

	engine.POST("/sessions", sessionHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker))

	authRoutes.POST("/accounts", accountHandler.Create)
	authRoutes.GET("/accounts", accountHandler.List)
	authRoutes.GET("/accounts/:id", accountHandler.Get)
	authRoutes.PATCH("/accounts/:id", accountHandler.Update)
	authRoutes.DELETE("/accounts/:id", accountHandler.Delete)

	authRoutes.PUT("/accounts/:id/balances", balanceHandler.Set)
	authRoutes.GET("/accounts/:id/balances", balanceHandler.List)
	authRoutes.DELETE("/accounts/:id/balances/:date", balanceHandler.Delete)

	authRoutes.POST("/categories", categoryHandler.Create)
	authRoutes.GET("/categories", categoryHandler.List)
	authRoutes.GET("/categories/:key", categoryHandler.Get)

	authRoutes.GET("/snapshots", snapshotHandler.List)
	authRoutes.GET("/snapshots/growth", snapshotHandler.Growth)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("owner", ownerpkg.ValidOwner); err != nil {
			return nil, errors.New("cannot register owner validator")
		}

		if err := v.RegisterValidation("kind", categorydelivery.ValidKind); err != nil {
			return nil, errors.New("cannot register kind validator")
		}
	}

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
