// Package server provides HTTP server setup and configuration.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/sebasr/greet-service/internal/auth"
	"github.com/sebasr/greet-service/internal/config"
	"github.com/sebasr/greet-service/internal/handlers"
	"github.com/sebasr/greet-service/internal/metrics"
	"github.com/sebasr/greet-service/internal/middleware"
)

const (
	healthPath    = "/api/v1/health"
	metricsPath   = "/metrics"
	functionsPath = "/admin/functions"
)

// Route binds a method and path to a handler behind an access level.
// The access check runs before the handler.
type Route struct {
	Name    string
	Method  string
	Path    string
	Access  middleware.AccessLevel
	Handler gin.HandlerFunc
}

// Info returns the route description served by the admin listing
func (r Route) Info() handlers.FunctionInfo {
	return handlers.FunctionInfo{
		Name:   r.Name,
		Method: r.Method,
		Path:   r.Path,
		Access: r.Access,
	}
}

// Routes returns the greeting route table
func Routes(greetings *handlers.GreetingHandler) []Route {
	return []Route{
		{
			Name:    handlers.GreetByQueryName,
			Method:  http.MethodGet,
			Path:    "/api/httpget",
			Access:  middleware.AccessAnonymous,
			Handler: greetings.GreetByQuery,
		},
		{
			Name:    handlers.GreetByBodyName,
			Method:  http.MethodPost,
			Path:    "/api/httppost",
			Access:  middleware.AccessFunction,
			Handler: greetings.GreetByBody,
		},
	}
}

// Dependencies holds all dependencies needed to create a server
type Dependencies struct {
	Config *config.Config
	Keys   *auth.KeyStore
	Logger logrus.FieldLogger
}

// New creates a new Gin router with all routes configured
func New(deps *Dependencies) *gin.Engine {
	// Release mode disables ANSI colors and debug route printing
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger, healthPath, metricsPath))
	router.Use(metrics.Handler())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Encoding", middleware.FunctionKeyHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.NewRateLimitMiddleware(deps.Config.RateLimit.Limit, deps.Config.RateLimit.Period))
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithDecompressFn(gzip.DefaultDecompressHandle)))

	access := middleware.NewAccessMiddleware(deps.Keys, deps.Logger)
	greetings := handlers.NewGreetingHandler(deps.Logger)

	routes := Routes(greetings)
	routes = append(routes, Route{
		Name:    "functions",
		Method:  http.MethodGet,
		Path:    functionsPath,
		Access:  middleware.AccessAdmin,
		Handler: handlers.NewFunctionsHandler(infos(Routes(greetings))),
	})

	for _, route := range routes {
		router.Handle(route.Method, route.Path, access.Require(route.Name, route.Access), route.Handler)
	}

	router.GET(healthPath, handlers.HealthHandler)
	if deps.Config.Metrics.Enabled {
		router.GET(metricsPath, metrics.Exposer())
	}

	deps.Logger.WithField("routes", len(routes)).Debug("routes registered")

	return router
}

func infos(routes []Route) []handlers.FunctionInfo {
	list := make([]handlers.FunctionInfo, 0, len(routes))
	for _, route := range routes {
		list = append(list, route.Info())
	}
	return list
}

// Addr returns the listen address for the configured port
func Addr(cfg *config.Config) string {
	return fmt.Sprintf(":%s", cfg.Server.Port)
}
