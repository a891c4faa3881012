// Package stubserver implements the fixed HTTP contract the Docue client
// consumes, backed by in-memory storage. It exists for local development and
// end-to-end tests; the production backend is an external collaborator with
// the same contract.
package stubserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
)

// Config holds the stub's runtime settings.
type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

// New builds the Echo instance with all routes registered.
func New(cfg Config, log zerolog.Logger) (*echo.Echo, error) {
	storage, err := NewStorage(cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = echoValidator{}
	e.HTTPErrorHandler = newHTTPErrorHandler(log)

	// --- Global middleware ---
	// Each instance gets its own registry so several servers can coexist in
	// one process.
	registry := prometheus.NewRegistry()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "docue_stub",
		Registerer: registry,
	}))

	// --- Dependencies ---
	auth := &AuthHandler{storage: storage, secret: cfg.JWTSecret, ttl: cfg.TokenTTL}
	users := &UserHandler{storage: storage}
	roles := &RoleHandler{storage: storage}
	docs := &DocumentHandler{storage: storage}
	authed := requireAuth(storage, cfg.JWTSecret)

	// --- Auth routes ---
	e.POST("/users/login", auth.Login)
	e.POST("/users", auth.Signup)
	e.GET("/users/session", auth.Session, authed)

	// --- Users ---
	e.GET("/users", users.List, authed)
	e.PUT("/users/:id", users.Update, authed)
	e.DELETE("/users/:id", users.Delete, authed, requireAdmin)

	// --- Roles (mutations admin-only) ---
	e.GET("/roles", roles.List, authed)
	e.POST("/roles", roles.Create, authed, requireAdmin)
	e.PUT("/roles/:id", roles.Update, authed, requireAdmin)
	e.DELETE("/roles/:id", roles.Delete, authed, requireAdmin)

	// --- Documents ---
	e.GET("/api/documents", docs.List, authed)
	e.POST("/api/documents", docs.Create, authed)
	e.GET("/api/documents/:id", docs.Get, authed)
	e.PUT("/api/documents/:id", docs.Update, authed)
	e.DELETE("/api/documents/:id", docs.Delete, authed)

	// --- Operational routes ---
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: registry,
	}))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, nil
}
