// Package api exposes the billing services over a REST/JSON interface built on gin.
package api

import (
	"context"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mmynk/hospital-billing/internal/auth"
	"github.com/mmynk/hospital-billing/internal/middleware"
	"github.com/mmynk/hospital-billing/internal/models"
	"github.com/mmynk/hospital-billing/internal/service"
)

// Catalog is the item catalog as seen by the handlers.
type Catalog interface {
	ListAll(ctx context.Context) ([]*models.Item, error)
	ListByCategory(ctx context.Context, category string) ([]*models.Item, error)
	Add(ctx context.Context, in service.ItemInput) (int64, error)
	Update(ctx context.Context, id int64, in service.ItemInput) error
	Delete(ctx context.Context, id int64) error
}

// Ledger is the bill ledger as seen by the handlers.
type Ledger interface {
	Save(ctx context.Context, in service.BillInput) (int64, error)
	ListRecent(ctx context.Context, limit int) ([]*models.Bill, error)
}

// Statistics computes dashboard totals.
type Statistics interface {
	Compute(ctx context.Context) (*models.Statistics, error)
}

// Status reports database reachability.
type Status interface {
	Healthy(ctx context.Context) bool
	Connection(ctx context.Context) models.ConnectionInfo
}

// Login exchanges the editor password for a token.
type Login interface {
	Login(ctx context.Context, password string) (*service.Session, error)
}

// Services bundles the handler dependencies. Auth may be nil, in which case
// editor authentication is disabled.
type Services struct {
	Catalog    Catalog
	Ledger     Ledger
	Statistics Statistics
	Status     Status
	Auth       Login
}

// Options configures the router.
type Options struct {
	AllowedOrigins []string
	Version        string

	// JWTManager guards catalog writes when non-nil.
	JWTManager *auth.JWTManager

	// Metrics, when non-nil, records requests and serves /metrics.
	Metrics *middleware.Metrics
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(services Services, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware())
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}

	corsConfig := cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(opts.AllowedOrigins) == 0 || slices.Contains(opts.AllowedOrigins, "*") {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowOrigins = nil
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	SetupRoutes(r, services, opts)
	return r
}

// SetupRoutes registers every endpoint on r.
func SetupRoutes(r *gin.Engine, services Services, opts Options) {
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	system := &systemHandler{status: services.Status, stats: services.Statistics, version: version}
	r.GET("/health", system.Health)

	api := r.Group("/api")
	api.GET("/status", system.Status)
	api.GET("/statistics", system.Statistics)

	items := &itemHandler{catalog: services.Catalog}
	api.GET("/items", items.List)
	api.GET("/items/category/:category", items.ListByCategory)

	writes := api.Group("/items")
	if opts.JWTManager != nil {
		writes.Use(middleware.RequireEditor(opts.JWTManager))
	}
	writes.POST("", items.Add)
	writes.PUT("/:id", items.Update)
	writes.DELETE("/:id", items.Delete)

	bills := &billHandler{ledger: services.Ledger}
	api.POST("/bills", bills.Save)
	api.GET("/bills", bills.List)

	login := &authHandler{auth: services.Auth}
	api.POST("/auth/login", login.Login)

	r.NoRoute(notFound)
}
