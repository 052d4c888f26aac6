// Package banner provides the storefront announcement banner module.
package banner

import (
	"crossbow_store_backend/internal/banner/handler"
	"crossbow_store_backend/internal/banner/repository"
	"crossbow_store_backend/internal/banner/service"
	"crossbow_store_backend/internal/events"
	apphttp "crossbow_store_backend/internal/http"
	"crossbow_store_backend/platform/logger"
	"crossbow_store_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the banner module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the banner module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "banner"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts banner routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Store.GET("/banner", m.handler.GetStoreBanner)

	ctx.Admin.GET("/banner", m.handler.GetBanner)
	ctx.Admin.POST("/banner", m.handler.UpsertBanner)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
