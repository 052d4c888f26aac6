// Package catalog provides the catalog bounded context module: products,
// variants, price sets and variant-to-price-set links.
package catalog

import (
	"crossbow_store_backend/internal/catalog/handler"
	"crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/catalog/service"
	"crossbow_store_backend/internal/events"
	apphttp "crossbow_store_backend/internal/http"
	"crossbow_store_backend/platform/logger"
	"crossbow_store_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler     *handler.Handler
	service     *service.Service
	repo        repository.Repository
	interceptor gin.HandlerFunc
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// SetPriceSetInterceptor injects the pricing module's response interception
// middleware onto the catalog's admin write routes (wired in main.go to
// avoid a direct dependency on the pricing module).
func (m *Module) SetPriceSetInterceptor(interceptor gin.HandlerFunc) {
	m.interceptor = interceptor
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Store.GET("/products", m.handler.ListStoreProducts)

	adminGroup := ctx.Admin.Group("/products")
	if m.interceptor != nil {
		adminGroup.Use(m.interceptor)
	}
	adminGroup.GET("", m.handler.ListProducts)
	adminGroup.POST("", m.handler.CreateProduct)
	adminGroup.GET("/:id", m.handler.GetProductByID)
	adminGroup.PUT("/:id", m.handler.UpdateProduct)
	adminGroup.GET("/:id/variants", m.handler.ListVariants)
	adminGroup.POST("/:id/variants", m.handler.CreateVariant)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
