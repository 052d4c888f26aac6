package brands

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apphttp "crossbow_store_backend/internal/http"
	"crossbow_store_backend/platform/httpkit"
)

// Module is the brands module implementing http.Module.
type Module struct{}

// NewModule creates the brands module.
func NewModule() *Module {
	return &Module{}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "brands"
}

// RegisterRoutes mounts brand routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Store.GET("/brands", m.listBrands)
	ctx.Store.GET("/brands/:slug", m.getBrandBySlug)

	ctx.Admin.GET("/brands", m.listBrands)
}

func (m *Module) listBrands(c *gin.Context) {
	httpkit.OK(c, gin.H{"brands": All()})
}

func (m *Module) getBrandBySlug(c *gin.Context) {
	brand, ok := BySlug(c.Param("slug"))
	if !ok {
		httpkit.Error(c, http.StatusNotFound, "brand not found", nil)
		return
	}
	httpkit.OK(c, gin.H{"brand": brand})
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
