package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crossbow_store_backend/internal/banner/service"
	"crossbow_store_backend/internal/banner/transport"
	"crossbow_store_backend/platform/httpkit"
	"crossbow_store_backend/platform/validator"
)

// Handler handles HTTP requests for banner settings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new banner handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetStoreBanner returns the banner for the storefront.
// GET /api/v1/store/banner
func (h *Handler) GetStoreBanner(c *gin.Context) {
	result, err := h.svc.GetSettings(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"banner": result})
}

// GetBanner returns the banner settings for the admin dashboard.
// GET /api/v1/admin/banner
func (h *Handler) GetBanner(c *gin.Context) {
	result, err := h.svc.GetSettings(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"banner": result})
}

// UpsertBanner saves the banner settings.
// POST /api/v1/admin/banner
func (h *Handler) UpsertBanner(c *gin.Context) {
	var req transport.UpsertBannerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.svc.Upsert(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"banner": result})
}
