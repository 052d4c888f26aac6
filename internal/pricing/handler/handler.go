package handler

import (
	"net/http"

	"crossbow_store_backend/internal/pricing/service"
	"crossbow_store_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Handler exposes the workflow step over HTTP for manual reconciliation.
type Handler struct {
	step *service.EnsurePriceSetStep
}

// New creates a new pricing handler.
func New(step *service.EnsurePriceSetStep) *Handler {
	return &Handler{step: step}
}

// EnsurePriceSetResponse reports the reconciliation outcome for one variant.
type EnsurePriceSetResponse struct {
	VariantID  string `json:"variantId"`
	Outcome    string `json:"outcome"`
	PriceSetID string `json:"priceSetId,omitempty"`
}

// EnsurePriceSet runs the reconciler for a single variant.
// POST /api/v1/admin/pricing/variants/:id/ensure-price-set
func (h *Handler) EnsurePriceSet(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid variant id", nil)
		return
	}

	result, _ := h.step.Run(c.Request.Context(), variantID)

	resp := EnsurePriceSetResponse{
		VariantID: variantID.String(),
		Outcome:   string(result.Outcome),
	}
	if result.Created() {
		resp.PriceSetID = result.PriceSetID.String()
	}
	httpkit.OK(c, resp)
}
