package adapters

import (
	"context"

	"github.com/google/uuid"

	catrepo "crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/pricing/ports"
)

// PriceSetWriter adapts the catalog repository's price set operations for the
// pricing domain, satisfying ports.PricingService.
type PriceSetWriter struct {
	repo catrepo.Repository
}

// NewPriceSetWriter creates a new price set writer adapter.
func NewPriceSetWriter(repo catrepo.Repository) *PriceSetWriter {
	return &PriceSetWriter{repo: repo}
}

// CreateEmptyPriceSet creates a price set with no prices and returns its id.
func (a *PriceSetWriter) CreateEmptyPriceSet(ctx context.Context) (uuid.UUID, error) {
	return a.repo.CreatePriceSet(ctx)
}

// DeletePriceSet removes a price set. Used only as a compensating action.
func (a *PriceSetWriter) DeletePriceSet(ctx context.Context, priceSetID uuid.UUID) error {
	return a.repo.DeletePriceSet(ctx, priceSetID)
}

// Compile-time check that PriceSetWriter implements ports.PricingService.
var _ ports.PricingService = (*PriceSetWriter)(nil)
