package adapters

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	catrepo "crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/pricing/ports"
)

// PricingCatalogReader adapts the catalog repository for the pricing domain,
// satisfying ports.CatalogService.
type PricingCatalogReader struct {
	repo catrepo.Repository
}

// NewPricingCatalogReader creates a new catalog reader adapter.
func NewPricingCatalogReader(repo catrepo.Repository) *PricingCatalogReader {
	return &PricingCatalogReader{repo: repo}
}

// GetVariantPriceState returns what the catalog knows about a variant's
// pricing. A missing variant is reported through Exists, not as an error.
func (a *PricingCatalogReader) GetVariantPriceState(ctx context.Context, variantID uuid.UUID) (ports.VariantPriceState, error) {
	state, err := a.repo.GetVariantPriceState(ctx, variantID)
	if err != nil {
		return ports.VariantPriceState{}, fmt.Errorf("pricing catalog adapter: %w", err)
	}

	return ports.VariantPriceState{
		Exists:           state.Exists,
		HasPrices:        state.HasPrices,
		LinkedPriceSetID: state.LinkedPriceSetID,
	}, nil
}

// Compile-time check that PricingCatalogReader implements ports.CatalogService.
var _ ports.CatalogService = (*PricingCatalogReader)(nil)
