package adapters

import (
	"context"

	"github.com/google/uuid"

	catrepo "crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/pricing/ports"
)

// VariantPriceSetLinker adapts the catalog repository's link table for the
// pricing domain, satisfying ports.LinkService. The repository maps the
// UNIQUE(variant_id) violation to apperr.KindConflict, which the reconciler
// relies on to detect a concurrent winner.
type VariantPriceSetLinker struct {
	repo catrepo.Repository
}

// NewVariantPriceSetLinker creates a new link writer adapter.
func NewVariantPriceSetLinker(repo catrepo.Repository) *VariantPriceSetLinker {
	return &VariantPriceSetLinker{repo: repo}
}

// CreateVariantPriceSetLink creates the variant-to-price-set association.
func (a *VariantPriceSetLinker) CreateVariantPriceSetLink(ctx context.Context, variantID, priceSetID uuid.UUID) error {
	return a.repo.CreateVariantPriceSetLink(ctx, variantID, priceSetID)
}

// Compile-time check that VariantPriceSetLinker implements ports.LinkService.
var _ ports.LinkService = (*VariantPriceSetLinker)(nil)
