// Package ports defines the collaborator interfaces consumed by the pricing
// reconciler. Implementations live in the catalog bounded context and are
// wired up through internal/adapters.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// VariantPriceState describes what the catalog knows about a variant's pricing.
type VariantPriceState struct {
	// Exists reports whether the variant is present in the catalog at all.
	Exists bool
	// HasPrices reports whether at least one price is reachable from the variant.
	HasPrices bool
	// LinkedPriceSetID is the price set already linked to the variant, if any.
	LinkedPriceSetID *uuid.UUID
}

// CatalogService looks up variant price state. Absence of the variant is
// signaled through VariantPriceState.Exists, never as an error.
type CatalogService interface {
	GetVariantPriceState(ctx context.Context, variantID uuid.UUID) (VariantPriceState, error)
}

// PricingService creates and deletes price set aggregates.
type PricingService interface {
	// CreateEmptyPriceSet creates a price set with no prices and returns its id.
	CreateEmptyPriceSet(ctx context.Context) (uuid.UUID, error)
	// DeletePriceSet removes a price set. Used only as a compensating action.
	DeletePriceSet(ctx context.Context, priceSetID uuid.UUID) error
}

// LinkService creates the variant-to-price-set association. A duplicate link
// must be reported as an apperr.KindConflict error so the reconciler can
// distinguish it from infrastructure failures.
type LinkService interface {
	CreateVariantPriceSetLink(ctx context.Context, variantID, priceSetID uuid.UUID) error
}
