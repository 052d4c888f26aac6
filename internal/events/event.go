// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"crossbow_store_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Catalog Domain Events
// =============================================================================

// ProductCreated is published when a product is created, carrying the ids of
// all variants created with it. Delivery is at-least-once; downstream
// handlers (the price-set reconciler) must be idempotent.
type ProductCreated struct {
	BaseEvent
	ProductID  uuid.UUID   `json:"productId"`
	VariantIDs []uuid.UUID `json:"variantIds"`
}

func (e ProductCreated) EventName() string { return "catalog.product.created" }

// ProductUpdated is published when a product is updated. VariantIDs holds the
// product's current variant ids so late-added variants get reconciled too.
type ProductUpdated struct {
	BaseEvent
	ProductID  uuid.UUID   `json:"productId"`
	VariantIDs []uuid.UUID `json:"variantIds"`
}

func (e ProductUpdated) EventName() string { return "catalog.product.updated" }

// VariantCreated is published when a single product variant is created.
type VariantCreated struct {
	BaseEvent
	ProductID uuid.UUID `json:"productId"`
	VariantID uuid.UUID `json:"variantId"`
}

func (e VariantCreated) EventName() string { return "catalog.variant.created" }

// =============================================================================
// Banner Domain Events
// =============================================================================

// BannerUpdated is published when the storefront banner settings change.
type BannerUpdated struct {
	BaseEvent
	Enabled bool `json:"enabled"`
}

func (e BannerUpdated) EventName() string { return "banner.settings.updated" }
