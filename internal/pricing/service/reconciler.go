// Package service implements the variant price-set reconciler: an idempotent
// operation guaranteeing that a product variant has exactly one linked
// (possibly empty) price set. It is invoked from three independent triggers —
// the catalog response interceptor, the lifecycle event subscriber, and the
// explicitly invocable workflow step — all of which share this single
// implementation.
package service

import (
	"context"

	"crossbow_store_backend/internal/pricing/ports"
	"crossbow_store_backend/platform/apperr"
	"crossbow_store_backend/platform/logger"

	"github.com/google/uuid"
)

// Outcome classifies the result of a reconciliation run.
type Outcome string

const (
	// OutcomeCreated means a new price set was created and linked.
	OutcomeCreated Outcome = "created"
	// OutcomeSkippedNotFound means the variant no longer exists. Racing a
	// deletion is expected and non-fatal.
	OutcomeSkippedNotFound Outcome = "skipped_not_found"
	// OutcomeSkippedHasPrices means the variant already has at least one price.
	OutcomeSkippedHasPrices Outcome = "skipped_has_prices"
	// OutcomeSkippedAlreadyLinked means a price set (possibly still empty) is
	// already linked to the variant, either from an earlier run or from a
	// concurrent one that won the link race.
	OutcomeSkippedAlreadyLinked Outcome = "skipped_already_linked"
	// OutcomeFailed means a collaborator call failed. The failure is logged
	// and swallowed; a later trigger retries the whole operation.
	OutcomeFailed Outcome = "failed"
)

// Result is the outcome of a single EnsurePriceSet run.
type Result struct {
	Outcome   Outcome
	VariantID uuid.UUID
	// PriceSetID is set only when Outcome is OutcomeCreated.
	PriceSetID uuid.UUID
}

// Created reports whether the run created and linked a new price set.
func (r Result) Created() bool { return r.Outcome == OutcomeCreated }

// Reconciler ensures variants have linked price sets. It holds no mutable
// state of its own; all state lives behind the collaborator ports, and the
// link table's uniqueness constraint is the serialization point under
// concurrent invocation.
type Reconciler struct {
	catalog ports.CatalogService
	pricing ports.PricingService
	links   ports.LinkService
	log     *logger.Logger
}

// NewReconciler creates a reconciler over the given collaborator services.
func NewReconciler(catalog ports.CatalogService, pricing ports.PricingService, links ports.LinkService, log *logger.Logger) *Reconciler {
	return &Reconciler{
		catalog: catalog,
		pricing: pricing,
		links:   links,
		log:     log,
	}
}

// EnsurePriceSet guarantees idempotently that the variant has a linked price
// set, creating an empty one if absent. It never returns an error: every
// failure is logged with the variant id and reported through the Result so
// callers' request or event pipelines are never aborted by this auxiliary
// work.
func (r *Reconciler) EnsurePriceSet(ctx context.Context, variantID uuid.UUID) Result {
	result := Result{VariantID: variantID}

	state, err := r.catalog.GetVariantPriceState(ctx, variantID)
	if err != nil {
		r.log.Error("variant price state lookup failed", "variantId", variantID, "error", err)
		result.Outcome = OutcomeFailed
		return result
	}

	if !state.Exists {
		r.log.Warn("variant not found, skipping price set reconciliation", "variantId", variantID)
		result.Outcome = OutcomeSkippedNotFound
		return result
	}

	if state.HasPrices {
		r.log.Debug("variant already has prices, skipping", "variantId", variantID)
		result.Outcome = OutcomeSkippedHasPrices
		return result
	}

	if state.LinkedPriceSetID != nil {
		r.log.Debug("variant already has a linked price set, skipping",
			"variantId", variantID, "priceSetId", *state.LinkedPriceSetID)
		result.Outcome = OutcomeSkippedAlreadyLinked
		return result
	}

	priceSetID, err := r.pricing.CreateEmptyPriceSet(ctx)
	if err != nil {
		r.log.Error("price set creation failed", "variantId", variantID, "error", err)
		result.Outcome = OutcomeFailed
		return result
	}

	if err := r.links.CreateVariantPriceSetLink(ctx, variantID, priceSetID); err != nil {
		if apperr.Is(err, apperr.KindConflict) {
			// A concurrent run linked its own price set first. Treat as
			// success, but drop the orphan this run created.
			r.log.Info("price set link already exists for variant", "variantId", variantID)
			r.compensate(ctx, variantID, priceSetID)
			result.Outcome = OutcomeSkippedAlreadyLinked
			return result
		}

		r.log.Error("price set link creation failed", "variantId", variantID, "priceSetId", priceSetID, "error", err)
		r.compensate(ctx, variantID, priceSetID)
		result.Outcome = OutcomeFailed
		return result
	}

	r.log.Info("created price set for variant", "variantId", variantID, "priceSetId", priceSetID)
	result.Outcome = OutcomeCreated
	result.PriceSetID = priceSetID
	return result
}

// compensate deletes a price set that was created but never durably linked.
// Best-effort: deletion failures are logged and swallowed.
func (r *Reconciler) compensate(ctx context.Context, variantID, priceSetID uuid.UUID) {
	if err := r.pricing.DeletePriceSet(ctx, priceSetID); err != nil {
		r.log.Warn("failed to delete orphaned price set",
			"variantId", variantID, "priceSetId", priceSetID, "error", err)
	}
}
