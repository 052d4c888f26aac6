package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"

	"crossbow_store_backend/internal/pricing/ports"
	"crossbow_store_backend/platform/apperr"
	"crossbow_store_backend/platform/logger"
)

const unexpectedOutcomeMsg = "unexpected outcome: got %q, want %q"

type fakeCatalog struct {
	state ports.VariantPriceState
	err   error
}

func (f *fakeCatalog) GetVariantPriceState(ctx context.Context, variantID uuid.UUID) (ports.VariantPriceState, error) {
	return f.state, f.err
}

type fakePricing struct {
	mu         sync.Mutex
	createdIDs []uuid.UUID
	deletedIDs []uuid.UUID
	createErr  error
	deleteErr  error
}

func (f *fakePricing) CreateEmptyPriceSet(ctx context.Context) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	id := uuid.New()
	f.mu.Lock()
	f.createdIDs = append(f.createdIDs, id)
	f.mu.Unlock()
	return id, nil
}

func (f *fakePricing) DeletePriceSet(ctx context.Context, priceSetID uuid.UUID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	f.deletedIDs = append(f.deletedIDs, priceSetID)
	f.mu.Unlock()
	return nil
}

// fakeLinks enforces the one-link-per-variant constraint like the database
// UNIQUE index does, reporting duplicates as apperr.KindConflict.
type fakeLinks struct {
	mu     sync.Mutex
	linked map[uuid.UUID]uuid.UUID
	err    error
}

func newFakeLinks() *fakeLinks {
	return &fakeLinks{linked: make(map[uuid.UUID]uuid.UUID)}
}

func (f *fakeLinks) CreateVariantPriceSetLink(ctx context.Context, variantID, priceSetID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.linked[variantID]; ok {
		return apperr.Conflict("variant already has a linked price set")
	}
	f.linked[variantID] = priceSetID
	return nil
}

func newTestReconciler(catalog ports.CatalogService, pricing ports.PricingService, links ports.LinkService) *Reconciler {
	return NewReconciler(catalog, pricing, links, logger.New("development"))
}

func TestEnsurePriceSetCreatesAndLinks(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true}}
	pricing := &fakePricing{}
	links := newFakeLinks()
	rec := newTestReconciler(catalog, pricing, links)

	variantID := uuid.New()
	result := rec.EnsurePriceSet(context.Background(), variantID)

	if result.Outcome != OutcomeCreated {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeCreated)
	}
	if result.PriceSetID == uuid.Nil {
		t.Fatal("expected a price set id on a created result")
	}
	if got := links.linked[variantID]; got != result.PriceSetID {
		t.Fatalf("linked price set mismatch: got %s, want %s", got, result.PriceSetID)
	}
	if len(pricing.createdIDs) != 1 {
		t.Fatalf("expected exactly one price set creation, got %d", len(pricing.createdIDs))
	}
}

func TestEnsurePriceSetIsIdempotent(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true}}
	pricing := &fakePricing{}
	links := newFakeLinks()
	rec := newTestReconciler(catalog, pricing, links)

	variantID := uuid.New()
	first := rec.EnsurePriceSet(context.Background(), variantID)
	if first.Outcome != OutcomeCreated {
		t.Fatalf(unexpectedOutcomeMsg, first.Outcome, OutcomeCreated)
	}

	// Second run sees the link through the state lookup and does nothing.
	linkedID := first.PriceSetID
	catalog.state = ports.VariantPriceState{Exists: true, LinkedPriceSetID: &linkedID}

	second := rec.EnsurePriceSet(context.Background(), variantID)
	if second.Outcome != OutcomeSkippedAlreadyLinked {
		t.Fatalf(unexpectedOutcomeMsg, second.Outcome, OutcomeSkippedAlreadyLinked)
	}
	if len(pricing.createdIDs) != 1 {
		t.Fatalf("expected exactly one price set creation across runs, got %d", len(pricing.createdIDs))
	}
}

func TestEnsurePriceSetSkipsMissingVariant(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: false}}
	pricing := &fakePricing{}
	rec := newTestReconciler(catalog, pricing, newFakeLinks())

	result := rec.EnsurePriceSet(context.Background(), uuid.New())

	if result.Outcome != OutcomeSkippedNotFound {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeSkippedNotFound)
	}
	if len(pricing.createdIDs) != 0 {
		t.Fatal("expected no price set creation for a missing variant")
	}
}

func TestEnsurePriceSetSkipsVariantWithPrices(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true, HasPrices: true}}
	pricing := &fakePricing{}
	rec := newTestReconciler(catalog, pricing, newFakeLinks())

	result := rec.EnsurePriceSet(context.Background(), uuid.New())

	if result.Outcome != OutcomeSkippedHasPrices {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeSkippedHasPrices)
	}
	if len(pricing.createdIDs) != 0 {
		t.Fatal("expected no price set creation when the variant has prices")
	}
}

func TestEnsurePriceSetSkipsEmptyLinkedPriceSet(t *testing.T) {
	// An already linked price set skips even when it holds no prices yet.
	linkedID := uuid.New()
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true, LinkedPriceSetID: &linkedID}}
	pricing := &fakePricing{}
	rec := newTestReconciler(catalog, pricing, newFakeLinks())

	result := rec.EnsurePriceSet(context.Background(), uuid.New())

	if result.Outcome != OutcomeSkippedAlreadyLinked {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeSkippedAlreadyLinked)
	}
	if len(pricing.createdIDs) != 0 {
		t.Fatal("expected no duplicate price set creation for a linked variant")
	}
}

func TestEnsurePriceSetSwallowsLookupFailure(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("connection refused")}
	rec := newTestReconciler(catalog, &fakePricing{}, newFakeLinks())

	result := rec.EnsurePriceSet(context.Background(), uuid.New())

	if result.Outcome != OutcomeFailed {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeFailed)
	}
}

func TestEnsurePriceSetDuplicateLinkTreatedAsSuccess(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true}}
	pricing := &fakePricing{}
	links := newFakeLinks()
	rec := newTestReconciler(catalog, pricing, links)

	// A concurrent run already linked this variant.
	variantID := uuid.New()
	winner := uuid.New()
	links.linked[variantID] = winner

	result := rec.EnsurePriceSet(context.Background(), variantID)

	if result.Outcome != OutcomeSkippedAlreadyLinked {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeSkippedAlreadyLinked)
	}
	// The loser's orphaned price set must be cleaned up.
	if len(pricing.deletedIDs) != 1 || pricing.deletedIDs[0] != pricing.createdIDs[0] {
		t.Fatalf("expected the orphaned price set to be deleted, got deletions %v", pricing.deletedIDs)
	}
	if links.linked[variantID] != winner {
		t.Fatal("expected the winning link to be untouched")
	}
}

func TestEnsurePriceSetCompensatesOnLinkFailure(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true}}
	pricing := &fakePricing{}
	links := newFakeLinks()
	links.err = errors.New("connection reset")
	rec := newTestReconciler(catalog, pricing, links)

	result := rec.EnsurePriceSet(context.Background(), uuid.New())

	if result.Outcome != OutcomeFailed {
		t.Fatalf(unexpectedOutcomeMsg, result.Outcome, OutcomeFailed)
	}
	if len(pricing.deletedIDs) != 1 {
		t.Fatalf("expected the unlinked price set to be deleted, got %d deletions", len(pricing.deletedIDs))
	}
}

func TestEnsurePriceSetConcurrentRunsLinkAtMostOnce(t *testing.T) {
	catalog := &fakeCatalog{state: ports.VariantPriceState{Exists: true}}
	pricing := &fakePricing{}
	links := newFakeLinks()
	rec := newTestReconciler(catalog, pricing, links)

	variantID := uuid.New()

	var wg sync.WaitGroup
	results := make([]Result, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = rec.EnsurePriceSet(context.Background(), variantID)
		}(i)
	}
	wg.Wait()

	var created int
	for _, result := range results {
		switch result.Outcome {
		case OutcomeCreated:
			created++
		case OutcomeSkippedAlreadyLinked:
		default:
			t.Fatalf("unexpected outcome under concurrency: %q", result.Outcome)
		}
	}
	if created != 1 {
		t.Fatalf("expected exactly one run to create, got %d", created)
	}
	if len(links.linked) != 1 {
		t.Fatalf("expected exactly one link, got %d", len(links.linked))
	}
	// Every price set except the linked one must have been compensated away.
	if len(pricing.createdIDs)-len(pricing.deletedIDs) != 1 {
		t.Fatalf("expected one surviving price set, created %d deleted %d",
			len(pricing.createdIDs), len(pricing.deletedIDs))
	}
}
