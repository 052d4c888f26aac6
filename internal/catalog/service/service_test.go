package service

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/catalog/transport"
	"crossbow_store_backend/internal/events"
	"crossbow_store_backend/platform/apperr"
	"crossbow_store_backend/platform/logger"
)

type fakeRepo struct {
	products map[uuid.UUID]repository.Product
	variants map[uuid.UUID][]repository.Variant
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[uuid.UUID]repository.Product),
		variants: make(map[uuid.UUID][]repository.Variant),
	}
}

func (f *fakeRepo) CreateProduct(ctx context.Context, params repository.CreateProductParams) (repository.Product, error) {
	product := repository.Product{
		ID:       uuid.New(),
		Title:    params.Title,
		Handle:   params.Handle,
		Status:   params.Status,
		Metadata: params.Metadata,
	}
	f.products[product.ID] = product
	return product, nil
}

func (f *fakeRepo) UpdateProduct(ctx context.Context, params repository.UpdateProductParams) (repository.Product, error) {
	product, ok := f.products[params.ID]
	if !ok {
		return repository.Product{}, apperr.NotFound("product not found")
	}
	if params.Title != nil {
		product.Title = *params.Title
	}
	if params.Status != nil {
		product.Status = *params.Status
	}
	f.products[params.ID] = product
	return product, nil
}

func (f *fakeRepo) GetProductByID(ctx context.Context, id uuid.UUID) (repository.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return repository.Product{}, apperr.NotFound("product not found")
	}
	return product, nil
}

func (f *fakeRepo) ListProducts(ctx context.Context, params repository.ListProductsParams) ([]repository.Product, int, error) {
	var out []repository.Product
	for _, product := range f.products {
		out = append(out, product)
	}
	return out, len(out), nil
}

func (f *fakeRepo) CreateVariant(ctx context.Context, params repository.CreateVariantParams) (repository.Variant, error) {
	variant := repository.Variant{
		ID:        uuid.New(),
		ProductID: params.ProductID,
		Title:     params.Title,
		SKU:       params.SKU,
	}
	f.variants[params.ProductID] = append(f.variants[params.ProductID], variant)
	return variant, nil
}

func (f *fakeRepo) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]repository.Variant, error) {
	return f.variants[productID], nil
}

func (f *fakeRepo) ListVariantIDPage(ctx context.Context, afterID *uuid.UUID, limit int) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeRepo) GetVariantPriceState(ctx context.Context, variantID uuid.UUID) (repository.VariantPriceState, error) {
	return repository.VariantPriceState{}, nil
}

func (f *fakeRepo) CreatePriceSet(ctx context.Context) (uuid.UUID, error) {
	return uuid.New(), nil
}

func (f *fakeRepo) DeletePriceSet(ctx context.Context, priceSetID uuid.UUID) error {
	return nil
}

func (f *fakeRepo) CreateVariantPriceSetLink(ctx context.Context, variantID, priceSetID uuid.UUID) error {
	return nil
}

// capturingBus records synchronously published and async events for assertions.
type capturingBus struct {
	published []events.Event
}

func (b *capturingBus) Publish(ctx context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *capturingBus) PublishSync(ctx context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *capturingBus) Subscribe(eventName string, handler events.Handler) {}

func newTestService() (*Service, *fakeRepo, *capturingBus) {
	repo := newFakeRepo()
	bus := &capturingBus{}
	return New(repo, bus, logger.New("development")), repo, bus
}

func TestCreateProductPublishesVariantIDs(t *testing.T) {
	svc, _, bus := newTestService()

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Title:  "Leather Boot",
		Handle: "leather-boot",
		Variants: []transport.CreateVariantInput{
			{Title: "EU 42"},
			{Title: "EU 43"},
		},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	if len(product.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(product.Variants))
	}
	if product.Status != "draft" {
		t.Fatalf("expected default draft status, got %q", product.Status)
	}

	if len(bus.published) != 1 {
		t.Fatalf("expected one event, got %d", len(bus.published))
	}
	created, ok := bus.published[0].(events.ProductCreated)
	if !ok {
		t.Fatalf("unexpected event type: %T", bus.published[0])
	}
	if len(created.VariantIDs) != 2 {
		t.Fatalf("expected the event to carry 2 variant ids, got %d", len(created.VariantIDs))
	}
}

func TestUpdateProductPublishesCurrentVariantIDs(t *testing.T) {
	svc, _, bus := newTestService()

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Title:    "Tote Bag",
		Handle:   "tote-bag",
		Variants: []transport.CreateVariantInput{{Title: "Canvas"}},
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	productID, err := uuid.Parse(product.ID)
	if err != nil {
		t.Fatalf("bad product id: %v", err)
	}

	title := "Tote Bag XL"
	if _, err := svc.UpdateProduct(context.Background(), productID, transport.UpdateProductRequest{Title: &title}); err != nil {
		t.Fatalf("update product failed: %v", err)
	}

	updated, ok := bus.published[len(bus.published)-1].(events.ProductUpdated)
	if !ok {
		t.Fatalf("unexpected event type: %T", bus.published[len(bus.published)-1])
	}
	if len(updated.VariantIDs) != 1 {
		t.Fatalf("expected the update event to carry the current variant id, got %d", len(updated.VariantIDs))
	}
}

func TestCreateVariantPublishesEvent(t *testing.T) {
	svc, _, bus := newTestService()

	product, err := svc.CreateProduct(context.Background(), transport.CreateProductRequest{
		Title:  "Belt",
		Handle: "belt",
	})
	if err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	productID, err := uuid.Parse(product.ID)
	if err != nil {
		t.Fatalf("bad product id: %v", err)
	}

	variant, err := svc.CreateVariant(context.Background(), productID, transport.CreateVariantRequest{Title: "90cm"})
	if err != nil {
		t.Fatalf("create variant failed: %v", err)
	}

	event, ok := bus.published[len(bus.published)-1].(events.VariantCreated)
	if !ok {
		t.Fatalf("unexpected event type: %T", bus.published[len(bus.published)-1])
	}
	if event.VariantID.String() != variant.ID {
		t.Fatalf("event variant id %s does not match created variant %s", event.VariantID, variant.ID)
	}
}

func TestCreateVariantRejectsUnknownProduct(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateVariant(context.Background(), uuid.New(), transport.CreateVariantRequest{Title: "One Size"})
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected a not-found error, got %v", err)
	}
}
