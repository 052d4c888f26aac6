// Package service provides business logic for the catalog bounded context.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/catalog/transport"
	"crossbow_store_backend/internal/events"
	"crossbow_store_backend/platform/logger"
)

// Service provides business logic for the catalog.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new catalog service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// CreateProduct creates a product with its inline variants and publishes a
// ProductCreated event carrying the new variant ids.
func (s *Service) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (transport.ProductResponse, error) {
	status := req.Status
	if status == "" {
		status = "draft"
	}

	product, err := s.repo.CreateProduct(ctx, repository.CreateProductParams{
		Title:       strings.TrimSpace(req.Title),
		Handle:      strings.TrimSpace(req.Handle),
		Description: req.Description,
		Status:      status,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	variants := make([]repository.Variant, 0, len(req.Variants))
	for _, input := range req.Variants {
		variant, err := s.repo.CreateVariant(ctx, repository.CreateVariantParams{
			ProductID: product.ID,
			Title:     strings.TrimSpace(input.Title),
			SKU:       input.SKU,
		})
		if err != nil {
			return transport.ProductResponse{}, err
		}
		variants = append(variants, variant)
	}

	variantIDs := make([]uuid.UUID, len(variants))
	for i, variant := range variants {
		variantIDs[i] = variant.ID
	}

	s.log.Info("product created", "id", product.ID, "variants", len(variants))
	s.bus.Publish(ctx, events.ProductCreated{
		BaseEvent:  events.NewBaseEvent(),
		ProductID:  product.ID,
		VariantIDs: variantIDs,
	})

	return toProductResponse(product, variants), nil
}

// UpdateProduct updates a product and publishes a ProductUpdated event with
// the product's current variant ids.
func (s *Service) UpdateProduct(ctx context.Context, id uuid.UUID, req transport.UpdateProductRequest) (transport.ProductResponse, error) {
	product, err := s.repo.UpdateProduct(ctx, repository.UpdateProductParams{
		ID:          id,
		Title:       trimmed(req.Title),
		Handle:      trimmed(req.Handle),
		Description: req.Description,
		Status:      req.Status,
		Metadata:    req.Metadata,
	})
	if err != nil {
		return transport.ProductResponse{}, err
	}

	variants, err := s.repo.ListVariantsByProduct(ctx, product.ID)
	if err != nil {
		return transport.ProductResponse{}, err
	}

	variantIDs := make([]uuid.UUID, len(variants))
	for i, variant := range variants {
		variantIDs[i] = variant.ID
	}

	s.log.Info("product updated", "id", product.ID)
	s.bus.Publish(ctx, events.ProductUpdated{
		BaseEvent:  events.NewBaseEvent(),
		ProductID:  product.ID,
		VariantIDs: variantIDs,
	})

	return toProductResponse(product, variants), nil
}

// GetProductByID retrieves a product with its variants.
func (s *Service) GetProductByID(ctx context.Context, id uuid.UUID) (transport.ProductResponse, error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return transport.ProductResponse{}, err
	}

	variants, err := s.repo.ListVariantsByProduct(ctx, product.ID)
	if err != nil {
		return transport.ProductResponse{}, err
	}

	return toProductResponse(product, variants), nil
}

// ListProducts retrieves products with brand/text filtering and pagination.
func (s *Service) ListProducts(ctx context.Context, req transport.ListProductsRequest) (transport.ProductListResponse, error) {
	limit := req.Limit
	if limit < 1 {
		limit = 50
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	products, total, err := s.repo.ListProducts(ctx, repository.ListProductsParams{
		BrandID: strings.TrimSpace(req.BrandID),
		Search:  strings.TrimSpace(req.Q),
		Offset:  offset,
		Limit:   limit,
	})
	if err != nil {
		return transport.ProductListResponse{}, err
	}

	out := transport.ProductListResponse{
		Products: make([]transport.ProductResponse, 0, len(products)),
		Count:    total,
		Offset:   offset,
		Limit:    limit,
	}
	for _, product := range products {
		variants, err := s.repo.ListVariantsByProduct(ctx, product.ID)
		if err != nil {
			return transport.ProductListResponse{}, err
		}
		out.Products = append(out.Products, toProductResponse(product, variants))
	}
	return out, nil
}

// CreateVariant creates a variant on an existing product and publishes a
// VariantCreated event.
func (s *Service) CreateVariant(ctx context.Context, productID uuid.UUID, req transport.CreateVariantRequest) (transport.VariantResponse, error) {
	// Reject unknown products up front so the FK violation never surfaces.
	if _, err := s.repo.GetProductByID(ctx, productID); err != nil {
		return transport.VariantResponse{}, err
	}

	variant, err := s.repo.CreateVariant(ctx, repository.CreateVariantParams{
		ProductID: productID,
		Title:     strings.TrimSpace(req.Title),
		SKU:       req.SKU,
	})
	if err != nil {
		return transport.VariantResponse{}, err
	}

	s.log.Info("variant created", "id", variant.ID, "productId", productID)
	s.bus.Publish(ctx, events.VariantCreated{
		BaseEvent: events.NewBaseEvent(),
		ProductID: productID,
		VariantID: variant.ID,
	})

	return toVariantResponse(variant), nil
}

// ListVariants retrieves a product's variants.
func (s *Service) ListVariants(ctx context.Context, productID uuid.UUID) ([]transport.VariantResponse, error) {
	variants, err := s.repo.ListVariantsByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	out := make([]transport.VariantResponse, len(variants))
	for i, variant := range variants {
		out[i] = toVariantResponse(variant)
	}
	return out, nil
}

func toProductResponse(product repository.Product, variants []repository.Variant) transport.ProductResponse {
	resp := transport.ProductResponse{
		ID:          product.ID.String(),
		Title:       product.Title,
		Handle:      product.Handle,
		Description: product.Description,
		Status:      product.Status,
		Metadata:    product.Metadata,
		Variants:    make([]transport.VariantResponse, len(variants)),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for i, variant := range variants {
		resp.Variants[i] = toVariantResponse(variant)
	}
	return resp
}

func toVariantResponse(variant repository.Variant) transport.VariantResponse {
	return transport.VariantResponse{
		ID:        variant.ID.String(),
		ProductID: variant.ProductID.String(),
		Title:     variant.Title,
		SKU:       variant.SKU,
		CreatedAt: variant.CreatedAt,
		UpdatedAt: variant.UpdatedAt,
	}
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	out := strings.TrimSpace(*value)
	return &out
}
