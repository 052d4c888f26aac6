package repository

import (
	"context"

	"github.com/google/uuid"
)

// Product represents a catalog product. Metadata is a free-form JSONB map;
// the storefront uses the "brandId" key for brand tagging.
type Product struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Handle      string         `db:"handle"`
	Description *string        `db:"description"`
	Status      string         `db:"status"`
	Metadata    map[string]any `db:"metadata"`
	CreatedAt   string         `db:"created_at"`
	UpdatedAt   string         `db:"updated_at"`
}

// Variant represents a purchasable configuration of a product.
type Variant struct {
	ID        uuid.UUID `db:"id"`
	ProductID uuid.UUID `db:"product_id"`
	Title     string    `db:"title"`
	SKU       *string   `db:"sku"`
	CreatedAt string    `db:"created_at"`
	UpdatedAt string    `db:"updated_at"`
}

// VariantPriceState describes a variant's pricing linkage.
type VariantPriceState struct {
	Exists           bool
	HasPrices        bool
	LinkedPriceSetID *uuid.UUID
}

// CreateProductParams contains data for creating a product.
type CreateProductParams struct {
	Title       string
	Handle      string
	Description *string
	Status      string
	Metadata    map[string]any
}

// UpdateProductParams contains data for updating a product. Nil fields keep
// their current value.
type UpdateProductParams struct {
	ID          uuid.UUID
	Title       *string
	Handle      *string
	Description *string
	Status      *string
	Metadata    map[string]any
}

// CreateVariantParams contains data for creating a variant.
type CreateVariantParams struct {
	ProductID uuid.UUID
	Title     string
	SKU       *string
}

// ListProductsParams defines filters for listing products.
type ListProductsParams struct {
	BrandID string
	Search  string
	Offset  int
	Limit   int
}

// Repository defines catalog persistence operations.
type Repository interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (Product, error)
	UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error)
	GetProductByID(ctx context.Context, id uuid.UUID) (Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error)

	CreateVariant(ctx context.Context, params CreateVariantParams) (Variant, error)
	ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error)
	// ListVariantIDPage returns variant ids ordered by id, starting after the
	// given id (or from the beginning when nil). Used by the backfill command.
	ListVariantIDPage(ctx context.Context, afterID *uuid.UUID, limit int) ([]uuid.UUID, error)

	GetVariantPriceState(ctx context.Context, variantID uuid.UUID) (VariantPriceState, error)
	CreatePriceSet(ctx context.Context) (uuid.UUID, error)
	DeletePriceSet(ctx context.Context, priceSetID uuid.UUID) error
	// CreateVariantPriceSetLink creates the variant-to-price-set association.
	// A second link for the same variant violates the table's uniqueness
	// constraint and is reported as apperr.KindConflict.
	CreateVariantPriceSetLink(ctx context.Context, variantID, priceSetID uuid.UUID) error
}
