package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"crossbow_store_backend/platform/apperr"
)

const (
	productNotFoundMessage = "product not found"

	pgUniqueViolation = "23505"
)

// Repo implements the catalog repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new catalog repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// CreateProduct creates a product.
func (r *Repo) CreateProduct(ctx context.Context, params CreateProductParams) (Product, error) {
	metadata, err := marshalMetadata(params.Metadata)
	if err != nil {
		return Product{}, fmt.Errorf("create product: %w", err)
	}

	query := `
		INSERT INTO products (title, handle, description, status, metadata)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, title, handle, description, status, metadata, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		params.Title, params.Handle, params.Description, params.Status, metadata)
	product, err := scanProduct(row)
	if err != nil {
		if isUniqueViolation(err) {
			return Product{}, apperr.Conflict("product handle already exists")
		}
		return Product{}, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// UpdateProduct updates a product. Nil params keep current values.
func (r *Repo) UpdateProduct(ctx context.Context, params UpdateProductParams) (Product, error) {
	metadata, err := marshalMetadata(params.Metadata)
	if err != nil {
		return Product{}, fmt.Errorf("update product: %w", err)
	}

	query := `
		UPDATE products
		SET title = COALESCE($2, title),
			handle = COALESCE($3, handle),
			description = COALESCE($4, description),
			status = COALESCE($5, status),
			metadata = COALESCE($6, metadata),
			updated_at = now()
		WHERE id = $1
		RETURNING id, title, handle, description, status, metadata, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		params.ID, params.Title, params.Handle, params.Description, params.Status, metadata)
	product, err := scanProduct(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// GetProductByID retrieves a product by id.
func (r *Repo) GetProductByID(ctx context.Context, id uuid.UUID) (Product, error) {
	query := `
		SELECT id, title, handle, description, status, metadata, created_at, updated_at
		FROM products
		WHERE id = $1`

	product, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, apperr.NotFound(productNotFoundMessage)
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// ListProducts retrieves products with optional brand and text filters.
func (r *Repo) ListProducts(ctx context.Context, params ListProductsParams) ([]Product, int, error) {
	conditions := []string{"1=1"}
	args := []any{}

	if params.BrandID != "" {
		args = append(args, params.BrandID)
		conditions = append(conditions, fmt.Sprintf("metadata->>'brandId' = $%d", len(args)))
	}
	if params.Search != "" {
		args = append(args, "%"+strings.ToLower(params.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(lower(title) LIKE $%d OR lower(handle) LIKE $%d)", len(args), len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := "SELECT count(*) FROM products WHERE " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	listQuery := fmt.Sprintf(`
		SELECT id, title, handle, description, status, metadata, created_at, updated_at
		FROM products
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, total, rows.Err()
}

// CreateVariant creates a product variant.
func (r *Repo) CreateVariant(ctx context.Context, params CreateVariantParams) (Variant, error) {
	query := `
		INSERT INTO product_variants (product_id, title, sku)
		VALUES ($1, $2, $3)
		RETURNING id, product_id, title, sku, created_at, updated_at`

	variant, err := scanVariant(r.pool.QueryRow(ctx, query, params.ProductID, params.Title, params.SKU))
	if err != nil {
		if isUniqueViolation(err) {
			return Variant{}, apperr.Conflict("variant sku already exists")
		}
		return Variant{}, fmt.Errorf("create variant: %w", err)
	}
	return variant, nil
}

// ListVariantsByProduct retrieves all variants of a product.
func (r *Repo) ListVariantsByProduct(ctx context.Context, productID uuid.UUID) ([]Variant, error) {
	query := `
		SELECT id, product_id, title, sku, created_at, updated_at
		FROM product_variants
		WHERE product_id = $1
		ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list variants: %w", err)
	}
	defer rows.Close()

	var variants []Variant
	for rows.Next() {
		variant, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		variants = append(variants, variant)
	}
	return variants, rows.Err()
}

// ListVariantIDPage returns a keyset page of variant ids ordered by id.
func (r *Repo) ListVariantIDPage(ctx context.Context, afterID *uuid.UUID, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM product_variants
		WHERE ($1::uuid IS NULL OR id > $1)
		ORDER BY id ASC
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("list variant ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan variant id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetVariantPriceState reports whether the variant exists, whether any price
// is reachable from it, and which price set is linked, in one round trip.
// A missing variant is reported through Exists, not as an error.
func (r *Repo) GetVariantPriceState(ctx context.Context, variantID uuid.UUID) (VariantPriceState, error) {
	query := `
		SELECT
			l.price_set_id,
			EXISTS (
				SELECT 1
				FROM variant_price_set_links vl
				JOIN prices p ON p.price_set_id = vl.price_set_id
				WHERE vl.variant_id = v.id
			) AS has_prices
		FROM product_variants v
		LEFT JOIN variant_price_set_links l ON l.variant_id = v.id
		WHERE v.id = $1`

	var state VariantPriceState
	err := r.pool.QueryRow(ctx, query, variantID).Scan(&state.LinkedPriceSetID, &state.HasPrices)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VariantPriceState{}, nil
		}
		return VariantPriceState{}, fmt.Errorf("get variant price state: %w", err)
	}

	state.Exists = true
	return state, nil
}

// CreatePriceSet creates an empty price set and returns its id.
func (r *Repo) CreatePriceSet(ctx context.Context) (uuid.UUID, error) {
	var id uuid.UUID
	if err := r.pool.QueryRow(ctx, `INSERT INTO price_sets DEFAULT VALUES RETURNING id`).Scan(&id); err != nil {
		return uuid.Nil, fmt.Errorf("create price set: %w", err)
	}
	return id, nil
}

// DeletePriceSet removes a price set and its prices (cascade).
func (r *Repo) DeletePriceSet(ctx context.Context, priceSetID uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM price_sets WHERE id = $1`, priceSetID); err != nil {
		return fmt.Errorf("delete price set: %w", err)
	}
	return nil
}

// CreateVariantPriceSetLink creates the variant-to-price-set association.
// The UNIQUE constraint on variant_id is the serialization point under
// concurrent reconciliation; its violation surfaces as apperr.KindConflict.
func (r *Repo) CreateVariantPriceSetLink(ctx context.Context, variantID, priceSetID uuid.UUID) error {
	query := `INSERT INTO variant_price_set_links (variant_id, price_set_id) VALUES ($1, $2)`
	if _, err := r.pool.Exec(ctx, query, variantID, priceSetID); err != nil {
		if isUniqueViolation(err) {
			return apperr.Conflict("variant already has a linked price set")
		}
		return fmt.Errorf("create variant price set link: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (Product, error) {
	var product Product
	var metadata []byte
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&product.ID, &product.Title, &product.Handle, &product.Description,
		&product.Status, &metadata, &createdAt, &updatedAt,
	); err != nil {
		return Product{}, err
	}

	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &product.Metadata); err != nil {
			return Product{}, fmt.Errorf("decode product metadata: %w", err)
		}
	}

	product.CreatedAt = createdAt.Format(time.RFC3339)
	product.UpdatedAt = updatedAt.Format(time.RFC3339)
	return product, nil
}

func scanVariant(row rowScanner) (Variant, error) {
	var variant Variant
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&variant.ID, &variant.ProductID, &variant.Title, &variant.SKU,
		&createdAt, &updatedAt,
	); err != nil {
		return Variant{}, err
	}

	variant.CreatedAt = createdAt.Format(time.RFC3339)
	variant.UpdatedAt = updatedAt.Format(time.RFC3339)
	return variant, nil
}

func marshalMetadata(metadata map[string]any) ([]byte, error) {
	if metadata == nil {
		return nil, nil
	}
	return json.Marshal(metadata)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
