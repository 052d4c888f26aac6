// Package transport defines request and response DTOs for the catalog module.
package transport

// CreateVariantInput is a variant embedded in a product create request.
type CreateVariantInput struct {
	Title string  `json:"title" validate:"required,max=255"`
	SKU   *string `json:"sku,omitempty" validate:"omitempty,max=255"`
}

// CreateProductRequest creates a product with optional inline variants.
type CreateProductRequest struct {
	Title       string               `json:"title" validate:"required,max=255"`
	Handle      string               `json:"handle" validate:"required,max=255"`
	Description *string              `json:"description,omitempty"`
	Status      string               `json:"status" validate:"omitempty,oneof=draft published"`
	Metadata    map[string]any       `json:"metadata,omitempty"`
	Variants    []CreateVariantInput `json:"variants" validate:"dive"`
}

// UpdateProductRequest updates a product. Nil fields are left unchanged.
type UpdateProductRequest struct {
	Title       *string        `json:"title,omitempty" validate:"omitempty,max=255"`
	Handle      *string        `json:"handle,omitempty" validate:"omitempty,max=255"`
	Description *string        `json:"description,omitempty"`
	Status      *string        `json:"status,omitempty" validate:"omitempty,oneof=draft published"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// CreateVariantRequest creates a variant on an existing product.
type CreateVariantRequest struct {
	Title string  `json:"title" validate:"required,max=255"`
	SKU   *string `json:"sku,omitempty" validate:"omitempty,max=255"`
}

// ListProductsRequest filters product listings.
type ListProductsRequest struct {
	BrandID string `form:"brandId"`
	Q       string `form:"q"`
	Limit   int    `form:"limit" validate:"omitempty,min=1,max=100"`
	Offset  int    `form:"offset" validate:"omitempty,min=0"`
}

// VariantResponse is the wire representation of a variant.
type VariantResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Title     string  `json:"title"`
	SKU       *string `json:"sku,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// ProductResponse is the wire representation of a product.
type ProductResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Handle      string            `json:"handle"`
	Description *string           `json:"description,omitempty"`
	Status      string            `json:"status"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
	Variants    []VariantResponse `json:"variants"`
	CreatedAt   string            `json:"createdAt"`
	UpdatedAt   string            `json:"updatedAt"`
}

// ProductListResponse is a paginated product listing.
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Count    int               `json:"count"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
}
