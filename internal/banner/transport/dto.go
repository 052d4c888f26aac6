// Package transport defines request and response DTOs for the banner module.
package transport

// UpsertBannerRequest updates the storefront announcement banner.
type UpsertBannerRequest struct {
	Text            string `json:"text" validate:"required,max=500"`
	BackgroundColor string `json:"backgroundColor" validate:"omitempty,hexcolor"`
	TextColor       string `json:"textColor" validate:"omitempty,hexcolor"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

// BannerResponse is the wire representation of the banner settings.
type BannerResponse struct {
	Text            string `json:"text"`
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	IsActive        bool   `json:"isActive"`
	UpdatedAt       string `json:"updatedAt,omitempty"`
}
