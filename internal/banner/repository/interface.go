// Package repository provides persistence for banner settings.
package repository

import (
	"context"
)

// Settings is a stored banner settings row. A single row (id 1) holds the
// current configuration.
type Settings struct {
	ID              int
	Text            string
	BackgroundColor string
	TextColor       string
	IsActive        bool
	CreatedAt       string
	UpdatedAt       string
}

// CreateParams holds the fields for a new settings row.
type CreateParams struct {
	Text            string
	BackgroundColor string
	TextColor       string
	IsActive        bool
}

// Repository defines persistence operations for banner settings.
type Repository interface {
	// GetLatest returns the most recently updated settings row, or
	// (nil, nil) when none exists yet.
	GetLatest(ctx context.Context) (*Settings, error)
	// Upsert writes the singleton settings row, creating it on first use.
	Upsert(ctx context.Context, params CreateParams) (Settings, error)
}
