package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the banner repository.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new banner repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetLatest returns the most recently updated settings row.
func (r *Repo) GetLatest(ctx context.Context) (*Settings, error) {
	query := `
		SELECT id, text, background_color, text_color, is_active, created_at, updated_at
		FROM banners
		ORDER BY updated_at DESC
		LIMIT 1`

	settings, err := scanSettings(r.pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get banner settings: %w", err)
	}
	return &settings, nil
}

// Upsert writes the settings. The table holds at most one row; the latest
// write wins.
func (r *Repo) Upsert(ctx context.Context, params CreateParams) (Settings, error) {
	query := `
		INSERT INTO banners (id, text, background_color, text_color, is_active)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			text = EXCLUDED.text,
			background_color = EXCLUDED.background_color,
			text_color = EXCLUDED.text_color,
			is_active = EXCLUDED.is_active,
			updated_at = now()
		RETURNING id, text, background_color, text_color, is_active, created_at, updated_at`

	row := r.pool.QueryRow(ctx, query,
		params.Text, params.BackgroundColor, params.TextColor, params.IsActive)
	settings, err := scanSettings(row)
	if err != nil {
		return Settings{}, fmt.Errorf("upsert banner settings: %w", err)
	}
	return settings, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSettings(row rowScanner) (Settings, error) {
	var settings Settings
	var createdAt, updatedAt time.Time

	if err := row.Scan(
		&settings.ID, &settings.Text, &settings.BackgroundColor, &settings.TextColor,
		&settings.IsActive, &createdAt, &updatedAt,
	); err != nil {
		return Settings{}, err
	}

	settings.CreatedAt = createdAt.Format(time.RFC3339)
	settings.UpdatedAt = updatedAt.Format(time.RFC3339)
	return settings, nil
}
