// Package service provides business logic for the storefront banner.
package service

import (
	"context"
	"strings"

	"crossbow_store_backend/internal/banner/repository"
	"crossbow_store_backend/internal/banner/transport"
	"crossbow_store_backend/internal/events"
	"crossbow_store_backend/platform/logger"
)

// Defaults served until an admin saves custom settings.
const (
	DefaultText            = "FREE SHIPPING ON ORDERS OVER $100 • LIMITED TIME OFFER"
	DefaultBackgroundColor = "#000000"
	DefaultTextColor       = "#FFFFFF"
)

// Service provides business logic for banner settings.
type Service struct {
	repo repository.Repository
	bus  events.Bus
	log  *logger.Logger
}

// New creates a new banner service.
func New(repo repository.Repository, bus events.Bus, log *logger.Logger) *Service {
	return &Service{repo: repo, bus: bus, log: log}
}

// GetSettings returns the current banner settings, falling back to the
// defaults when nothing has been saved yet.
func (s *Service) GetSettings(ctx context.Context) (transport.BannerResponse, error) {
	settings, err := s.repo.GetLatest(ctx)
	if err != nil {
		return transport.BannerResponse{}, err
	}
	if settings == nil {
		return transport.BannerResponse{
			Text:            DefaultText,
			BackgroundColor: DefaultBackgroundColor,
			TextColor:       DefaultTextColor,
			IsActive:        true,
		}, nil
	}

	return transport.BannerResponse{
		Text:            settings.Text,
		BackgroundColor: settings.BackgroundColor,
		TextColor:       settings.TextColor,
		IsActive:        settings.IsActive,
		UpdatedAt:       settings.UpdatedAt,
	}, nil
}

// Upsert saves the banner settings (latest write wins) and publishes a
// BannerUpdated event.
func (s *Service) Upsert(ctx context.Context, req transport.UpsertBannerRequest) (transport.BannerResponse, error) {
	background := strings.TrimSpace(req.BackgroundColor)
	if background == "" {
		background = DefaultBackgroundColor
	}
	textColor := strings.TrimSpace(req.TextColor)
	if textColor == "" {
		textColor = DefaultTextColor
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	settings, err := s.repo.Upsert(ctx, repository.CreateParams{
		Text:            strings.TrimSpace(req.Text),
		BackgroundColor: background,
		TextColor:       textColor,
		IsActive:        active,
	})
	if err != nil {
		return transport.BannerResponse{}, err
	}

	s.log.Info("banner settings updated", "active", settings.IsActive)
	s.bus.Publish(ctx, events.BannerUpdated{
		BaseEvent: events.NewBaseEvent(),
		Enabled:   settings.IsActive,
	})

	return transport.BannerResponse{
		Text:            settings.Text,
		BackgroundColor: settings.BackgroundColor,
		TextColor:       settings.TextColor,
		IsActive:        settings.IsActive,
		UpdatedAt:       settings.UpdatedAt,
	}, nil
}
