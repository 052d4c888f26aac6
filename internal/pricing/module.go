// Package pricing provides the variant price-set reconciliation bounded
// context: one reconciler, exposed through an HTTP response interceptor, a
// lifecycle event subscriber, and an explicitly invocable workflow step.
package pricing

import (
	"context"

	"crossbow_store_backend/internal/events"
	apphttp "crossbow_store_backend/internal/http"
	"crossbow_store_backend/internal/pricing/handler"
	"crossbow_store_backend/internal/pricing/ports"
	"crossbow_store_backend/internal/pricing/service"
	"crossbow_store_backend/platform/config"
	"crossbow_store_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskEnqueuer enqueues a deferred reconciliation task. Implemented by the
// scheduler client; optional.
type TaskEnqueuer interface {
	EnqueueEnsurePriceSet(ctx context.Context, variantID uuid.UUID) error
}

// Module is the pricing bounded context module implementing http.Module.
type Module struct {
	rec      *service.Reconciler
	step     *service.EnsurePriceSetStep
	handler  *handler.Handler
	cfg      config.PricingConfig
	log      *logger.Logger
	enqueuer TaskEnqueuer
}

// NewModule creates and initializes the pricing module over the collaborator
// services supplied by the catalog bounded context.
func NewModule(catalog ports.CatalogService, pricingSvc ports.PricingService, links ports.LinkService, cfg config.PricingConfig, log *logger.Logger) *Module {
	rec := service.NewReconciler(catalog, pricingSvc, links, log)
	step := service.NewEnsurePriceSetStep(rec)

	return &Module{
		rec:     rec,
		step:    step,
		handler: handler.New(step),
		cfg:     cfg,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "pricing"
}

// Reconciler returns the reconciler for external callers (worker, backfill).
func (m *Module) Reconciler() *service.Reconciler {
	return m.rec
}

// Step returns the composable workflow step for other orchestrations.
func (m *Module) Step() *service.EnsurePriceSetStep {
	return m.step
}

// SetTaskEnqueuer injects the task queue client used for fire-and-forget
// dispatch from the HTTP interceptor (breaks the scheduler dependency cycle).
func (m *Module) SetTaskEnqueuer(enqueuer TaskEnqueuer) {
	m.enqueuer = enqueuer
}

// Interceptor returns the response interception middleware for catalog write
// routes. Dispatch is inline unless async dispatch is configured and a task
// enqueuer was injected.
func (m *Module) Interceptor() gin.HandlerFunc {
	var dispatcher handler.Dispatcher = inlineDispatcher{rec: m.rec}
	if m.cfg.IsPricingAsyncDispatch() && m.enqueuer != nil {
		dispatcher = queueDispatcher{enqueuer: m.enqueuer, fallback: m.rec, log: m.log}
	}
	return handler.AutoEnsurePriceSets(dispatcher, m.log)
}

// RegisterRoutes mounts pricing routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Admin.POST("/pricing/variants/:id/ensure-price-set", m.handler.EnsurePriceSet)
}

// RegisterHandlers subscribes the reconciler to catalog lifecycle events.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	bus.Subscribe(events.VariantCreated{}.EventName(), m)
	bus.Subscribe(events.ProductCreated{}.EventName(), m)
	bus.Subscribe(events.ProductUpdated{}.EventName(), m)
}

// Handle routes events to the reconciler. It always returns nil: the
// reconciler is best-effort auxiliary work and must never fail the
// surrounding event delivery.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.VariantCreated:
		m.rec.EnsurePriceSet(ctx, e.VariantID)
	case events.ProductCreated:
		for _, variantID := range e.VariantIDs {
			m.rec.EnsurePriceSet(ctx, variantID)
		}
	case events.ProductUpdated:
		for _, variantID := range e.VariantIDs {
			m.rec.EnsurePriceSet(ctx, variantID)
		}
	}
	return nil
}

// inlineDispatcher awaits reconciliation before the interceptor returns.
type inlineDispatcher struct {
	rec *service.Reconciler
}

func (d inlineDispatcher) Dispatch(ctx context.Context, variantID uuid.UUID) {
	d.rec.EnsurePriceSet(ctx, variantID)
}

// queueDispatcher hands reconciliation to the task queue so the write request
// does not wait on it. Enqueue failures fall back to inline execution.
type queueDispatcher struct {
	enqueuer TaskEnqueuer
	fallback *service.Reconciler
	log      *logger.Logger
}

func (d queueDispatcher) Dispatch(ctx context.Context, variantID uuid.UUID) {
	if err := d.enqueuer.EnqueueEnsurePriceSet(ctx, variantID); err != nil {
		d.log.Warn("failed to enqueue price set reconciliation, running inline", "variantId", variantID, "error", err)
		d.fallback.EnsurePriceSet(ctx, variantID)
	}
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
