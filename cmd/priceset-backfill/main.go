// Command priceset-backfill walks every product variant and runs the price
// set reconciler over it, reporting a tally of outcomes. Safe to re-run: the
// reconciler is idempotent.
package main

import (
	"context"
	"sync"

	"crossbow_store_backend/internal/adapters"
	catrepo "crossbow_store_backend/internal/catalog/repository"
	"crossbow_store_backend/internal/pricing/service"
	"crossbow_store_backend/platform/config"
	"crossbow_store_backend/platform/db"
	"crossbow_store_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize   = 200
	concurrency = 8
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting price set backfill")

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	repo := catrepo.New(pool)
	rec := service.NewReconciler(
		adapters.NewPricingCatalogReader(repo),
		adapters.NewPriceSetWriter(repo),
		adapters.NewVariantPriceSetLinker(repo),
		log,
	)

	var mu sync.Mutex
	tally := map[service.Outcome]int{}
	var processed int

	var cursor *uuid.UUID
	for {
		ids, err := repo.ListVariantIDPage(ctx, cursor, batchSize)
		if err != nil {
			log.Error("failed to list variant ids", "error", err)
			break
		}
		if len(ids) == 0 {
			break
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrency)
		for _, id := range ids {
			g.Go(func() error {
				result := rec.EnsurePriceSet(gctx, id)
				mu.Lock()
				tally[result.Outcome]++
				processed++
				mu.Unlock()
				return nil
			})
		}
		// The reconciler swallows its own failures, so the group never errors.
		_ = g.Wait()

		last := ids[len(ids)-1]
		cursor = &last
	}

	log.Info("price set backfill completed",
		"processed", processed,
		"created", tally[service.OutcomeCreated],
		"skippedHasPrices", tally[service.OutcomeSkippedHasPrices],
		"skippedAlreadyLinked", tally[service.OutcomeSkippedAlreadyLinked],
		"skippedNotFound", tally[service.OutcomeSkippedNotFound],
		"failed", tally[service.OutcomeFailed],
	)
}
