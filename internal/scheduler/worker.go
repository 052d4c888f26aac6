package scheduler

import (
	"context"
	"fmt"

	"crossbow_store_backend/internal/pricing/service"
	"crossbow_store_backend/platform/config"
	"crossbow_store_backend/platform/logger"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	rec    *service.Reconciler
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, rec *service.Reconciler, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		rec:    rec,
		log:    log,
	}

	mux.HandleFunc(TaskEnsurePriceSet, w.handleEnsurePriceSet)

	return w, nil
}

// handleEnsurePriceSet runs the reconciler for the variant in the task. It
// returns an error only for undecodable payloads; reconciliation outcomes,
// including failures, never trigger an asynq retry because the reconciler is
// idempotent and later catalog activity retriggers it anyway.
func (w *Worker) handleEnsurePriceSet(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseEnsurePriceSetPayload(task)
	if err != nil {
		return err
	}

	variantID, err := uuid.Parse(payload.VariantID)
	if err != nil {
		return err
	}

	result := w.rec.EnsurePriceSet(ctx, variantID)
	w.log.Debug("processed deferred price set reconciliation",
		"variantId", variantID, "outcome", string(result.Outcome))
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
