package scheduler

import (
	"context"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

type testSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c testSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c testSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c testSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c testSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(testSchedulerConfig{}); err == nil {
		t.Fatal("expected an error without a redis url")
	}
}

func TestEnqueueEnsurePriceSet(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(testSchedulerConfig{
		redisURL: "redis://" + mr.Addr(),
		queue:    "pricing",
	})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	defer func() { _ = client.Close() }()

	variantID := uuid.New()
	if err := client.EnqueueEnsurePriceSet(context.Background(), variantID); err != nil {
		t.Fatalf("enqueue failed: %v", err)
	}

	var pending bool
	for _, key := range mr.Keys() {
		if strings.Contains(key, "pricing") && strings.Contains(key, "pending") {
			pending = true
		}
	}
	if !pending {
		t.Fatalf("expected a pending task on the pricing queue, keys: %v", mr.Keys())
	}
}

func TestEnsurePriceSetPayloadRoundTrip(t *testing.T) {
	variantID := uuid.New()

	task, err := NewEnsurePriceSetTask(EnsurePriceSetPayload{VariantID: variantID.String()})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskEnsurePriceSet {
		t.Fatalf("unexpected task type: %q", task.Type())
	}

	payload, err := ParseEnsurePriceSetPayload(task)
	if err != nil {
		t.Fatalf("parse payload failed: %v", err)
	}
	if payload.VariantID != variantID.String() {
		t.Fatalf("unexpected variant id: %q", payload.VariantID)
	}
}

func TestParseEnsurePriceSetPayloadRejectsGarbage(t *testing.T) {
	task := asynq.NewTask(TaskEnsurePriceSet, []byte("not json"))
	if _, err := ParseEnsurePriceSetPayload(task); err == nil {
		t.Fatal("expected an error for an undecodable payload")
	}
}
