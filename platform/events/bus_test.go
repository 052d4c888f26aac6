package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"crossbow_store_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func newTestBus() *InMemoryBus {
	return NewInMemoryBus(logger.New("development"))
}

func TestPublishSyncDeliversInOrder(t *testing.T) {
	bus := newTestBus()

	var order []int
	for i := 0; i < 3; i++ {
		bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
			order = append(order, i)
			return nil
		}))
	}

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(order) != 3 || order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("unexpected delivery order: %v", order)
	}
}

func TestPublishSyncJoinsHandlerErrors(t *testing.T) {
	bus := newTestBus()

	wantErr := errors.New("handler broke")
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return wantErr
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected joined handler error, got %v", err)
	}
}

func TestPublishDoesNotBlockOnHandlers(t *testing.T) {
	bus := newTestBus()

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		defer wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	wg.Wait()
}

func TestPublishIgnoresUnsubscribedEvents(t *testing.T) {
	bus := newTestBus()

	bus.Subscribe("other.event", HandlerFunc(func(ctx context.Context, event Event) error {
		t.Error("handler for a different event must not run")
		return nil
	}))

	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
}

func TestPublishRecoversFromHandlerPanic(t *testing.T) {
	bus := newTestBus()

	var wg sync.WaitGroup
	wg.Add(2)
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		defer wg.Done()
		panic("boom")
	}))
	bus.Subscribe("test.event", HandlerFunc(func(ctx context.Context, event Event) error {
		defer wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "test.event"})
	wg.Wait()
}
