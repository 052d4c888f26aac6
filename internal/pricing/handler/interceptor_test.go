package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crossbow_store_backend/platform/logger"
)

type recordingDispatcher struct {
	mu  sync.Mutex
	ids []uuid.UUID
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, variantID uuid.UUID) {
	d.mu.Lock()
	d.ids = append(d.ids, variantID)
	d.mu.Unlock()
}

func newInterceptorRouter(dispatcher Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(AutoEnsurePriceSets(dispatcher, logger.New("development")))
	return engine
}

func TestInterceptorDispatchesVariantsFromResponse(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	engine := newInterceptorRouter(dispatcher)

	variantID := uuid.New()
	engine.POST("/products", func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{
			"product": gin.H{"variants": []gin.H{{"id": variantID.String()}}},
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{}`))
	engine.ServeHTTP(rec, req)

	if len(dispatcher.ids) != 1 || dispatcher.ids[0] != variantID {
		t.Fatalf("unexpected dispatched ids: %v", dispatcher.ids)
	}
}

func TestInterceptorLeavesResponseBodyUntouched(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	engine := newInterceptorRouter(dispatcher)

	variantID := uuid.New()
	body := fmt.Sprintf(`{"variant":{"id":%q}}`, variantID)
	engine.POST("/variants", func(c *gin.Context) {
		c.Data(http.StatusCreated, "application/json", []byte(body))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/variants", strings.NewReader(`{}`))
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if rec.Body.String() != body {
		t.Fatalf("response body changed: %q", rec.Body.String())
	}
	if len(dispatcher.ids) != 1 {
		t.Fatalf("expected one dispatch, got %d", len(dispatcher.ids))
	}
}

func TestInterceptorSkipsReadRequests(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	engine := newInterceptorRouter(dispatcher)

	engine.GET("/products", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"variants": []gin.H{{"id": uuid.NewString()}},
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	engine.ServeHTTP(rec, req)

	if len(dispatcher.ids) != 0 {
		t.Fatalf("expected no dispatch on GET, got %v", dispatcher.ids)
	}
}

func TestInterceptorSkipsErrorResponses(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	engine := newInterceptorRouter(dispatcher)

	engine.POST("/products", func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"variants": []gin.H{{"id": uuid.NewString()}},
		})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(`{}`))
	engine.ServeHTTP(rec, req)

	if len(dispatcher.ids) != 0 {
		t.Fatalf("expected no dispatch on error status, got %v", dispatcher.ids)
	}
}

func TestInterceptorIgnoresBodiesWithoutVariants(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	engine := newInterceptorRouter(dispatcher)

	engine.POST("/banner", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"banner": gin.H{"text": "hello"}})
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/banner", strings.NewReader(`{}`))
	engine.ServeHTTP(rec, req)

	if len(dispatcher.ids) != 0 {
		t.Fatalf("expected no dispatch for a variant-free body, got %v", dispatcher.ids)
	}
}
