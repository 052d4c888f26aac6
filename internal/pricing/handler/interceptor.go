package handler

import (
	"bytes"
	"context"
	"net/http"

	"crossbow_store_backend/platform/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Dispatcher hands a variant id to the reconciler, either inline or via the
// task queue. Implementations must swallow all failures.
type Dispatcher interface {
	Dispatch(ctx context.Context, variantID uuid.UUID)
}

// bodyCapture duplicates everything written to the response into a buffer so
// the interceptor can inspect the body after the handler ran. The bytes sent
// to the client are untouched.
type bodyCapture struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCapture) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// AutoEnsurePriceSets returns middleware for catalog write routes. After the
// underlying handler produced its response, every variant id embedded in the
// response body is dispatched to the reconciler. Reconciliation outcomes
// never change the status code or body the client receives.
func AutoEnsurePriceSets(dispatcher Dispatcher, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch:
		default:
			c.Next()
			return
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture

		c.Next()

		if capture.Status() >= http.StatusBadRequest {
			return
		}

		variantIDs := ExtractVariantIDs(capture.buf.Bytes())
		if len(variantIDs) == 0 {
			return
		}

		log.Debug("dispatching price set reconciliation", "count", len(variantIDs), "path", c.Request.URL.Path)

		// The client connection closing must not cancel the reconciliation.
		ctx := context.WithoutCancel(c.Request.Context())
		for _, variantID := range variantIDs {
			dispatcher.Dispatch(ctx, variantID)
		}
	}
}
