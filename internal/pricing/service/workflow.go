package service

import (
	"context"

	"github.com/google/uuid"
)

// EnsurePriceSetStep wraps the reconciler as a composable workflow step with
// explicit compensation semantics. Run returns an undo token when it created
// a price set; an orchestration rolling back calls Compensate with that token
// to delete it again.
type EnsurePriceSetStep struct {
	rec *Reconciler
}

// NewEnsurePriceSetStep creates the workflow step around a reconciler.
func NewEnsurePriceSetStep(rec *Reconciler) *EnsurePriceSetStep {
	return &EnsurePriceSetStep{rec: rec}
}

// Run executes the step. The returned undo token is nil unless a price set
// was created by this run.
func (s *EnsurePriceSetStep) Run(ctx context.Context, variantID uuid.UUID) (Result, *uuid.UUID) {
	result := s.rec.EnsurePriceSet(ctx, variantID)
	if !result.Created() {
		return result, nil
	}

	undo := result.PriceSetID
	return result, &undo
}

// Compensate undoes a previous Run, deleting the price set identified by the
// undo token. Best-effort: a nil token is a no-op and deletion failures are
// swallowed.
func (s *EnsurePriceSetStep) Compensate(ctx context.Context, undo *uuid.UUID) {
	if undo == nil {
		return
	}
	s.rec.compensate(ctx, uuid.Nil, *undo)
}
