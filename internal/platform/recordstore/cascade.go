package recordstore

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// ErrCascadeFailed is returned when the secondary write of a two-record
// update failed. The primary record has been restored unless the error also
// carries the compensation failure.
var ErrCascadeFailed = errors.New("recordstore: cascade failed")

// Compensate runs undo after the secondary write of a cascade failed with
// cause. When undo succeeds the result wraps cause in ErrCascadeFailed. When
// undo fails too, both errors are logged and returned joined so the partial
// write is detectable.
func Compensate(ctx context.Context, l *zap.Logger, op string, cause error, undo func(context.Context) error) error {
	failed := fmt.Errorf("%w: %s: %w", ErrCascadeFailed, op, cause)
	// The request context may already be done; the undo must still run.
	undoErr := undo(context.WithoutCancel(ctx))
	if undoErr == nil {
		return failed
	}
	if l != nil {
		l.Error("cascade compensation failed, records are inconsistent",
			zap.String("op", op),
			zap.NamedError("cause", cause),
			zap.NamedError("compensation", undoErr),
		)
	}
	return errors.Join(failed, fmt.Errorf("compensation: %w", undoErr))
}
