package recordstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestCompensate(t *testing.T) {
	cause := errors.New("counter write failed")
	ctx := context.Background()

	t.Run("undo succeeds", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		undone := false
		err := Compensate(ctx, zap.New(core), "apply", cause, func(context.Context) error {
			undone = true
			return nil
		})
		assert.True(t, undone)
		assert.ErrorIs(t, err, ErrCascadeFailed)
		assert.ErrorIs(t, err, cause)
		assert.Zero(t, logs.Len())
	})

	t.Run("undo fails", func(t *testing.T) {
		core, logs := observer.New(zap.ErrorLevel)
		undoErr := errors.New("delete failed")
		err := Compensate(ctx, zap.New(core), "apply", cause, func(context.Context) error { return undoErr })
		assert.ErrorIs(t, err, ErrCascadeFailed)
		assert.ErrorIs(t, err, cause)
		assert.ErrorIs(t, err, undoErr)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("cancelled request still compensates", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		err := Compensate(cctx, nil, "apply", cause, func(c context.Context) error { return c.Err() })
		assert.ErrorIs(t, err, ErrCascadeFailed)
		assert.NotErrorIs(t, err, context.Canceled)
	})
}
