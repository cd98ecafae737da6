package features

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/asaidimu/go-multiassay/core/filter"
	"github.com/stretchr/testify/assert"
)

// eventRecorder collects emitted events; delivery may be asynchronous, so
// assertions poll with assert.Eventually.
type eventRecorder struct {
	mu     sync.Mutex
	events []FilterEvent
}

func (r *eventRecorder) record(_ context.Context, event FilterEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *eventRecorder) snapshot() []FilterEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]FilterEvent(nil), r.events...)
}

func TestEventEngine_FilterFeatures(t *testing.T) {
	ctx := context.Background()

	t.Run("Success emits start then success", func(t *testing.T) {
		e, err := NewEventEngine(nil)
		assert.NoError(t, err)

		rec := &eventRecorder{}
		defer e.Subscribe(FilterStart, rec.record)()
		defer e.Subscribe(FilterSuccess, rec.record)()

		c := testContainer(t)
		f, _ := filter.NewVariableFilter("location", "Mitochondrion", "", false)
		out, err := e.FilterFeatures(ctx, c, f, false)
		assert.NoError(t, err)
		assert.NotNil(t, out)

		assert.Eventually(t, func() bool {
			return len(rec.snapshot()) == 2
		}, time.Second, 10*time.Millisecond)

		got := rec.snapshot()
		assert.Equal(t, FilterStart, got[0].Type)
		assert.Equal(t, FilterSuccess, got[1].Type)
		assert.Equal(t, got[0].OperationID, got[1].OperationID, "start and outcome share an operation ID")
		assert.NotEmpty(t, got[0].OperationID)
		assert.Equal(t, []string{"proteins", "peptides", "spectra"}, got[0].Assays)
		assert.Nil(t, got[1].Error)
	})

	t.Run("Failure emits failed with the error", func(t *testing.T) {
		e, err := NewEventEngine(nil)
		assert.NoError(t, err)

		rec := &eventRecorder{}
		defer e.Subscribe(FilterFailed, rec.record)()

		c := testContainer(t)
		f, _ := filter.NewVariableFilter("location", "x", "bogus", false)
		_, err = e.FilterFeatures(ctx, c, f, false)
		assert.Error(t, err)

		assert.Eventually(t, func() bool {
			return len(rec.snapshot()) == 1
		}, time.Second, 10*time.Millisecond)

		got := rec.snapshot()
		assert.Equal(t, FilterFailed, got[0].Type)
		if assert.NotNil(t, got[0].Error) {
			assert.Contains(t, *got[0].Error, "unsupported condition")
		}
	})
}
