package features

import (
	"context"
	"time"

	"github.com/asaidimu/go-events"
	"github.com/asaidimu/go-multiassay/core/assay"
	"github.com/asaidimu/go-multiassay/core/filter"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FilterEventType identifies a lifecycle stage of a filter operation.
type FilterEventType string

// Emitted event types.
const (
	FilterStart   FilterEventType = "filter.start"
	FilterSuccess FilterEventType = "filter.success"
	FilterFailed  FilterEventType = "filter.failed"
)

// FilterEvent is the payload emitted around a filter operation.
type FilterEvent struct {
	Type        FilterEventType `json:"type"`
	OperationID string          `json:"operationId"`
	Assays      []string        `json:"assays"`
	NARemove    bool            `json:"naRemove"`
	Timestamp   time.Time       `json:"timestamp"`
	Duration    time.Duration   `json:"duration"`
	Error       *string         `json:"error,omitempty"`
}

// FilterCallback is invoked for every event of a subscribed type.
type FilterCallback func(ctx context.Context, event FilterEvent) error

// EventEngine wraps an Engine and emits start, success and failure events
// around every filter operation.
type EventEngine struct {
	engine *Engine
	bus    *events.TypedEventBus[FilterEvent]
}

// NewEventEngine creates an event-emitting filtering engine.
func NewEventEngine(logger *zap.Logger) (*EventEngine, error) {
	bus, err := events.NewTypedEventBus[FilterEvent](events.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return &EventEngine{engine: NewEngine(logger), bus: bus}, nil
}

// Subscribe registers a callback for one event type and returns the
// unsubscribe function.
func (e *EventEngine) Subscribe(eventType FilterEventType, callback FilterCallback) func() {
	return e.bus.Subscribe(string(eventType), callback)
}

// FilterFeatures applies the filter, emitting FilterStart before evaluation
// and FilterSuccess or FilterFailed after. Every operation carries a unique
// operation ID so subscribers can correlate start and outcome.
func (e *EventEngine) FilterFeatures(ctx context.Context, c assay.Container, flt filter.Filter, naRemove bool) (assay.Container, error) {
	opID := uuid.New().String()
	start := time.Now()
	var names []string
	if c != nil {
		names = c.Names()
	}

	e.emit(FilterEvent{
		Type:        FilterStart,
		OperationID: opID,
		Assays:      names,
		NARemove:    naRemove,
		Timestamp:   start,
	})

	result, err := e.engine.FilterFeatures(ctx, c, flt, naRemove)
	if err != nil {
		errStr := err.Error()
		e.emit(FilterEvent{
			Type:        FilterFailed,
			OperationID: opID,
			Assays:      names,
			NARemove:    naRemove,
			Timestamp:   time.Now(),
			Duration:    time.Since(start),
			Error:       &errStr,
		})
		return nil, err
	}

	e.emit(FilterEvent{
		Type:        FilterSuccess,
		OperationID: opID,
		Assays:      names,
		NARemove:    naRemove,
		Timestamp:   time.Now(),
		Duration:    time.Since(start),
	})
	return result, nil
}

func (e *EventEngine) emit(event FilterEvent) {
	if e.bus != nil {
		e.bus.Emit(string(event.Type), event)
	}
}
