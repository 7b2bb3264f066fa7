package telemetry

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/containerlens/containerlens/internal/boundaries/out"
	"github.com/containerlens/containerlens/internal/domain"
)

// InstrumentedInventory records a span and request metrics around every
// inventory call.
type InstrumentedInventory struct {
	next    out.Inventory
	metrics *Metrics
	tracer  trace.Tracer
	source  string
}

var _ out.Inventory = (*InstrumentedInventory)(nil)

// NewInstrumentedInventory wraps next. source labels the backing adapter.
func NewInstrumentedInventory(next out.Inventory, metrics *Metrics, source string) *InstrumentedInventory {
	return NewInstrumentedInventoryWithTracer(next, metrics, otel.Tracer(instrumentationName), source)
}

// NewInstrumentedInventoryWithTracer wraps next using a specific tracer.
func NewInstrumentedInventoryWithTracer(next out.Inventory, metrics *Metrics, tracer trace.Tracer, source string) *InstrumentedInventory {
	return &InstrumentedInventory{next: next, metrics: metrics, tracer: tracer, source: source}
}

func (i *InstrumentedInventory) FetchChildren(ctx context.Context, deviceID string, query domain.ChildQuery) ([]gjson.Result, error) {
	ctx, span := i.tracer.Start(ctx, "inventory.FetchChildren", trace.WithAttributes(
		attribute.String("inventory.device_id", deviceID),
		attribute.String("inventory.query", query.Predicate.Expression()),
	))
	defer span.End()

	start := time.Now()
	objects, err := i.next.FetchChildren(ctx, deviceID, query)
	i.record(ctx, span, "FetchChildren", start, err)
	if err == nil {
		span.SetAttributes(attribute.Int("inventory.results", len(objects)))
	}
	return objects, err
}

func (i *InstrumentedInventory) FetchWithParents(ctx context.Context, objectID string) (gjson.Result, error) {
	ctx, span := i.tracer.Start(ctx, "inventory.FetchWithParents", trace.WithAttributes(
		attribute.String("inventory.object_id", objectID),
	))
	defer span.End()

	start := time.Now()
	raw, err := i.next.FetchWithParents(ctx, objectID)
	i.record(ctx, span, "FetchWithParents", start, err)
	return raw, err
}

func (i *InstrumentedInventory) record(ctx context.Context, span trace.Span, operation string, start time.Time, err error) {
	attrs := metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("source", i.source),
	)

	i.metrics.InventoryRequests.Add(ctx, 1, attrs)
	i.metrics.InventoryDuration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		i.metrics.InventoryErrors.Add(ctx, 1, attrs)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}
