package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/containerlens/containerlens"

// Metrics holds the inventory metric instruments.
type Metrics struct {
	InventoryRequests metric.Int64Counter
	InventoryErrors   metric.Int64Counter
	InventoryDuration metric.Float64Histogram
}

// NewMetrics creates the instruments on the global meter provider.
// OTel hands out noop instruments when no provider is configured.
func NewMetrics() (*Metrics, error) {
	return NewMetricsFromMeter(otel.Meter(instrumentationName))
}

// NewMetricsFromMeter creates the instruments on a specific meter.
func NewMetricsFromMeter(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.InventoryRequests, err = meter.Int64Counter("containerlens.inventory.requests",
		metric.WithDescription("Total inventory requests")); err != nil {
		return nil, err
	}
	if m.InventoryErrors, err = meter.Int64Counter("containerlens.inventory.errors",
		metric.WithDescription("Total failed inventory requests")); err != nil {
		return nil, err
	}
	if m.InventoryDuration, err = meter.Float64Histogram("containerlens.inventory.duration_seconds",
		metric.WithDescription("Inventory request duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10)); err != nil {
		return nil, err
	}

	return m, nil
}
