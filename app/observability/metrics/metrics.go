package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	LocationRequestsTotal    metric.Int64Counter
	LocationDurationSeconds  metric.Float64Histogram
	LocationPointsReturned   metric.Int64Histogram
	OutOfRegionPointsTotal   metric.Int64Counter
	MalformedRecordsDropped  metric.Int64Counter
	StaleResponsesDiscarded  metric.Int64Counter
	InteractionAuditFailures metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// New creates the instruments on the given meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.LocationRequestsTotal, err = meter.Int64Counter(
		"location_requests_total",
		metric.WithDescription("Total number of location requests sent to the AI backend, by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("location_requests_total: %w", err)
	}

	m.LocationDurationSeconds, err = meter.Float64Histogram(
		"location_request_duration_seconds",
		metric.WithDescription("Round trip duration of AI location requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("location_request_duration_seconds: %w", err)
	}

	m.LocationPointsReturned, err = meter.Int64Histogram(
		"location_points_returned",
		metric.WithDescription("Number of points in each successful location result"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return nil, fmt.Errorf("location_points_returned: %w", err)
	}

	m.OutOfRegionPointsTotal, err = meter.Int64Counter(
		"location_out_of_region_points_total",
		metric.WithDescription("Points returned outside the configured region, by policy"),
		metric.WithUnit("{point}"),
	)
	if err != nil {
		return nil, fmt.Errorf("location_out_of_region_points_total: %w", err)
	}

	m.MalformedRecordsDropped, err = meter.Int64Counter(
		"location_malformed_records_total",
		metric.WithDescription("Records dropped from an AI response because a required field was missing"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("location_malformed_records_total: %w", err)
	}

	m.StaleResponsesDiscarded, err = meter.Int64Counter(
		"shell_stale_responses_discarded_total",
		metric.WithDescription("Responses dropped because a newer submission or clear superseded them"),
		metric.WithUnit("{response}"),
	)
	if err != nil {
		return nil, fmt.Errorf("shell_stale_responses_discarded_total: %w", err)
	}

	m.InteractionAuditFailures, err = meter.Int64Counter(
		"location_interaction_audit_failures_total",
		metric.WithDescription("Failed writes of the interaction audit record"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("location_interaction_audit_failures_total: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global instruments once, from the global MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("geomapper"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}

// Noop returns instruments that record nothing. Used by tests.
func Noop() *AppMetrics {
	m, err := New(noop.NewMeterProvider().Meter("noop"))
	if err != nil {
		panic(err)
	}
	return m
}
