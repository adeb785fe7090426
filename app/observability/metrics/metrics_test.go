package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestNew_RecordsOnReader(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	m, err := New(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.LocationRequestsTotal.Add(ctx, 2, metric.WithAttributes(attribute.String("outcome", "ok")))
	m.StaleResponsesDiscarded.Add(ctx, 1)
	m.MalformedRecordsDropped.Add(ctx, 3)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := map[string]metricdata.Metrics{}
	for _, md := range rm.ScopeMetrics[0].Metrics {
		byName[md.Name] = md
	}

	requests, ok := byName["location_requests_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, requests.DataPoints, 1)
	assert.Equal(t, int64(2), requests.DataPoints[0].Value)
	outcome, _ := requests.DataPoints[0].Attributes.Value("outcome")
	assert.Equal(t, "ok", outcome.AsString())

	stale, ok := byName["shell_stale_responses_discarded_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(1), stale.DataPoints[0].Value)

	dropped, ok := byName["location_malformed_records_total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Equal(t, int64(3), dropped.DataPoints[0].Value)
}

func TestInitAppMetrics_Idempotent(t *testing.T) {
	InitAppMetrics()
	first := Get()
	InitAppMetrics()
	assert.Same(t, first, Get())
}

func TestNoop(t *testing.T) {
	m := Noop()
	require.NotNil(t, m)
	assert.NotPanics(t, func() {
		m.InteractionAuditFailures.Add(context.Background(), 1)
		m.LocationDurationSeconds.Record(context.Background(), 0.5)
	})
}
