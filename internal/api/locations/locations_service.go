package locations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	appMiddleware "github.com/FACorreiaa/go-geomapper/app/middleware"
	"github.com/FACorreiaa/go-geomapper/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-geomapper/internal/api/generative_ai"
	"github.com/FACorreiaa/go-geomapper/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service turns a free-text prompt into map points through one AI round trip.
type Service interface {
	// GenerateLocations returns the points for prompt. A malformed AI payload
	// yields an empty slice and a nil error.
	GenerateLocations(ctx context.Context, prompt string, isRoute bool) ([]types.LocationPoint, error)
	// Generate is GenerateLocations plus the outcome classification.
	Generate(ctx context.Context, req types.LocationRequest) (*types.LocationResult, error)
}

// Options tune the service for a deployment.
type Options struct {
	Region        types.Region
	Temperature   float32
	OptimizeRoute bool
}

type ServiceImpl struct {
	logger   *slog.Logger
	aiClient generativeAI.ContentGenerator
	repo     Repository
	metrics  *metrics.AppMetrics
	opts     Options
	config   *genai.GenerateContentConfig
	now      func() time.Time
}

func NewServiceImpl(aiClient generativeAI.ContentGenerator, repo Repository, m *metrics.AppMetrics, opts Options, logger *slog.Logger) *ServiceImpl {
	if repo == nil {
		repo = NoopRepository{}
	}
	return &ServiceImpl{
		logger:   logger,
		aiClient: aiClient,
		repo:     repo,
		metrics:  m,
		opts:     opts,
		config:   newGenerateConfig(opts.Region, opts.Temperature),
		now:      time.Now,
	}
}

func (s *ServiceImpl) GenerateLocations(ctx context.Context, prompt string, isRoute bool) ([]types.LocationPoint, error) {
	result, err := s.Generate(ctx, types.LocationRequest{Prompt: prompt, IsRoute: isRoute})
	if err != nil {
		return nil, err
	}
	return result.Points, nil
}

func (s *ServiceImpl) Generate(ctx context.Context, req types.LocationRequest) (*types.LocationResult, error) {
	ctx, span := otel.Tracer("LocationService").Start(ctx, "Generate", trace.WithAttributes(
		attribute.Int("prompt.length", len(req.Prompt)),
		attribute.Bool("is_route", req.IsRoute),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "Generate"), slog.Bool("is_route", req.IsRoute))
	start := s.now()

	resp, err := s.aiClient.GenerateContent(ctx, buildUserPrompt(req.Prompt, req.IsRoute), s.config)
	if err != nil {
		l.ErrorContext(ctx, "AI request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI request failed")
		s.finish(ctx, req, types.OutcomeFailed, 0, start)
		return nil, fmt.Errorf("failed to generate locations: %w", err)
	}

	if resp == nil || resp.Text() == "" {
		l.ErrorContext(ctx, "AI response carried no text")
		span.RecordError(types.ErrEmptyResponse)
		span.SetStatus(codes.Error, "Empty AI response")
		s.finish(ctx, req, types.OutcomeFailed, 0, start)
		return nil, types.ErrEmptyResponse
	}
	text := resp.Text()

	raw, dropped, err := parseLocations(text)
	if dropped > 0 {
		s.metrics.MalformedRecordsDropped.Add(ctx, int64(dropped))
		l.WarnContext(ctx, "Dropped incomplete AI records", slog.Int("dropped", dropped))
	}
	if err != nil {
		l.WarnContext(ctx, "Discarding malformed AI response",
			slog.Any("error", err),
			slog.Int("response.length", len(text)))
		span.AddEvent("malformed_response")
		s.finish(ctx, req, types.OutcomeMalformed, 0, start)
		return &types.LocationResult{Points: []types.LocationPoint{}, Outcome: types.OutcomeMalformed}, nil
	}

	result := s.buildResult(ctx, l, raw, req.IsRoute, start)

	span.SetAttributes(
		attribute.Int("points.count", len(result.Points)),
		attribute.String("outcome", string(result.Outcome)),
	)
	span.SetStatus(codes.Ok, "Locations generated")
	s.finish(ctx, req, result.Outcome, len(result.Points), start)
	return result, nil
}

func (s *ServiceImpl) buildResult(ctx context.Context, l *slog.Logger, raw []types.RawLocation, isRoute bool, createdAt time.Time) *types.LocationResult {
	region := s.opts.Region
	result := &types.LocationResult{Points: make([]types.LocationPoint, 0, len(raw))}

	for _, r := range raw {
		if !region.Covers(*r.Lat, *r.Lng) {
			s.metrics.OutOfRegionPointsTotal.Add(ctx, 1, metric.WithAttributes(
				attribute.String("policy", string(region.Policy))))
			l.WarnContext(ctx, "AI returned a point outside the region",
				slog.String("name", *r.Name),
				slog.Float64("lat", *r.Lat),
				slog.Float64("lng", *r.Lng),
				slog.String("policy", string(region.Policy)))
			if region.Policy == types.RegionPolicyReject {
				result.Rejected = append(result.Rejected, r)
				continue
			}
		}
		result.Points = append(result.Points, types.LocationPoint{
			Name:        *r.Name,
			Lat:         *r.Lat,
			Lng:         *r.Lng,
			Description: *r.Description,
		})
	}

	if isRoute && s.opts.OptimizeRoute {
		ordered := nearestNeighbourOrder(result.Points)
		if routeLengthKm(ordered) < routeLengthKm(result.Points) {
			l.DebugContext(ctx, "Reordered route stops",
				slog.Float64("before_km", routeLengthKm(result.Points)),
				slog.Float64("after_km", routeLengthKm(ordered)))
			result.Points = ordered
		}
	}

	for i := range result.Points {
		result.Points[i].ID = types.NewPointID(createdAt, i)
	}

	result.Outcome = types.OutcomeOK
	if len(result.Points) == 0 {
		result.Outcome = types.OutcomeNoMatches
	}
	return result
}

// finish records metrics and the audit row. Audit failures never fail the request.
func (s *ServiceImpl) finish(ctx context.Context, req types.LocationRequest, outcome types.Outcome, count int, start time.Time) {
	elapsed := s.now().Sub(start)
	attrs := metric.WithAttributes(attribute.String("outcome", string(outcome)))
	s.metrics.LocationRequestsTotal.Add(ctx, 1, attrs)
	s.metrics.LocationDurationSeconds.Record(ctx, elapsed.Seconds(), attrs)
	if outcome == types.OutcomeOK || outcome == types.OutcomeNoMatches {
		s.metrics.LocationPointsReturned.Record(ctx, int64(count))
	}

	sessionID, _ := appMiddleware.GetSessionIDFromContext(ctx)
	interaction := types.LocationInteraction{
		SessionID:  sessionID,
		Prompt:     req.Prompt,
		PromptHash: hashPrompt(req.Prompt),
		IsRoute:    req.IsRoute,
		ModelUsed:  s.aiClient.Model(),
		Outcome:    outcome,
		PointCount: count,
		LatencyMs:  int(elapsed.Milliseconds()),
		CreatedAt:  start.UTC(),
	}
	if _, err := s.repo.SaveInteraction(context.WithoutCancel(ctx), interaction); err != nil {
		s.metrics.InteractionAuditFailures.Add(ctx, 1)
		s.logger.WarnContext(ctx, "Failed to save location interaction", slog.Any("error", err))
	}
}

