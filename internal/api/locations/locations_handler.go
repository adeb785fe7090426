package locations

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-geomapper/internal/api"
	"github.com/FACorreiaa/go-geomapper/internal/types"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// GenerateLocations godoc
// @Summary      Generate map locations
// @Description  Sends the prompt to the AI backend on behalf of the browser and returns the points to draw.
// @Tags         Locations
// @Accept       json
// @Produce      json
// @Param        request body types.LocationRequest true "Prompt and route flag"
// @Success      200 {object} types.LocationResponse
// @Failure      400 {object} api.Response "Invalid Input"
// @Failure      429 {object} api.Response "Too Many Requests"
// @Failure      502 {object} api.Response "AI Backend Unavailable"
// @Router       /locations [post]
func (h *HandlerImpl) GenerateLocations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("LocationHandler").Start(r.Context(), "GenerateLocations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/locations"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateLocations"))
	l.DebugContext(ctx, "Generate locations handler invoked")

	var req types.LocationRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		l.DebugContext(ctx, "Rejecting empty prompt")
		span.RecordError(types.ErrEmptyPrompt)
		span.SetStatus(codes.Error, "Empty prompt")
		api.ErrorResponse(w, r, http.StatusBadRequest, types.ErrEmptyPrompt.Error())
		return
	}
	span.SetAttributes(attribute.Bool("is_route", req.IsRoute))

	result, err := h.service.Generate(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Location generation failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Location generation failed")
		api.ErrorResponse(w, r, http.StatusBadGateway, "Could not reach the AI service, please try again")
		return
	}

	span.SetAttributes(attribute.Int("points.count", len(result.Points)))
	span.SetStatus(codes.Ok, "Locations generated")
	api.WriteJSONResponse(w, r, http.StatusOK, types.LocationResponse{
		Points:  result.Points,
		Outcome: result.Outcome,
		Count:   len(result.Points),
	})
}
