package shell

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMiddleware "github.com/FACorreiaa/go-geomapper/app/middleware"
	"github.com/FACorreiaa/go-geomapper/internal/api"
	"github.com/FACorreiaa/go-geomapper/internal/mapview"
	"github.com/FACorreiaa/go-geomapper/internal/types"
	"github.com/FACorreiaa/go-geomapper/internal/views"
)

// SessionResponse is the JSON snapshot of a session together with its map view.
type SessionResponse struct {
	State State        `json:"state"`
	View  mapview.View `json:"view"`
}

type HandlerImpl struct {
	store  *Store
	region types.Region
	logger *slog.Logger
}

func NewHandlerImpl(store *Store, region types.Region, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		store:  store,
		region: region,
		logger: logger,
	}
}

func (h *HandlerImpl) session(w http.ResponseWriter, r *http.Request, l *slog.Logger) (*Session, bool) {
	sid, ok := appMiddleware.GetSessionIDFromContext(r.Context())
	if !ok {
		l.ErrorContext(r.Context(), "Session ID not found in context")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Session unavailable")
		return nil, false
	}
	return h.store.Get(sid), true
}

// Page renders the application for the current session.
func (h *HandlerImpl) Page(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ShellHandler").Start(r.Context(), "Page", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Page"))
	sess, ok := h.session(w, r, l)
	if !ok {
		return
	}

	snap := sess.Snapshot()
	data, err := views.NewPageData(snap.Prompt, snap.IsRoute, snap.Busy(), snap.Error, snap.Points,
		mapview.Build(snap.Points, snap.IsRoute, h.region))
	if err != nil {
		l.ErrorContext(ctx, "Failed to build page data", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Page data failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Could not render page")
		return
	}

	span.SetAttributes(attribute.Int("points.count", len(snap.Points)))
	templ.Handler(views.Page(data)).ServeHTTP(w, r.WithContext(ctx))
}

// Search submits the form prompt and redirects back to the page once it resolves.
func (h *HandlerImpl) Search(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ShellHandler").Start(r.Context(), "Search", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/search"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "Search"))
	r.Body = http.MaxBytesReader(w, r.Body, api.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		l.WarnContext(ctx, "Failed to parse form", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid form")
		return
	}
	sess, ok := h.session(w, r, l)
	if !ok {
		return
	}

	prompt := r.PostFormValue("prompt")
	isRoute := formBool(r, "is_route")
	if !sess.Submit(ctx, prompt, isRoute) {
		l.DebugContext(ctx, "Ignoring blank prompt")
	}

	h.respond(w, r, sess)
}

// Clear resets the session.
func (h *HandlerImpl) Clear(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Clear"))
	sess, ok := h.session(w, r, l)
	if !ok {
		return
	}
	sess.Clear()
	l.DebugContext(r.Context(), "Session cleared")
	h.respond(w, r, sess)
}

// Route switches route mode on or off without a new request.
func (h *HandlerImpl) Route(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "Route"))
	r.Body = http.MaxBytesReader(w, r.Body, api.MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid form")
		return
	}
	sess, ok := h.session(w, r, l)
	if !ok {
		return
	}
	sess.SetRoute(formBool(r, "is_route"))
	h.respond(w, r, sess)
}

// State returns the session snapshot and its map view as JSON.
func (h *HandlerImpl) State(w http.ResponseWriter, r *http.Request) {
	l := h.logger.With(slog.String("handler", "State"))
	sess, ok := h.session(w, r, l)
	if !ok {
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, h.snapshot(sess))
}

func (h *HandlerImpl) snapshot(sess *Session) SessionResponse {
	snap := sess.Snapshot()
	return SessionResponse{
		State: snap,
		View:  mapview.Build(snap.Points, snap.IsRoute, h.region),
	}
}

// respond answers scripted callers with JSON and plain form posts with a redirect.
func (h *HandlerImpl) respond(w http.ResponseWriter, r *http.Request, sess *Session) {
	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		api.WriteJSONResponse(w, r, http.StatusOK, h.snapshot(sess))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func formBool(r *http.Request, key string) bool {
	switch strings.ToLower(r.PostFormValue(key)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}
