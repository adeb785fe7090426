package shell

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/FACorreiaa/go-geomapper/app/observability/metrics"
	"github.com/FACorreiaa/go-geomapper/internal/api/locations"
	"github.com/FACorreiaa/go-geomapper/internal/types"
)

const (
	MsgNoResults = "No se encontraron ubicaciones. Intenta ser más específico."
	MsgAIFailure = "Error al conectar con la IA. Por favor intenta nuevamente."
)

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseSubmitting Phase = "submitting"
)

// State is an immutable copy of a session as seen by one render.
type State struct {
	Prompt  string                `json:"prompt"`
	IsRoute bool                  `json:"is_route"`
	Points  []types.LocationPoint `json:"points"`
	Error   string                `json:"error,omitempty"`
	Phase   Phase                 `json:"phase"`
	Seq     uint64                `json:"seq"`
}

func (s State) Busy() bool       { return s.Phase == PhaseSubmitting }
func (s State) HasResults() bool { return len(s.Points) > 0 }

// Session is the request lifecycle of one browser. Every submission and every
// clear takes a new sequence number; a response is applied only if its number is
// still the latest, so a slow old answer can never overwrite newer state.
type Session struct {
	mu      sync.Mutex
	state   State
	service locations.Service
	metrics *metrics.AppMetrics
	logger  *slog.Logger
}

func NewSession(service locations.Service, m *metrics.AppMetrics, logger *slog.Logger) *Session {
	return &Session{
		state:   State{Points: []types.LocationPoint{}, Phase: PhaseIdle},
		service: service,
		metrics: m,
		logger:  logger,
	}
}

// Submit sends prompt to the location service and waits for the answer. A blank
// prompt is ignored and reported with false.
func (s *Session) Submit(ctx context.Context, prompt string, isRoute bool) bool {
	if strings.TrimSpace(prompt) == "" {
		return false
	}

	s.mu.Lock()
	s.state.Seq++
	seq := s.state.Seq
	s.state.Prompt = prompt
	s.state.IsRoute = isRoute
	s.state.Error = ""
	s.state.Phase = PhaseSubmitting
	s.mu.Unlock()

	result, err := s.service.Generate(ctx, types.LocationRequest{Prompt: prompt, IsRoute: isRoute})

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.state.Seq {
		s.metrics.StaleResponsesDiscarded.Add(ctx, 1)
		s.logger.InfoContext(ctx, "Discarding superseded response",
			slog.Uint64("seq", seq),
			slog.Uint64("latest", s.state.Seq))
		return true
	}

	s.state.Phase = PhaseIdle
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "Location request failed", slog.Any("error", err))
		s.state.Error = MsgAIFailure
	case len(result.Points) == 0:
		s.state.Points = []types.LocationPoint{}
		s.state.Error = MsgNoResults
	default:
		s.state.Points = result.Points
	}
	return true
}

// Clear resets the session. Any request still in flight is discarded on arrival.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Points: []types.LocationPoint{},
		Phase:  PhaseIdle,
		Seq:    s.state.Seq + 1,
	}
}

// SetRoute changes the display mode without a new request.
func (s *Session) SetRoute(isRoute bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsRoute = isRoute
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := s.state
	snap.Points = slices.Clone(s.state.Points)
	if snap.Points == nil {
		snap.Points = []types.LocationPoint{}
	}
	return snap
}
