package types

import (
	"time"

	"github.com/google/uuid"
)

// LocationInteraction is the audit record kept for each call to the AI backend.
// Only metadata is stored; the returned points are not persisted.
type LocationInteraction struct {
	ID         uuid.UUID `json:"id"`
	SessionID  string    `json:"session_id"`
	Prompt     string    `json:"prompt"`
	PromptHash string    `json:"prompt_hash"`
	IsRoute    bool      `json:"is_route"`
	ModelUsed  string    `json:"model_used"`
	Outcome    Outcome   `json:"outcome"`
	PointCount int       `json:"point_count"`
	LatencyMs  int       `json:"latency_ms"`
	CreatedAt  time.Time `json:"created_at"`
}
