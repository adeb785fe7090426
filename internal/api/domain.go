package api

// Response represents the error envelope written by ErrorResponse.
type Response struct {
	Success   bool   `json:"success" example:"false"`                          // Always false for errors.
	Error     string `json:"error,omitempty" example:"prompt must not be empty"` // Human readable error message.
	RequestID string `json:"request_id,omitempty" example:"host/abc-000001"`     // Request id assigned by the router.
}

// StatusResponse is returned by the liveness and readiness probes.
type StatusResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}
