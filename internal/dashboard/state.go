package dashboard

import "time"

// Display sentinels and static error strings.
const (
	HealthChecking  = "Checking..."
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"

	ErrMessageBanner = "Could not connect to the backend. Please ensure it is running on port 8000."
	ErrHealthBanner  = "Health check failed. Is the backend server running?"
)

// Snapshot is a point-in-time copy of the dashboard state.
type Snapshot struct {
	Message          string    `json:"message"`
	Health           string    `json:"health"`
	Healthy          bool      `json:"healthy"`
	Error            string    `json:"error,omitempty"`
	MessageUpdatedAt time.Time `json:"message_updated_at,omitzero"`
	HealthUpdatedAt  time.Time `json:"health_updated_at,omitzero"`
}

// HasError reports whether the error banner should be shown.
func (s Snapshot) HasError() bool { return s.Error != "" }

// IsHealthy classifies a health status string. Only the exact value
// "healthy" counts; "Checking..." and anything else do not.
func IsHealthy(status string) bool { return status == HealthHealthy }
