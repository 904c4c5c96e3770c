package services

import (
	"context"
	"time"
)

// HealthStatus is the health endpoint payload.
type HealthStatus struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	StartedAt time.Time `json:"started_at"`
	Uptime    string    `json:"uptime"`
}

// HealthService reports process liveness and build information.
type HealthService struct {
	version   string
	startedAt time.Time
}

// NewHealthService creates a new health service.
func NewHealthService(version string) *HealthService {
	return &HealthService{
		version:   version,
		startedAt: time.Now(),
	}
}

// StartedAt reports when the service was constructed.
func (s *HealthService) StartedAt() time.Time {
	return s.startedAt
}

// HealthCheck returns the current health status.
func (s *HealthService) HealthCheck(_ context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Version:   s.version,
		StartedAt: s.startedAt,
		Uptime:    time.Since(s.startedAt).Round(time.Second).String(),
	}
}
