package doclist

import (
	"context"

	healthuc "github.com/PaulPCIO/dashboard-widget-document-list/internal/usecase/health"
)

// HealthStatus represents the aggregated system health.
// Status is "error" when Redis is unreachable and "degraded" when only the
// search index is missing, in which case live queries fail every cycle.
type HealthStatus struct {
	Status string
	Checks map[string]string // "database", "search_index": ok, error or timeout
}

// Healthy reports whether every component passed.
func (h HealthStatus) Healthy() bool { return h.Status == string(healthuc.Healthy) }

// Health checks the database and the search index.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
