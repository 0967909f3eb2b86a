package health

import (
	"context"
	"time"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates live queries cannot run but storage is reachable.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckTimeout indicates the check did not answer within the timeout.
	CheckTimeout CheckResult = "timeout"
)

// Component names reported in Report.Checks.
const (
	ComponentDatabase    = "database"
	ComponentSearchIndex = "search_index"
)

const defaultCheckTimeout = 2 * time.Second

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	index   IndexChecker
	timeout time.Duration
}

// New creates a Service. index can be nil.
func New(db DBPinger, index IndexChecker) *Service {
	return &Service{db: db, index: index, timeout: defaultCheckTimeout}
}

// WithTimeout bounds each component check. Non-positive values are ignored.
func (s *Service) WithTimeout(d time.Duration) *Service {
	if d > 0 {
		s.timeout = d
	}
	return s
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := map[string]CheckResult{
		ComponentDatabase: s.run(ctx, s.db.Ping),
	}
	if s.index != nil {
		checks[ComponentSearchIndex] = s.run(ctx, s.index.HealthCheck)
	}

	status := Healthy
	switch {
	case checks[ComponentDatabase] != CheckOK:
		status = Unhealthy
	default:
		for _, v := range checks {
			if v != CheckOK {
				status = Degraded
				break
			}
		}
	}

	return Report{Status: status, Checks: checks}
}

func (s *Service) run(ctx context.Context, check func(context.Context) error) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := check(ctx)
	switch {
	case err == nil:
		return CheckOK
	case ctx.Err() == context.DeadlineExceeded:
		return CheckTimeout
	default:
		return CheckError
	}
}
