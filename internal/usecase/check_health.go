package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/runoshun/issues/internal/domain"
)

// CheckHealthInput contains the parameters for a health check.
type CheckHealthInput struct{}

// CheckHealthOutput contains the result of a health check.
type CheckHealthOutput struct {
	BaseURL string        // API root that was checked
	Latency time.Duration // Round-trip time of the check
}

// CheckHealth is the use case for checking that the API is reachable.
type CheckHealth struct {
	issues  domain.IssueService
	clock   domain.Clock
	baseURL string
}

// NewCheckHealth creates a new CheckHealth use case.
func NewCheckHealth(issues domain.IssueService, clock domain.Clock, baseURL string) *CheckHealth {
	return &CheckHealth{
		issues:  issues,
		clock:   clock,
		baseURL: baseURL,
	}
}

// Execute calls the health endpoint once.
func (uc *CheckHealth) Execute(ctx context.Context, _ CheckHealthInput) (*CheckHealthOutput, error) {
	start := uc.clock.Now()
	if err := uc.issues.Health(ctx); err != nil {
		return nil, fmt.Errorf("health check %s: %w", uc.baseURL, err)
	}
	return &CheckHealthOutput{
		BaseURL: uc.baseURL,
		Latency: uc.clock.Now().Sub(start),
	}, nil
}
