package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/runoshun/issues/internal/domain"
)

// ShowIssueInput contains the parameters for showing an issue.
type ShowIssueInput struct {
	ID string // Issue ID (required)
}

// ShowIssueOutput contains the result of showing an issue.
type ShowIssueOutput struct {
	Issue *domain.Issue // The issue details
}

// ShowIssue is the use case for fetching a single issue.
type ShowIssue struct {
	issues domain.IssueService
}

// NewShowIssue creates a new ShowIssue use case.
func NewShowIssue(issues domain.IssueService) *ShowIssue {
	return &ShowIssue{
		issues: issues,
	}
}

// Execute retrieves the issue.
func (uc *ShowIssue) Execute(ctx context.Context, in ShowIssueInput) (*ShowIssueOutput, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, domain.ErrEmptyID
	}

	issue, err := uc.issues.GetIssue(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get issue: %w", err)
	}

	return &ShowIssueOutput{Issue: issue}, nil
}
