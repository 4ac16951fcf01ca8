package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/issues/internal/domain"
)

// ListIssuesInput contains the parameters for listing issues.
type ListIssuesInput struct {
	Filters domain.IssueFilters // Zero sort and paging fields take defaults
}

// ListIssuesOutput contains the result of listing issues.
type ListIssuesOutput struct {
	Response *domain.IssuesResponse // The requested page
	Filters  domain.IssueFilters    // The normalized filters that were sent
}

// ListIssues is the use case for fetching one page of issues.
type ListIssues struct {
	issues   domain.IssueService
	identity domain.IdentityResolver
}

// NewListIssues creates a new ListIssues use case.
func NewListIssues(issues domain.IssueService, identity domain.IdentityResolver) *ListIssues {
	return &ListIssues{
		issues:   issues,
		identity: identity,
	}
}

// Execute validates the filters and fetches the page.
func (uc *ListIssues) Execute(ctx context.Context, in ListIssuesInput) (*ListIssuesOutput, error) {
	filters := in.Filters.Normalize()

	assignee, err := resolveAssignee(uc.identity, filters.Assignee)
	if err != nil {
		return nil, err
	}
	filters.Assignee = assignee

	if err := filters.Validate(); err != nil {
		return nil, err
	}
	if filters.PageSize > domain.MaxPageSize {
		return nil, fmt.Errorf("%w: at most %d", domain.ErrInvalidPageSize, domain.MaxPageSize)
	}

	resp, err := uc.issues.ListIssues(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	return &ListIssuesOutput{
		Response: resp,
		Filters:  filters,
	}, nil
}
