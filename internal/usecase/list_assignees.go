package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/runoshun/issues/internal/domain"
)

// ListAssigneesInput contains the parameters for listing assignees.
type ListAssigneesInput struct{}

// ListAssigneesOutput contains the distinct assignee names.
type ListAssigneesOutput struct {
	Assignees []string // Sorted, trimmed, non-empty and unique
	Scanned   int      // Number of issues inspected
	Total     int      // Total number of issues on the server
}

// ListAssignees derives the assignee options from the first
// domain.AssigneeScanSize issues, fetched in pages of domain.MaxPageSize.
type ListAssignees struct {
	issues domain.IssueService
}

// NewListAssignees creates a new ListAssignees use case.
func NewListAssignees(issues domain.IssueService) *ListAssignees {
	return &ListAssignees{
		issues: issues,
	}
}

// Execute pages through the issues until domain.AssigneeScanSize records
// or the last page is reached, then collects their assignees.
func (uc *ListAssignees) Execute(ctx context.Context, _ ListAssigneesInput) (*ListAssigneesOutput, error) {
	filters := domain.DefaultFilters()
	filters.PageSize = domain.MaxPageSize

	var scanned []domain.Issue
	total := 0
	for page := 1; len(scanned) < domain.AssigneeScanSize; page++ {
		filters.Page = page
		resp, err := uc.issues.ListIssues(ctx, filters)
		if err != nil {
			return nil, fmt.Errorf("list issues page %d: %w", page, err)
		}
		total = resp.Total
		scanned = append(scanned, resp.Issues...)
		if len(resp.Issues) == 0 || page >= resp.TotalPages {
			break
		}
	}
	scanned = scanned[:min(len(scanned), domain.AssigneeScanSize)]

	return &ListAssigneesOutput{
		Assignees: DistinctAssignees(scanned),
		Scanned:   len(scanned),
		Total:     total,
	}, nil
}

// DistinctAssignees returns the sorted set of trimmed, non-empty assignees.
func DistinctAssignees(issues []domain.Issue) []string {
	seen := make(map[string]struct{}, len(issues))
	names := make([]string, 0)
	for _, issue := range issues {
		name := strings.TrimSpace(issue.Assignee)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
