package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/runoshun/issues/internal/domain"
)

// UpdateIssueInput contains the parameters for updating an issue.
type UpdateIssueInput struct {
	Patch domain.IssuePatch // Only set fields are sent
	ID    string            // Issue ID (required)
}

// UpdateIssueOutput contains the result of updating an issue.
type UpdateIssueOutput struct {
	Issue *domain.Issue // The updated issue
}

// UpdateIssue is the use case for editing an issue.
type UpdateIssue struct {
	issues   domain.IssueService
	identity domain.IdentityResolver
	logger   *slog.Logger
}

// NewUpdateIssue creates a new UpdateIssue use case.
func NewUpdateIssue(issues domain.IssueService, identity domain.IdentityResolver, logger *slog.Logger) *UpdateIssue {
	return &UpdateIssue{
		issues:   issues,
		identity: identity,
		logger:   logger,
	}
}

// Execute validates the patch and applies it.
func (uc *UpdateIssue) Execute(ctx context.Context, in UpdateIssueInput) (*UpdateIssueOutput, error) {
	id := strings.TrimSpace(in.ID)
	if id == "" {
		return nil, domain.ErrEmptyID
	}

	patch := in.Patch
	if patch.Assignee != nil {
		assignee, err := resolveAssignee(uc.identity, *patch.Assignee)
		if err != nil {
			return nil, err
		}
		patch.Assignee = &assignee
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	issue, err := uc.issues.UpdateIssue(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update issue: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("issue updated", "id", issue.ID)
	}

	return &UpdateIssueOutput{Issue: issue}, nil
}
