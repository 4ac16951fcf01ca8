package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/issues/internal/domain"
)

// CreateIssueInput contains the parameters for creating an issue.
type CreateIssueInput struct {
	Draft  domain.IssueDraft // Unset status and priority default to Open and Medium
	DryRun bool              // If true, validate without creating
}

// CreateIssueOutput contains the result of creating an issue.
type CreateIssueOutput struct {
	Issue *domain.Issue // Created issue (nil in dry-run mode)
	Draft domain.IssueDraft
}

// CreateIssue is the use case for creating an issue.
type CreateIssue struct {
	issues   domain.IssueService
	identity domain.IdentityResolver
	logger   *slog.Logger
}

// NewCreateIssue creates a new CreateIssue use case.
func NewCreateIssue(issues domain.IssueService, identity domain.IdentityResolver, logger *slog.Logger) *CreateIssue {
	return &CreateIssue{
		issues:   issues,
		identity: identity,
		logger:   logger,
	}
}

// Execute validates the draft and creates the issue.
func (uc *CreateIssue) Execute(ctx context.Context, in CreateIssueInput) (*CreateIssueOutput, error) {
	draft, err := prepareDraft(uc.identity, in.Draft)
	if err != nil {
		return nil, err
	}

	if in.DryRun {
		return &CreateIssueOutput{Draft: draft}, nil
	}

	issue, err := uc.issues.CreateIssue(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	if uc.logger != nil {
		uc.logger.Info("issue created", "id", issue.ID, "title", issue.Title)
	}

	return &CreateIssueOutput{Issue: issue, Draft: draft}, nil
}

// prepareDraft applies defaults, resolves @me, and validates.
func prepareDraft(identity domain.IdentityResolver, draft domain.IssueDraft) (domain.IssueDraft, error) {
	draft = draft.WithDefaults()
	assignee, err := resolveAssignee(identity, draft.Assignee)
	if err != nil {
		return domain.IssueDraft{}, err
	}
	draft.Assignee = assignee
	if err := draft.Validate(); err != nil {
		return domain.IssueDraft{}, err
	}
	return draft, nil
}
