package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/infra/draftfile"
)

// CreateIssuesFromFileInput contains the parameters for creating issues from a file.
type CreateIssuesFromFileInput struct {
	Content string // File content (Markdown with frontmatter)
	DryRun  bool   // If true, parse and validate without creating issues
}

// CreateIssuesFromFileOutput contains the result of creating issues from a file.
type CreateIssuesFromFileOutput struct {
	Issues []*domain.Issue     // Created issues (empty in dry-run mode)
	Drafts []domain.IssueDraft // Validated drafts, in file order
}

// CreateIssuesFromFile is the use case for creating issues from a Markdown file.
type CreateIssuesFromFile struct {
	issues   domain.IssueService
	identity domain.IdentityResolver
	logger   *slog.Logger
}

// NewCreateIssuesFromFile creates a new CreateIssuesFromFile use case.
func NewCreateIssuesFromFile(issues domain.IssueService, identity domain.IdentityResolver, logger *slog.Logger) *CreateIssuesFromFile {
	return &CreateIssuesFromFile{
		issues:   issues,
		identity: identity,
		logger:   logger,
	}
}

// Execute parses every draft first and only creates issues when all are valid.
// Creation stops at the first failure; issues created before it are returned.
func (uc *CreateIssuesFromFile) Execute(ctx context.Context, in CreateIssuesFromFileInput) (*CreateIssuesFromFileOutput, error) {
	parsed, err := draftfile.Parse(in.Content)
	if err != nil {
		return nil, err
	}

	drafts := make([]domain.IssueDraft, 0, len(parsed))
	for i, d := range parsed {
		draft, err := prepareDraft(uc.identity, d)
		if err != nil {
			return nil, fmt.Errorf("issue %d: %w", i+1, err)
		}
		drafts = append(drafts, draft)
	}

	out := &CreateIssuesFromFileOutput{Drafts: drafts}
	if in.DryRun {
		return out, nil
	}

	for i, draft := range drafts {
		issue, err := uc.issues.CreateIssue(ctx, draft)
		if err != nil {
			return out, fmt.Errorf("issue %d: create issue: %w", i+1, err)
		}
		if uc.logger != nil {
			uc.logger.Info("issue created", "id", issue.ID, "title", issue.Title)
		}
		out.Issues = append(out.Issues, issue)
	}
	return out, nil
}
