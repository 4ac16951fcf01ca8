package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func TestCreateIssue_Execute(t *testing.T) {
	svc := testutil.NewMockIssueService()
	uc := NewCreateIssue(svc, nil, nil)

	out, err := uc.Execute(context.Background(), CreateIssueInput{
		Draft: domain.IssueDraft{Title: "Login page not responsive"},
	})
	require.NoError(t, err)

	assert.Equal(t, "new-1", out.Issue.ID)
	assert.Equal(t, domain.StatusOpen, out.Issue.Status)
	assert.Equal(t, domain.PriorityMedium, out.Issue.Priority)
	require.Len(t, svc.CreateCalls, 1)
	assert.Equal(t, domain.StatusOpen, svc.CreateCalls[0].Status)
}

func TestCreateIssue_Execute_EmptyTitle(t *testing.T) {
	svc := testutil.NewMockIssueService()

	_, err := NewCreateIssue(svc, nil, nil).Execute(context.Background(), CreateIssueInput{
		Draft: domain.IssueDraft{Title: "   "},
	})
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Empty(t, svc.CreateCalls)
}

func TestCreateIssue_Execute_DryRun(t *testing.T) {
	svc := testutil.NewMockIssueService()

	out, err := NewCreateIssue(svc, &testutil.MockIdentity{Name: "Jane Smith"}, nil).Execute(context.Background(), CreateIssueInput{
		Draft:  domain.IssueDraft{Title: "x", Assignee: "@me", Priority: domain.PriorityHigh},
		DryRun: true,
	})
	require.NoError(t, err)
	assert.Nil(t, out.Issue)
	assert.Equal(t, "Jane Smith", out.Draft.Assignee)
	assert.Equal(t, domain.PriorityHigh, out.Draft.Priority)
	assert.Empty(t, svc.CreateCalls)
}

func TestCreateIssue_Execute_ServiceError(t *testing.T) {
	svc := testutil.NewMockIssueService()
	svc.CreateErr = &domain.APIError{Kind: domain.ErrValidation, StatusCode: 422}

	_, err := NewCreateIssue(svc, nil, nil).Execute(context.Background(), CreateIssueInput{
		Draft: domain.IssueDraft{Title: "x"},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
