package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

const twoDrafts = `---
title: Login page not responsive
priority: high
assignee: "@me"
---
The login form overflows on small screens.

---
title: Fix typo in footer
status: in_progress
---
`

func TestCreateIssuesFromFile_Execute(t *testing.T) {
	svc := testutil.NewMockIssueService()
	uc := NewCreateIssuesFromFile(svc, &testutil.MockIdentity{Name: "Jane Smith"}, nil)

	out, err := uc.Execute(context.Background(), CreateIssuesFromFileInput{Content: twoDrafts})
	require.NoError(t, err)

	require.Len(t, out.Issues, 2)
	assert.Equal(t, "new-1", out.Issues[0].ID)
	assert.Equal(t, "new-2", out.Issues[1].ID)

	require.Len(t, svc.CreateCalls, 2)
	assert.Equal(t, "Login page not responsive", svc.CreateCalls[0].Title)
	assert.Equal(t, domain.PriorityHigh, svc.CreateCalls[0].Priority)
	assert.Equal(t, "Jane Smith", svc.CreateCalls[0].Assignee)
	assert.Equal(t, domain.StatusOpen, svc.CreateCalls[0].Status)
	assert.Equal(t, domain.StatusInProgress, svc.CreateCalls[1].Status)
	assert.Equal(t, domain.PriorityMedium, svc.CreateCalls[1].Priority)
}

func TestCreateIssuesFromFile_Execute_DryRun(t *testing.T) {
	svc := testutil.NewMockIssueService()
	uc := NewCreateIssuesFromFile(svc, &testutil.MockIdentity{Name: "Jane Smith"}, nil)

	out, err := uc.Execute(context.Background(), CreateIssuesFromFileInput{Content: twoDrafts, DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, out.Issues)
	require.Len(t, out.Drafts, 2)
	assert.Equal(t, "Jane Smith", out.Drafts[0].Assignee)
	assert.Empty(t, svc.CreateCalls)
}

func TestCreateIssuesFromFile_Execute_InvalidDraftCreatesNothing(t *testing.T) {
	svc := testutil.NewMockIssueService()
	content := "---\ntitle: ok\n---\n\n---\ntitle: \"  \"\n---\n"

	_, err := NewCreateIssuesFromFile(svc, nil, nil).Execute(context.Background(), CreateIssuesFromFileInput{Content: content})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Contains(t, err.Error(), "issue 2")
	assert.Empty(t, svc.CreateCalls)
}

func TestCreateIssuesFromFile_Execute_EmptyFile(t *testing.T) {
	_, err := NewCreateIssuesFromFile(testutil.NewMockIssueService(), nil, nil).Execute(context.Background(), CreateIssuesFromFileInput{Content: "  \n"})
	assert.ErrorIs(t, err, domain.ErrEmptyFile)
}

func TestCreateIssuesFromFile_Execute_StopsAtFirstFailure(t *testing.T) {
	svc := testutil.NewMockIssueService()
	svc.CreateErr = &domain.APIError{Kind: domain.ErrServer, StatusCode: 500}

	out, err := NewCreateIssuesFromFile(svc, nil, nil).Execute(context.Background(), CreateIssuesFromFileInput{Content: twoDrafts, DryRun: false})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue 1: create issue")
	assert.Empty(t, out.Issues)
}

func TestCreateIssuesFromFile_Execute_InvalidStatus(t *testing.T) {
	content := "---\ntitle: Good\n---\n\n---\ntitle: Bad\nstatus: Done\n---\n"
	svc := testutil.NewMockIssueService()

	_, err := NewCreateIssuesFromFile(svc, nil, nil).Execute(context.Background(), CreateIssuesFromFileInput{Content: content})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	assert.Empty(t, svc.CreateCalls)
}
