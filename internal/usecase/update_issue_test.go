package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestUpdateIssue_Execute(t *testing.T) {
	svc := testutil.NewMockIssueService(domain.Issue{ID: "a1", Title: "Old", Status: domain.StatusOpen, Priority: domain.PriorityLow})
	status := domain.StatusInProgress

	out, err := NewUpdateIssue(svc, nil, nil).Execute(context.Background(), UpdateIssueInput{
		ID:    "a1",
		Patch: domain.IssuePatch{Title: strPtr("New"), Status: &status},
	})
	require.NoError(t, err)

	assert.Equal(t, "New", out.Issue.Title)
	assert.Equal(t, domain.StatusInProgress, out.Issue.Status)
	assert.Equal(t, domain.PriorityLow, out.Issue.Priority)

	// Only the set fields are sent.
	require.Len(t, svc.UpdateCalls, 1)
	assert.Nil(t, svc.UpdateCalls[0].Patch.Priority)
	assert.Nil(t, svc.UpdateCalls[0].Patch.Description)
}

func TestUpdateIssue_Execute_Validation(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		in      UpdateIssueInput
	}{
		{name: "empty id", in: UpdateIssueInput{Patch: domain.IssuePatch{Title: strPtr("x")}}, wantErr: domain.ErrEmptyID},
		{name: "no fields", in: UpdateIssueInput{ID: "a1"}, wantErr: domain.ErrNoFieldsToUpdate},
		{name: "blank title", in: UpdateIssueInput{ID: "a1", Patch: domain.IssuePatch{Title: strPtr(" ")}}, wantErr: domain.ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := testutil.NewMockIssueService()
			_, err := NewUpdateIssue(svc, nil, nil).Execute(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, svc.UpdateCalls)
		})
	}
}

func TestUpdateIssue_Execute_AssigneeMe(t *testing.T) {
	svc := testutil.NewMockIssueService(domain.Issue{ID: "a1", Title: "T", Status: domain.StatusOpen, Priority: domain.PriorityLow})

	out, err := NewUpdateIssue(svc, &testutil.MockIdentity{Name: "Jane Smith"}, nil).Execute(context.Background(), UpdateIssueInput{
		ID:    "a1",
		Patch: domain.IssuePatch{Assignee: strPtr("@me")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Jane Smith", out.Issue.Assignee)
}

func TestUpdateIssue_Execute_NotFound(t *testing.T) {
	svc := testutil.NewMockIssueService()

	_, err := NewUpdateIssue(svc, nil, nil).Execute(context.Background(), UpdateIssueInput{
		ID:    "nope",
		Patch: domain.IssuePatch{Title: strPtr("x")},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
