package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func TestShowIssue_Execute(t *testing.T) {
	svc := testutil.NewMockIssueService(domain.Issue{ID: "abc", Title: "Login bug", Status: domain.StatusOpen, Priority: domain.PriorityHigh})

	out, err := NewShowIssue(svc).Execute(context.Background(), ShowIssueInput{ID: " abc "})
	require.NoError(t, err)
	assert.Equal(t, "Login bug", out.Issue.Title)
	assert.Equal(t, []string{"abc"}, svc.GetCalls)
}

func TestShowIssue_Execute_NotFound(t *testing.T) {
	svc := testutil.NewMockIssueService()

	out, err := NewShowIssue(svc).Execute(context.Background(), ShowIssueInput{ID: "missing"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowIssue_Execute_EmptyID(t *testing.T) {
	svc := testutil.NewMockIssueService()

	_, err := NewShowIssue(svc).Execute(context.Background(), ShowIssueInput{})
	assert.ErrorIs(t, err, domain.ErrEmptyID)
	assert.Empty(t, svc.GetCalls)
}
