package controller

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func TestCreateForm_Defaults(t *testing.T) {
	f := NewCreateForm(nil)

	assert.False(t, f.IsEdit())
	assert.Equal(t, domain.StatusOpen, f.Draft().Status)
	assert.Equal(t, domain.PriorityMedium, f.Draft().Priority)
	assert.Equal(t, domain.Idle{}, f.State())

	_, ok := f.Load()
	assert.False(t, ok, "create forms have nothing to load")
}

func TestForm_SubmitEmptyTitle(t *testing.T) {
	for _, title := range []string{"", "   ", "\t\n"} {
		svc := testutil.NewMockIssueService()
		f := NewCreateForm(nil)
		f.Draft().Title = title

		_, ok := f.Submit()

		assert.False(t, ok)
		assert.False(t, f.Valid())
		assert.Empty(t, f.Error(), "local validation leaves error unset")
		assert.Equal(t, domain.Idle{}, f.State())
		assert.Empty(t, svc.CreateCalls)
	}
}

func TestForm_Create(t *testing.T) {
	svc := testutil.NewMockIssueService()
	f := NewCreateForm(nil)
	f.Draft().Title = "Login page not responsive"
	f.Draft().Priority = domain.PriorityHigh

	req, ok := f.Submit()
	require.True(t, ok)
	assert.True(t, req.IsCreate())
	assert.True(t, f.Loading())
	assert.Equal(t, "Login page not responsive", req.Draft.Title)
	assert.Equal(t, domain.StatusOpen, req.Draft.Status)

	issue, err := svc.CreateIssue(context.Background(), req.Draft)
	require.True(t, f.CompleteSubmit(req, issue, err))

	assert.True(t, f.Done())
	assert.Equal(t, domain.Loaded{}, f.State())
	assert.Len(t, svc.CreateCalls, 1)
}

func TestForm_CreateFailureKeepsDraft(t *testing.T) {
	f := NewCreateForm(nil)
	f.Draft().Title = "x"

	req, ok := f.Submit()
	require.True(t, ok)
	require.True(t, f.CompleteSubmit(req, nil, &domain.APIError{Kind: domain.ErrValidation}))

	assert.Equal(t, MsgCreateIssueFailed, f.Error())
	assert.False(t, f.Done())
	assert.Equal(t, "x", f.Draft().Title)

	// The draft is still editable and can be resubmitted.
	f.Draft().Title = "y"
	req, ok = f.Submit()
	require.True(t, ok)
	assert.Empty(t, f.Error())
	assert.Equal(t, "y", req.Draft.Title)
}

func TestForm_SubmitWhileLoadingIgnored(t *testing.T) {
	f := NewCreateForm(nil)
	f.Draft().Title = "x"

	_, ok := f.Submit()
	require.True(t, ok)
	_, ok = f.Submit()
	assert.False(t, ok)
}

func TestEditForm_LoadIsShallowCopy(t *testing.T) {
	svc := testutil.NewMockIssueService(domain.Issue{ID: "a1", Title: "Original", Status: domain.StatusOpen, Priority: domain.PriorityLow})
	f := NewEditForm("a1", nil)
	require.True(t, f.IsEdit())

	req, ok := f.Load()
	require.True(t, ok)
	issue, err := svc.GetIssue(context.Background(), req.ID)
	require.True(t, f.CompleteLoad(req, issue, err))

	f.Draft().Title = "Edited"

	assert.Equal(t, "Original", f.Original().Title)
	assert.Equal(t, "Original", issue.Title)
}

func TestEditForm_Update(t *testing.T) {
	svc := testutil.NewMockIssueService(domain.Issue{ID: "a1", Title: "Original", Description: "d", Status: domain.StatusOpen, Priority: domain.PriorityLow, Assignee: "Bob"})
	f := NewEditForm("a1", nil)
	req, _ := f.Load()
	issue, err := svc.GetIssue(context.Background(), req.ID)
	f.CompleteLoad(req, issue, err)

	f.Draft().Status = domain.StatusClosed
	sub, ok := f.Submit()
	require.True(t, ok)
	assert.False(t, sub.IsCreate())
	assert.Equal(t, "a1", sub.ID)

	// Only the changed field is sent.
	require.NotNil(t, sub.Patch.Status)
	assert.Equal(t, domain.StatusClosed, *sub.Patch.Status)
	assert.Nil(t, sub.Patch.Title)
	assert.Nil(t, sub.Patch.Description)
	assert.Nil(t, sub.Patch.Priority)
	assert.Nil(t, sub.Patch.Assignee)

	updated, err := svc.UpdateIssue(context.Background(), sub.ID, sub.Patch)
	require.True(t, f.CompleteSubmit(sub, updated, err))
	assert.True(t, f.Done())
	assert.Equal(t, domain.StatusClosed, f.Original().Status)
}

func TestEditForm_UpdateFailure(t *testing.T) {
	f := NewEditForm("a1", nil)
	req, _ := f.Load()
	f.CompleteLoad(req, &domain.Issue{ID: "a1", Title: "T", Status: domain.StatusOpen, Priority: domain.PriorityLow}, nil)

	f.Draft().Title = "T2"
	sub, ok := f.Submit()
	require.True(t, ok)
	f.CompleteSubmit(sub, nil, errors.New("500"))

	assert.Equal(t, MsgUpdateIssueFailed, f.Error())
	assert.False(t, f.Done())
}

func TestEditForm_LoadFailure(t *testing.T) {
	svc := testutil.NewMockIssueService()
	f := NewEditForm("missing", nil)

	req, _ := f.Load()
	issue, err := svc.GetIssue(context.Background(), req.ID)
	require.True(t, f.CompleteLoad(req, issue, err))

	assert.Equal(t, MsgLoadIssueFailed, f.Error())
	assert.Nil(t, f.Original())
	_, ok := f.Submit()
	assert.False(t, ok, "the empty default draft cannot be submitted")
}

func TestEditForm_LoadFailure_RefusesSubmit(t *testing.T) {
	f := NewEditForm("issue-7", nil)
	req, _ := f.Load()
	require.True(t, f.CompleteLoad(req, nil, &domain.APIError{Kind: domain.ErrNetwork}))

	f.Draft().Title = "typo fix"
	sub, ok := f.Submit()

	assert.False(t, ok, "an edit whose issue never loaded must not overwrite the server record")
	assert.Equal(t, SubmitRequest{}, sub)
	assert.False(t, f.Done())
	assert.Equal(t, MsgLoadIssueFailed, f.Error())
}

func TestEditForm_SubmitWithoutChanges(t *testing.T) {
	f := NewEditForm("a1", nil)
	req, _ := f.Load()
	f.CompleteLoad(req, &domain.Issue{ID: "a1", Title: "T", Status: domain.StatusOpen, Priority: domain.PriorityLow}, nil)

	_, ok := f.Submit()
	assert.False(t, ok)
	assert.True(t, f.Done())
	assert.False(t, f.Loading())
}

func TestForm_StaleSubmitDiscarded(t *testing.T) {
	f := NewCreateForm(nil)
	f.Draft().Title = "x"
	first, _ := f.Submit()
	f.CompleteSubmit(first, nil, errors.New("fail"))
	second, _ := f.Submit()

	assert.False(t, f.CompleteSubmit(first, &domain.Issue{ID: "1"}, nil))
	assert.True(t, f.Loading())
	assert.True(t, f.CompleteSubmit(second, &domain.Issue{ID: "2"}, nil))
	assert.True(t, f.Done())
}
