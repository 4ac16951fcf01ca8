package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssue_Defaults(t *testing.T) {
	issue := NewIssue()

	assert.Equal(t, StatusOpen, issue.Status)
	assert.Equal(t, PriorityMedium, issue.Priority)
	assert.False(t, issue.IsSaved())
}

func TestIssue_CloneIsShallowCopy(t *testing.T) {
	orig := &Issue{ID: "a1", Title: "Original", Status: StatusOpen}

	c := orig.Clone()
	c.Title = "Edited"

	assert.Equal(t, "Original", orig.Title)
	assert.Equal(t, "a1", c.ID)
	assert.Nil(t, (*Issue)(nil).Clone())
}

func TestIssueDraft_Validate(t *testing.T) {
	assert.ErrorIs(t, IssueDraft{Title: "   "}.Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, IssueDraft{Title: "x", Status: "Done"}.Validate(), ErrInvalidStatus)
	assert.ErrorIs(t, IssueDraft{Title: "x", Priority: "P1"}.Validate(), ErrInvalidPriority)
	assert.NoError(t, IssueDraft{Title: "x"}.Validate())
}

func TestIssueDraft_WithDefaults(t *testing.T) {
	d := IssueDraft{Title: "x"}.WithDefaults()
	assert.Equal(t, StatusOpen, d.Status)
	assert.Equal(t, PriorityMedium, d.Priority)

	d = IssueDraft{Title: "x", Status: StatusClosed, Priority: PriorityHigh}.WithDefaults()
	assert.Equal(t, StatusClosed, d.Status)
	assert.Equal(t, PriorityHigh, d.Priority)
}

func TestIssuePatch_Validate(t *testing.T) {
	assert.ErrorIs(t, IssuePatch{}.Validate(), ErrNoFieldsToUpdate)

	empty := ""
	assert.ErrorIs(t, IssuePatch{Title: &empty}.Validate(), ErrEmptyTitle)

	title := "New title"
	require.NoError(t, IssuePatch{Title: &title}.Validate())
}

func TestIssue_PatchFrom(t *testing.T) {
	orig := &Issue{ID: "a1", Title: "T", Description: "D", Status: StatusOpen, Priority: PriorityLow, Assignee: "Bob"}
	edited := orig.Clone()
	edited.Status = StatusClosed
	edited.Assignee = ""

	p := edited.PatchFrom(orig)
	assert.Nil(t, p.Title)
	assert.Nil(t, p.Description)
	assert.Nil(t, p.Priority)
	require.NotNil(t, p.Status)
	assert.Equal(t, StatusClosed, *p.Status)
	require.NotNil(t, p.Assignee)
	assert.Empty(t, *p.Assignee)

	// The patch does not alias the issue.
	edited.Status = StatusInProgress
	assert.Equal(t, StatusClosed, *p.Status)
}

func TestIssue_PatchFrom_Unchanged(t *testing.T) {
	orig := &Issue{ID: "a1", Title: "T", Status: StatusOpen, Priority: PriorityLow}

	assert.True(t, orig.Clone().PatchFrom(orig).IsEmpty())
	assert.True(t, orig.PatchFrom(nil).IsEmpty())
}

func TestAPIError_Is(t *testing.T) {
	err := fmt.Errorf("get issue: %w", &APIError{Kind: ErrNotFound, Method: "GET", Path: "/issues/x", StatusCode: 404})

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrServer))
	assert.Equal(t, ErrNotFound, KindOf(err))
	assert.Nil(t, KindOf(errors.New("plain")))
	assert.Contains(t, err.Error(), "(404)")
}

func TestLoadState(t *testing.T) {
	assert.True(t, IsLoading(Loading{Seq: 1}))
	assert.False(t, IsLoading(Loaded{}))
	assert.Equal(t, "boom", ErrorMessage(Failed{Message: "boom"}))
	assert.Empty(t, ErrorMessage(Loading{}))
	assert.Equal(t, "failed", StateName(Failed{}))
	assert.Equal(t, "idle", StateName(Idle{}))
}

func TestIssue_UnmarshalJSON_Timestamps(t *testing.T) {
	var issue Issue
	data := []byte(`{"id":"a1","title":"T","status":"Open","priority":"High",` +
		`"createdAt":"2024-05-01T10:00:00Z","updatedAt":"2024-05-02T11:30:00.123456"}`)

	require.NoError(t, json.Unmarshal(data, &issue))
	assert.Equal(t, "a1", issue.ID)
	assert.Equal(t, PriorityHigh, issue.Priority)
	assert.Equal(t, 2024, issue.CreatedAt.Year())
	assert.Equal(t, 2, issue.UpdatedAt.Day())
	assert.Equal(t, 30, issue.UpdatedAt.Minute())
}

func TestIssue_UnmarshalJSON_NullTimestamp(t *testing.T) {
	var issue Issue
	require.NoError(t, json.Unmarshal([]byte(`{"title":"T","createdAt":null}`), &issue))
	assert.True(t, issue.CreatedAt.IsZero())
}

func TestIssue_UnmarshalJSON_BadTimestamp(t *testing.T) {
	var issue Issue
	err := json.Unmarshal([]byte(`{"title":"T","updatedAt":"yesterday"}`), &issue)
	assert.ErrorContains(t, err, "updatedAt")
}
