package controller

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/testutil"
)

func TestDetail_Load(t *testing.T) {
	ts := time.Date(2024, 3, 4, 5, 6, 7, 0, time.Local)
	svc := testutil.NewMockIssueService(domain.Issue{
		ID: "a1", Title: "Login bug", Status: domain.StatusInProgress, Priority: domain.PriorityHigh,
		CreatedAt: ts, UpdatedAt: ts.Add(time.Hour),
	})
	d := NewDetail(nil)

	req, ok := d.Load("a1")
	require.True(t, ok)
	assert.True(t, d.Loading())

	issue, err := svc.GetIssue(context.Background(), req.ID)
	require.True(t, d.Complete(req, issue, err))

	require.NotNil(t, d.Issue())
	assert.Equal(t, "Login bug", d.Issue().Title)
	assert.Equal(t, domain.Loaded{}, d.State())
	assert.Equal(t, "status-in-progress", d.StatusClass())
	assert.Equal(t, "priority-high", d.PriorityClass())
	assert.Equal(t, "2024-03-04 05:06:07", d.FormattedCreated())
	assert.Equal(t, "2024-03-04 06:06:07", d.FormattedUpdated())
	assert.True(t, d.CanEdit())
}

func TestDetail_Load_NotFound(t *testing.T) {
	svc := testutil.NewMockIssueService()
	d := NewDetail(nil)

	req, ok := d.Load("missing-id")
	require.True(t, ok)
	issue, err := svc.GetIssue(context.Background(), req.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.True(t, d.Complete(req, issue, err))

	assert.Nil(t, d.Issue())
	assert.NotEmpty(t, d.Error())
	assert.Equal(t, MsgLoadIssueFailed, d.Error())
	assert.False(t, d.CanEdit())
	assert.Equal(t, "null", d.JSON())
	assert.Empty(t, d.StatusClass())
	assert.Empty(t, d.FormattedUpdated())
}

func TestDetail_Load_EmptyID(t *testing.T) {
	d := NewDetail(nil)
	_, ok := d.Load("  ")
	assert.False(t, ok)
	assert.Equal(t, domain.Idle{}, d.State())
}

func TestDetail_StaleResponse(t *testing.T) {
	d := NewDetail(nil)
	first, _ := d.Load("a1")
	second, _ := d.Load("b2")

	assert.False(t, d.Complete(first, &domain.Issue{ID: "a1"}, nil))
	assert.True(t, d.Complete(second, &domain.Issue{ID: "b2"}, nil))
	assert.Equal(t, "b2", d.Issue().ID)
}

func TestDetail_JSON(t *testing.T) {
	d := NewDetail(nil)
	req, _ := d.Load("a1")
	d.Complete(req, &domain.Issue{ID: "a1", Title: "T", Status: domain.StatusOpen, Priority: domain.PriorityLow}, nil)

	want := "{\n  \"id\": \"a1\",\n  \"title\": \"T\",\n  \"status\": \"Open\",\n  \"priority\": \"Low\"\n}"
	assert.Equal(t, want, d.JSON())
}

func TestDetail_Reload(t *testing.T) {
	d := NewDetail(nil)
	_, ok := d.Reload()
	assert.False(t, ok)

	first, _ := d.Load("a1")
	again, ok := d.Reload()
	require.True(t, ok)
	assert.Equal(t, "a1", again.ID)
	assert.Greater(t, again.Seq, first.Seq)
}

func TestFormatTime(t *testing.T) {
	assert.Empty(t, FormatTime(time.Time{}, ListTimeLayout))
	ts := time.Date(2024, 12, 31, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2024-12-31 23:59", FormatTime(ts, ListTimeLayout))
}
