package draftfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/issues/internal/domain"
)

func TestParse(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		content string
		want    []domain.IssueDraft
	}{
		{
			name: "single issue",
			content: `---
title: Login page not responsive
---
The form overflows.`,
			want: []domain.IssueDraft{
				{Title: "Login page not responsive", Description: "The form overflows."},
			},
		},
		{
			name: "all fields with lenient enums",
			content: `---
title: Dark mode
status: in_progress
priority: high
assignee: Jane Smith
---
Add a dark theme.
`,
			want: []domain.IssueDraft{
				{
					Title:       "Dark mode",
					Description: "Add a dark theme.",
					Status:      domain.StatusInProgress,
					Priority:    domain.PriorityHigh,
					Assignee:    "Jane Smith",
				},
			},
		},
		{
			name: "multiple issues",
			content: `---
title: First
---
One.

---
title: Second
priority: Low
---
Two.`,
			want: []domain.IssueDraft{
				{Title: "First", Description: "One."},
				{Title: "Second", Description: "Two.", Priority: domain.PriorityLow},
			},
		},
		{
			name: "separator inside description",
			content: `---
title: Notes
---
Before
---
After`,
			want: []domain.IssueDraft{
				{Title: "Notes", Description: "Before\n---\nAfter"},
			},
		},
		{
			name: "quoted title with colon",
			content: `---
title: "Crash: null pointer"
---
`,
			want: []domain.IssueDraft{
				{Title: "Crash: null pointer"},
			},
		},
		{
			name:    "empty content",
			content: "  \n",
			wantErr: domain.ErrEmptyFile,
		},
		{
			name:    "no frontmatter",
			content: "just some text",
			wantErr: domain.ErrNoIssuesInFile,
		},
		{
			name: "missing title",
			content: `---
priority: High
---
body`,
			wantErr: domain.ErrEmptyTitle,
		},
		{
			name: "invalid status",
			content: `---
title: x
status: Done
---`,
			wantErr: domain.ErrInvalidStatus,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.content)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_UnknownKey(t *testing.T) {
	_, err := Parse("---\ntitle: x\nlabels: [a]\n---\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "issue 1")
}

func TestWriteThenParse(t *testing.T) {
	drafts := []domain.IssueDraft{
		{Title: "Crash: on save", Description: "Steps:\n1. save", Status: domain.StatusOpen, Priority: domain.PriorityHigh, Assignee: "John Doe"},
		{Title: "Second"},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, drafts))

	got, err := Parse(buf.String())
	require.NoError(t, err)
	assert.Equal(t, drafts, got)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "issues.md")
	require.NoError(t, os.WriteFile(path, []byte("---\ntitle: From file\n---\n"), 0o644))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "From file", got[0].Title)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
