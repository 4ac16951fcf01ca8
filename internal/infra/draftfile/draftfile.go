// Package draftfile reads and writes issue drafts as Markdown with YAML frontmatter.
//
// Format:
//
//	---
//	title: Login page not responsive
//	status: Open
//	priority: High
//	assignee: John Doe
//	---
//	The login form overflows on small screens.
//
//	---
//	title: Second issue
//	---
//	Second description.
//
// A "---" line inside a description only starts a new draft when the
// next line is a frontmatter key.
package draftfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/issues/internal/domain"
)

const delimiter = "---"

// frontmatter is the YAML header of one draft.
type frontmatter struct {
	Title    string `yaml:"title"`
	Status   string `yaml:"status,omitempty"`
	Priority string `yaml:"priority,omitempty"`
	Assignee string `yaml:"assignee,omitempty"`
}

// frontmatterKeys are the keys that mark the start of a new draft.
var frontmatterKeys = []string{"title:", "status:", "priority:", "assignee:"}

// ReadFile parses the drafts in the file at path.
func ReadFile(path string) ([]domain.IssueDraft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse parses one or more drafts. Status and priority are parsed leniently
// ("in_progress", "high"); unset values are left empty for the caller to default.
func Parse(content string) ([]domain.IssueDraft, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyFile
	}

	blocks := splitBlocks(content)
	if len(blocks) == 0 {
		return nil, domain.ErrNoIssuesInFile
	}

	drafts := make([]domain.IssueDraft, 0, len(blocks))
	for i, b := range blocks {
		d, err := parseBlock(b)
		if err != nil {
			return nil, fmt.Errorf("issue %d: %w", i+1, err)
		}
		drafts = append(drafts, d)
	}
	return drafts, nil
}

// block is one draft split into its frontmatter and body lines.
type block struct {
	header []string
	body   []string
}

// splitBlocks splits content into draft blocks. Text before the first
// delimiter is ignored.
func splitBlocks(content string) []block {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	var blocks []block
	var cur *block
	inHeader := false

	for i, line := range lines {
		if strings.TrimRight(line, " \t") == delimiter {
			switch {
			case cur == nil:
				cur = &block{}
				inHeader = true
			case inHeader:
				inHeader = false
			case i+1 < len(lines) && isFrontmatterKey(lines[i+1]):
				blocks = append(blocks, *cur)
				cur = &block{}
				inHeader = true
			default:
				cur.body = append(cur.body, line)
			}
			continue
		}
		if cur == nil {
			continue
		}
		if inHeader {
			cur.header = append(cur.header, line)
		} else {
			cur.body = append(cur.body, line)
		}
	}
	if cur != nil {
		blocks = append(blocks, *cur)
	}
	return blocks
}

func isFrontmatterKey(line string) bool {
	for _, key := range frontmatterKeys {
		if strings.HasPrefix(line, key) {
			return true
		}
	}
	return false
}

func parseBlock(b block) (domain.IssueDraft, error) {
	var fm frontmatter
	dec := yaml.NewDecoder(strings.NewReader(strings.Join(b.header, "\n")))
	dec.KnownFields(true)
	if err := dec.Decode(&fm); err != nil && !errors.Is(err, io.EOF) {
		return domain.IssueDraft{}, fmt.Errorf("parse frontmatter: %w", err)
	}

	draft := domain.IssueDraft{
		Title:       strings.TrimSpace(fm.Title),
		Description: strings.TrimSpace(strings.Join(b.body, "\n")),
		Assignee:    strings.TrimSpace(fm.Assignee),
	}
	if draft.Title == "" {
		return domain.IssueDraft{}, domain.ErrEmptyTitle
	}
	if fm.Status != "" {
		s, err := domain.ParseStatus(fm.Status)
		if err != nil {
			return domain.IssueDraft{}, err
		}
		draft.Status = s
	}
	if fm.Priority != "" {
		p, err := domain.ParsePriority(fm.Priority)
		if err != nil {
			return domain.IssueDraft{}, err
		}
		draft.Priority = p
	}
	return draft, nil
}

// Write renders drafts in the format accepted by Parse.
func Write(w io.Writer, drafts []domain.IssueDraft) error {
	for i, d := range drafts {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		header, err := yaml.Marshal(frontmatter{
			Title:    d.Title,
			Status:   string(d.Status),
			Priority: string(d.Priority),
			Assignee: d.Assignee,
		})
		if err != nil {
			return fmt.Errorf("encode frontmatter: %w", err)
		}

		var buf bytes.Buffer
		buf.WriteString(delimiter + "\n")
		buf.Write(header)
		buf.WriteString(delimiter + "\n")
		if d.Description != "" {
			buf.WriteString(d.Description)
			buf.WriteString("\n")
		}
		if _, err := w.Write(buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
