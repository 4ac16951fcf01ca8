// Package controller holds the view controllers for the list, detail and form screens.
//
// Controllers are single-threaded state machines independent of any UI.
// An operation that needs data returns a request value carrying a sequence
// token; the caller performs the request and hands the result back through
// the matching Complete method. Results whose token is not the latest one
// issued by that controller are discarded, so an out-of-order response can
// never overwrite newer state.
package controller

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/runoshun/issues/internal/domain"
)

// User-facing failure messages. The underlying error is logged.
const (
	MsgLoadIssuesFailed  = "Failed to load issues"
	MsgLoadIssueFailed   = "Failed to load issue"
	MsgCreateIssueFailed = "Failed to create issue"
	MsgUpdateIssueFailed = "Failed to update issue"
)

// Timestamp layouts used by the views.
const (
	DetailTimeLayout = "2006-01-02 15:04:05"
	ListTimeLayout   = "2006-01-02 15:04"
)

// sequencer issues monotonic request tokens.
type sequencer struct {
	seq uint64
}

func (s *sequencer) next() uint64 {
	s.seq++
	return s.seq
}

func (s *sequencer) isLatest(seq uint64) bool {
	return seq != 0 && seq == s.seq
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}

// FormatTime formats t in local time with layout, or "" for the zero time.
func FormatTime(t time.Time, layout string) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(layout)
}

// IssueJSON pretty-prints issue with two-space indentation.
// A nil issue renders as "null".
func IssueJSON(issue *domain.Issue) string {
	if issue == nil {
		return "null"
	}
	data, err := json.MarshalIndent(issue, "", "  ")
	if err != nil {
		return "null"
	}
	return string(data)
}
