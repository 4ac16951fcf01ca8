package controller

import (
	"log/slog"
	"strings"

	"github.com/runoshun/issues/internal/domain"
)

// IssueRequest is a single-issue fetch to dispatch.
type IssueRequest struct {
	ID  string
	Seq uint64
}

// Detail owns the read-only view of one issue.
type Detail struct {
	state  domain.LoadState
	logger *slog.Logger
	issue  *domain.Issue
	id     string
	seq    sequencer
}

// NewDetail creates an idle Detail.
func NewDetail(logger *slog.Logger) *Detail {
	return &Detail{
		state:  domain.Idle{},
		logger: loggerOrDiscard(logger),
	}
}

// Load starts fetching the issue with id. An empty id sends nothing.
func (d *Detail) Load(id string) (IssueRequest, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return IssueRequest{}, false
	}
	d.id = id
	seq := d.seq.next()
	d.state = domain.Loading{Seq: seq}
	return IssueRequest{ID: id, Seq: seq}, true
}

// Reload fetches the current issue again.
func (d *Detail) Reload() (IssueRequest, bool) {
	return d.Load(d.id)
}

// Complete applies the outcome of req. Stale results are discarded.
// On failure the issue is cleared.
func (d *Detail) Complete(req IssueRequest, issue *domain.Issue, err error) bool {
	if !d.seq.isLatest(req.Seq) {
		return false
	}
	if err == nil && issue == nil {
		err = domain.ErrNotFound
	}
	if err != nil {
		d.logger.Error("load issue failed", "id", req.ID, "error", err)
		d.issue = nil
		d.state = domain.Failed{Message: MsgLoadIssueFailed, Cause: err}
		return true
	}
	d.issue = issue
	d.state = domain.Loaded{}
	return true
}

// Issue returns the loaded issue, or nil.
func (d *Detail) Issue() *domain.Issue { return d.issue }

// ID returns the requested issue ID.
func (d *Detail) ID() string { return d.id }

// State returns the load state.
func (d *Detail) State() domain.LoadState { return d.state }

// Loading reports whether a request is in flight.
func (d *Detail) Loading() bool { return domain.IsLoading(d.state) }

// Error returns the user-facing error message, or "".
func (d *Detail) Error() string { return domain.ErrorMessage(d.state) }

// CanEdit reports whether the loaded issue can be opened in the form.
func (d *Detail) CanEdit() bool { return d.issue != nil && d.issue.IsSaved() }

// StatusClass returns the style class of the issue status.
func (d *Detail) StatusClass() string {
	if d.issue == nil {
		return ""
	}
	return d.issue.Status.Class()
}

// PriorityClass returns the style class of the issue priority.
func (d *Detail) PriorityClass() string {
	if d.issue == nil {
		return ""
	}
	return d.issue.Priority.Class()
}

// FormattedUpdated returns the last-update time, or "".
func (d *Detail) FormattedUpdated() string {
	if d.issue == nil {
		return ""
	}
	return FormatTime(d.issue.UpdatedAt, DetailTimeLayout)
}

// FormattedCreated returns the creation time, or "".
func (d *Detail) FormattedCreated() string {
	if d.issue == nil {
		return ""
	}
	return FormatTime(d.issue.CreatedAt, DetailTimeLayout)
}

// JSON returns the issue as indented JSON ("null" when absent).
func (d *Detail) JSON() string {
	return IssueJSON(d.issue)
}
