package controller

import (
	"log/slog"
	"strings"

	"github.com/runoshun/issues/internal/domain"
)

// SubmitRequest is a create or update to dispatch.
// Fields are ordered to minimize memory padding.
type SubmitRequest struct {
	Patch domain.IssuePatch // Update payload (edit mode)
	Draft domain.IssueDraft // Create payload (create mode)
	ID    string            // Issue to update (empty = create)
	Seq   uint64
}

// IsCreate reports whether the request creates a new issue.
func (r SubmitRequest) IsCreate() bool {
	return r.ID == ""
}

// Form owns the create/edit form. The draft is a copy: editing it never
// touches the issue it was loaded from.
// Fields are ordered to minimize memory padding.
type Form struct {
	state    domain.LoadState
	logger   *slog.Logger
	original *domain.Issue
	draft    *domain.Issue
	id       string
	seq      sequencer
	done     bool
}

// NewCreateForm creates a form for a new issue seeded with the creation defaults.
func NewCreateForm(logger *slog.Logger) *Form {
	return &Form{
		state:  domain.Idle{},
		logger: loggerOrDiscard(logger),
		draft:  domain.NewIssue(),
	}
}

// NewEditForm creates a form for the issue with id. Call Load to fetch it.
func NewEditForm(id string, logger *slog.Logger) *Form {
	f := NewCreateForm(logger)
	f.id = strings.TrimSpace(id)
	return f
}

// IsEdit reports whether the form edits an existing issue.
func (f *Form) IsEdit() bool { return f.id != "" }

// ID returns the issue being edited ("" in create mode).
func (f *Form) ID() string { return f.id }

// Load fetches the issue being edited. Create forms send nothing.
func (f *Form) Load() (IssueRequest, bool) {
	if !f.IsEdit() {
		return IssueRequest{}, false
	}
	seq := f.seq.next()
	f.state = domain.Loading{Seq: seq}
	return IssueRequest{ID: f.id, Seq: seq}, true
}

// CompleteLoad applies a fetched issue. The draft becomes a shallow copy of it.
func (f *Form) CompleteLoad(req IssueRequest, issue *domain.Issue, err error) bool {
	if !f.seq.isLatest(req.Seq) {
		return false
	}
	if err == nil && issue == nil {
		err = domain.ErrNotFound
	}
	if err != nil {
		f.logger.Error("load issue failed", "id", req.ID, "error", err)
		f.state = domain.Failed{Message: MsgLoadIssueFailed, Cause: err}
		return true
	}
	f.original = issue
	f.draft = issue.Clone()
	f.state = domain.Loaded{}
	return true
}

// Draft returns the editable draft. Mutate it directly to edit fields.
func (f *Form) Draft() *domain.Issue { return f.draft }

// Original returns the issue the draft was loaded from (nil in create mode).
func (f *Form) Original() *domain.Issue { return f.original }

// Valid reports whether the draft can be submitted: the title must be
// non-empty after trimming.
func (f *Form) Valid() bool {
	return domain.ValidTitle(f.draft.Title)
}

// Submit validates the draft locally and returns the request to send.
// An invalid draft sends nothing and leaves the error unset. A submit
// while another request is in flight is ignored, as is an edit whose
// issue never loaded. An edit sends only the fields that changed; with
// no changes nothing is sent and the form is done.
func (f *Form) Submit() (SubmitRequest, bool) {
	if !f.Valid() || f.Loading() {
		return SubmitRequest{}, false
	}
	if f.IsEdit() && f.original == nil {
		return SubmitRequest{}, false
	}

	req := SubmitRequest{ID: f.id}
	if f.IsEdit() {
		req.Patch = f.draft.PatchFrom(f.original)
		if req.Patch.IsEmpty() {
			f.state = domain.Loaded{}
			f.done = true
			return SubmitRequest{}, false
		}
	} else {
		req.Draft = f.draft.Draft()
	}

	req.Seq = f.seq.next()
	f.state = domain.Loading{Seq: req.Seq}
	return req, true
}

// CompleteSubmit applies the outcome of req. On success the form is done
// and the caller should route back to the list. On failure the draft stays
// editable.
func (f *Form) CompleteSubmit(req SubmitRequest, issue *domain.Issue, err error) bool {
	if !f.seq.isLatest(req.Seq) {
		return false
	}
	if err != nil {
		msg := MsgUpdateIssueFailed
		if req.IsCreate() {
			msg = MsgCreateIssueFailed
		}
		f.logger.Error(strings.ToLower(msg), "id", req.ID, "error", err)
		f.state = domain.Failed{Message: msg, Cause: err}
		return true
	}
	if issue != nil {
		f.original = issue
	}
	f.state = domain.Loaded{}
	f.done = true
	return true
}

// Done reports whether the last submit succeeded.
func (f *Form) Done() bool { return f.done }

// State returns the load state.
func (f *Form) State() domain.LoadState { return f.state }

// Loading reports whether a request is in flight.
func (f *Form) Loading() bool { return domain.IsLoading(f.state) }

// Error returns the user-facing error message, or "".
func (f *Form) Error() string { return domain.ErrorMessage(f.state) }
