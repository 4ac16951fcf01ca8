package tui

import (
	"github.com/runoshun/issues/internal/controller"
	"github.com/runoshun/issues/internal/domain"
)

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
// Results carry the request they answer and the controller that issued it,
// so responses for a replaced controller or a superseded request are dropped.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgIssuesLoaded is sent when a list request completes.
type MsgIssuesLoaded struct {
	Err   error
	Resp  *domain.IssuesResponse
	owner *controller.List
	Req   controller.ListRequest
}

func (MsgIssuesLoaded) sealed() {}

// MsgIssueLoaded is sent when the detail screen's issue request completes.
type MsgIssueLoaded struct {
	Err   error
	Issue *domain.Issue
	owner *controller.Detail
	Req   controller.IssueRequest
}

func (MsgIssueLoaded) sealed() {}

// MsgFormIssueLoaded is sent when the edit form's issue request completes.
type MsgFormIssueLoaded struct {
	Err   error
	Issue *domain.Issue
	owner *controller.Form
	Req   controller.IssueRequest
}

func (MsgFormIssueLoaded) sealed() {}

// MsgIssueSaved is sent when a create or update completes.
type MsgIssueSaved struct {
	Err   error
	Issue *domain.Issue
	owner *controller.Form
	Req   controller.SubmitRequest
}

func (MsgIssueSaved) sealed() {}

// MsgAssigneesLoaded is sent when the assignee options are loaded.
type MsgAssigneesLoaded struct {
	Err   error
	Names []string
}

func (MsgAssigneesLoaded) sealed() {}

// MsgNavigate is sent to switch screens.
type MsgNavigate struct {
	Route Route
}

func (MsgNavigate) sealed() {}

// MsgCopied is sent after copying to the clipboard.
type MsgCopied struct {
	Err error
}

func (MsgCopied) sealed() {}

// MsgClearNotice is sent to clear the transient notice.
type MsgClearNotice struct{}

func (MsgClearNotice) sealed() {}
