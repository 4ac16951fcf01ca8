package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/controller"
	"github.com/runoshun/issues/internal/usecase"
)

// noticeDuration is how long a transient notice stays visible.
const noticeDuration = 3 * time.Second

// writeClipboard is a function variable for copying text, allowing it to be mocked in tests.
var writeClipboard = clipboard.WriteAll

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	container  *app.Container
	logger     *slog.Logger
	list       *controller.List
	detail     *controller.Detail
	form       *controller.Form
	mdRenderer *glamour.TermRenderer

	// State
	notice string
	route  Route

	// Components (structs with pointers)
	keys       KeyMap
	styles     Styles
	help       help.Model
	spinner    spinner.Model
	detailView viewport.Model

	// Input state (large structs)
	searchInput   textinput.Model
	pageSizeInput textinput.Model
	titleInput    textinput.Model
	assigneeInput textinput.Model
	descInput     textarea.Model

	// Numeric state (smaller types last)
	mode     Mode
	field    FormField
	cursor   int
	width    int
	height   int
	mdWidth  int
	showJSON bool
}

// New creates a new TUI Model that starts at route.
func New(c *app.Container, start Route) *Model {
	logger := c.CategoryLogger("tui")

	si := textinput.New()
	si.Placeholder = "Search issues..."
	si.Prompt = "/ "
	si.CharLimit = 200

	pi := textinput.New()
	pi.Placeholder = "10"
	pi.Prompt = "Page size: "
	pi.CharLimit = 3

	ti := textinput.New()
	ti.Placeholder = "Issue title"
	ti.Prompt = ""
	ti.CharLimit = 200

	ai := textinput.New()
	ai.Placeholder = "Assignee (optional)"
	ai.Prompt = ""
	ai.CharLimit = 100
	ai.ShowSuggestions = true

	di := textarea.New()
	di.Placeholder = "Description (optional, Markdown)"
	di.ShowLineNumbers = false
	di.CharLimit = 5000
	di.SetHeight(6)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		container:     c,
		logger:        logger,
		list:          controller.NewList(c.AppConfig.DefaultFilters(), logger),
		route:         start,
		keys:          DefaultKeyMap(),
		styles:        DefaultStyles(),
		help:          help.New(),
		spinner:       sp,
		detailView:    viewport.New(0, 0),
		searchInput:   si,
		pageSizeInput: pi,
		titleInput:    ti,
		assigneeInput: ai,
		descInput:     di,
		mode:          ModeNormal,
	}
}

// Run starts the TUI at route and blocks until it exits.
func Run(c *app.Container, start Route) error {
	p := tea.NewProgram(New(c, start), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.navigate(m.route),
		m.loadAssignees(),
		m.spinner.Tick,
	)
}

// Route returns the current route.
func (m *Model) Route() Route {
	return m.route
}

// navigate switches to route and returns the command that loads its data.
func (m *Model) navigate(r Route) tea.Cmd {
	m.route = r
	m.mode = ModeNormal
	m.showJSON = false
	m.logger.Debug("navigate", "route", r.String())

	switch r.Screen {
	case ScreenDetail:
		m.detail = controller.NewDetail(m.logger)
		m.detailView.SetContent("")
		m.detailView.GotoTop()
		req, ok := m.detail.Load(r.ID)
		if !ok {
			return nil
		}
		return m.fetchIssue(req)

	case ScreenCreate:
		m.form = controller.NewCreateForm(m.logger)
		m.mode = ModeForm
		m.resetFormInputs()
		return nil

	case ScreenEdit:
		m.form = controller.NewEditForm(r.ID, m.logger)
		m.mode = ModeForm
		m.resetFormInputs()
		req, ok := m.form.Load()
		if !ok {
			return nil
		}
		return m.fetchFormIssue(req)

	case ScreenList:
		// List state lives only while the list is shown; the assignee
		// options are loaded separately and carried over.
		options := m.list.AssigneeOptions()
		m.list = controller.NewList(m.container.AppConfig.DefaultFilters(), m.logger)
		m.list.SetAssigneeOptions(options)
		m.cursor = 0
		return m.fetchIssues(m.list.Reload())
	}
	return nil
}

// SelectedIssueID returns the ID of the issue under the cursor, or "".
func (m *Model) SelectedIssueID() string {
	issues := m.list.Issues()
	if m.cursor < 0 || m.cursor >= len(issues) {
		return ""
	}
	return issues[m.cursor].ID
}

// fetchIssues returns a command that performs a list request.
func (m *Model) fetchIssues(req controller.ListRequest) tea.Cmd {
	uc := m.container.ListIssuesUseCase()
	owner := m.list
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ListIssuesInput{Filters: req.Filters})
		if err != nil {
			return MsgIssuesLoaded{Req: req, owner: owner, Err: err}
		}
		return MsgIssuesLoaded{Req: req, owner: owner, Resp: out.Response}
	}
}

// fetchIssue returns a command that loads the issue for the detail screen.
func (m *Model) fetchIssue(req controller.IssueRequest) tea.Cmd {
	uc := m.container.ShowIssueUseCase()
	owner := m.detail
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ShowIssueInput{ID: req.ID})
		if err != nil {
			return MsgIssueLoaded{Req: req, owner: owner, Err: err}
		}
		return MsgIssueLoaded{Req: req, owner: owner, Issue: out.Issue}
	}
}

// fetchFormIssue returns a command that loads the issue for the edit form.
func (m *Model) fetchFormIssue(req controller.IssueRequest) tea.Cmd {
	uc := m.container.ShowIssueUseCase()
	owner := m.form
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ShowIssueInput{ID: req.ID})
		if err != nil {
			return MsgFormIssueLoaded{Req: req, owner: owner, Err: err}
		}
		return MsgFormIssueLoaded{Req: req, owner: owner, Issue: out.Issue}
	}
}

// submit returns a command that performs a create or update.
func (m *Model) submit(req controller.SubmitRequest) tea.Cmd {
	owner := m.form
	if req.IsCreate() {
		uc := m.container.CreateIssueUseCase()
		return func() tea.Msg {
			out, err := uc.Execute(context.Background(), usecase.CreateIssueInput{Draft: req.Draft})
			if err != nil {
				return MsgIssueSaved{Req: req, owner: owner, Err: err}
			}
			return MsgIssueSaved{Req: req, owner: owner, Issue: out.Issue}
		}
	}

	uc := m.container.UpdateIssueUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.UpdateIssueInput{ID: req.ID, Patch: req.Patch})
		if err != nil {
			return MsgIssueSaved{Req: req, owner: owner, Err: err}
		}
		return MsgIssueSaved{Req: req, owner: owner, Issue: out.Issue}
	}
}

// loadAssignees returns a command that loads the assignee filter options.
func (m *Model) loadAssignees() tea.Cmd {
	uc := m.container.ListAssigneesUseCase()
	return func() tea.Msg {
		out, err := uc.Execute(context.Background(), usecase.ListAssigneesInput{})
		if err != nil {
			return MsgAssigneesLoaded{Err: err}
		}
		return MsgAssigneesLoaded{Names: out.Assignees}
	}
}

// copyText returns a command that copies text to the clipboard.
func copyText(text string) tea.Cmd {
	return func() tea.Msg {
		return MsgCopied{Err: writeClipboard(text)}
	}
}

// clearNoticeLater returns a command that clears the notice after noticeDuration.
func clearNoticeLater() tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return MsgClearNotice{}
	})
}

// resetFormInputs loads the form draft into the inputs and focuses the title.
func (m *Model) resetFormInputs() {
	draft := m.form.Draft()
	m.titleInput.SetValue(draft.Title)
	m.titleInput.CursorEnd()
	m.descInput.SetValue(draft.Description)
	m.assigneeInput.SetValue(draft.Assignee)
	m.assigneeInput.CursorEnd()
	m.assigneeInput.SetSuggestions(m.list.AssigneeOptions())
	m.focusField(FieldTitle)
}

// focusField moves focus to field.
func (m *Model) focusField(field FormField) {
	m.field = field
	m.titleInput.Blur()
	m.descInput.Blur()
	m.assigneeInput.Blur()

	switch field {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldDescription:
		m.descInput.Focus()
	case FieldAssignee:
		m.assigneeInput.Focus()
	case FieldStatus, FieldPriority, formFieldCount:
	}
}

// syncDraft copies the text inputs into the form draft.
func (m *Model) syncDraft() {
	if m.form == nil {
		return
	}
	draft := m.form.Draft()
	draft.Title = m.titleInput.Value()
	draft.Description = m.descInput.Value()
	draft.Assignee = m.assigneeInput.Value()
}

// markdown renders text as Markdown wrapped at width.
// Rendering failures fall back to the raw text.
func (m *Model) markdown(text string, width int) string {
	if m.mdRenderer == nil || m.mdWidth != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			m.logger.Warn("markdown renderer unavailable", "error", err)
			return text
		}
		m.mdRenderer = r
		m.mdWidth = width
	}
	out, err := m.mdRenderer.Render(text)
	if err != nil {
		return text
	}
	return out
}
