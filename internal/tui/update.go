package tui

import (
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/issues/internal/controller"
	"github.com/runoshun/issues/internal/domain"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case MsgIssuesLoaded:
		if msg.owner == m.list && m.list.Complete(msg.Req, msg.Resp, msg.Err) {
			m.cursor = max(min(m.cursor, len(m.list.Issues())-1), 0)
		}
		return m, nil

	case MsgIssueLoaded:
		if msg.owner == m.detail && m.detail != nil && m.detail.Complete(msg.Req, msg.Issue, msg.Err) {
			m.refreshDetailView()
		}
		return m, nil

	case MsgFormIssueLoaded:
		if msg.owner == m.form && m.form != nil && m.form.CompleteLoad(msg.Req, msg.Issue, msg.Err) {
			m.resetFormInputs()
		}
		return m, nil

	case MsgIssueSaved:
		if msg.owner != m.form || m.form == nil || !m.form.CompleteSubmit(msg.Req, msg.Issue, msg.Err) || !m.form.Done() {
			return m, nil
		}
		m.notice = "Issue updated"
		if msg.Req.IsCreate() {
			m.notice = "Issue created"
		}
		return m, tea.Batch(m.navigate(ListRoute), m.loadAssignees(), clearNoticeLater())

	case MsgAssigneesLoaded:
		if msg.Err != nil {
			m.logger.Warn("load assignees failed", "error", msg.Err)
			return m, nil
		}
		m.list.SetAssigneeOptions(msg.Names)
		m.assigneeInput.SetSuggestions(msg.Names)
		return m, nil

	case MsgNavigate:
		return m, m.navigate(msg.Route)

	case MsgCopied:
		if msg.Err != nil {
			m.logger.Warn("copy to clipboard failed", "error", msg.Err)
			m.notice = "Copy failed"
		} else {
			m.notice = "Copied JSON to clipboard"
		}
		return m, clearNoticeLater()

	case MsgClearNotice:
		m.notice = ""
		return m, nil
	}

	return m, nil
}

// updateLayoutSizes resizes the components that depend on the window size.
func (m *Model) updateLayoutSizes() {
	contentWidth := max(m.width-4, 20)
	m.searchInput.Width = max(contentWidth-4, 10)
	m.titleInput.Width = max(contentWidth-16, 10)
	m.assigneeInput.Width = max(contentWidth-16, 10)
	m.descInput.SetWidth(max(contentWidth-16, 10))

	m.detailView.Width = contentWidth
	m.detailView.Height = max(m.height-8, 5)
	m.refreshDetailView()
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.mode == ModeHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return m, nil
	}
	if m.mode.IsInputMode() {
		return m.handleInputMode(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil
	}

	switch m.route.Screen {
	case ScreenDetail:
		return m.handleDetailKeys(msg)
	case ScreenList, ScreenCreate, ScreenEdit:
	}
	return m.handleListKeys(msg)
}

// handleInputMode routes keys to the active text input.
func (m *Model) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeSearch:
		return m.handleSearchMode(msg)
	case ModePageSize:
		return m.handlePageSizeMode(msg)
	case ModeForm:
		return m.handleFormMode(msg)
	case ModeNormal, ModeHelp:
	}
	return m, nil
}

// handleListKeys handles keys on the list screen.
func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.list.Issues())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		if id := m.SelectedIssueID(); id != "" {
			return m, m.navigate(DetailRoute(id))
		}
		return m, nil

	case key.Matches(msg, m.keys.New):
		return m, m.navigate(CreateRoute)

	case key.Matches(msg, m.keys.Edit):
		if id := m.SelectedIssueID(); id != "" {
			return m, m.navigate(EditRoute(id))
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		issues := m.list.Issues()
		if m.cursor >= 0 && m.cursor < len(issues) {
			return m, copyText(controller.IssueJSON(&issues[m.cursor]))
		}
		return m, nil

	case key.Matches(msg, m.keys.PrevPage):
		return m, m.pageCmd(m.list.PrevPage())

	case key.Matches(msg, m.keys.NextPage):
		return m, m.pageCmd(m.list.NextPage())

	case key.Matches(msg, m.keys.Search):
		m.mode = ModeSearch
		m.searchInput.SetValue(m.list.SearchTerm())
		m.searchInput.CursorEnd()
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.ChangePageSize):
		m.mode = ModePageSize
		m.pageSizeInput.SetValue(strconv.Itoa(m.list.PageSize()))
		m.pageSizeInput.CursorEnd()
		m.pageSizeInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.CycleStatus):
		next := cycle(statusOptions(), m.list.SelectedStatus())
		return m, m.reload(m.list.ChangeFilter(controller.FilterChange{Status: &next}))

	case key.Matches(msg, m.keys.CyclePriority):
		next := cycle(priorityOptions(), m.list.SelectedPriority())
		return m, m.reload(m.list.ChangeFilter(controller.FilterChange{Priority: &next}))

	case key.Matches(msg, m.keys.CycleAssignee):
		options := append([]string{""}, m.list.AssigneeOptions()...)
		next := cycle(options, m.list.SelectedAssignee())
		return m, m.reload(m.list.ChangeFilter(controller.FilterChange{Assignee: &next}))

	case key.Matches(msg, m.keys.ClearFilters):
		return m, m.reload(m.list.ClearFilters())

	case key.Matches(msg, m.keys.Refresh):
		return m, m.reload(m.list.Reload())
	}

	if field, ok := m.sortFieldFor(msg); ok {
		return m, m.pageCmd(m.list.Sort(field))
	}
	return m, nil
}

// sortFieldFor maps a sort key to its field.
func (m *Model) sortFieldFor(msg tea.KeyMsg) (domain.SortField, bool) {
	switch {
	case key.Matches(msg, m.keys.SortTitle):
		return domain.SortByTitle, true
	case key.Matches(msg, m.keys.SortStatus):
		return domain.SortByStatus, true
	case key.Matches(msg, m.keys.SortPriority):
		return domain.SortByPriority, true
	case key.Matches(msg, m.keys.SortAssignee):
		return domain.SortByAssignee, true
	case key.Matches(msg, m.keys.SortCreatedAt):
		return domain.SortByCreatedAt, true
	case key.Matches(msg, m.keys.SortUpdatedAt):
		return domain.SortByUpdatedAt, true
	}
	return "", false
}

// reload resets the cursor and dispatches req.
func (m *Model) reload(req controller.ListRequest) tea.Cmd {
	m.cursor = 0
	return m.fetchIssues(req)
}

// pageCmd dispatches req when the controller accepted the change.
func (m *Model) pageCmd(req controller.ListRequest, ok bool) tea.Cmd {
	if !ok {
		return nil
	}
	return m.reload(req)
}

// handleSearchMode handles keys while editing the search term.
// The search is sent when the term is submitted.
func (m *Model) handleSearchMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, m.reload(m.list.Search(strings.TrimSpace(m.searchInput.Value())))
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handlePageSizeMode handles keys while editing the page size.
func (m *Model) handlePageSizeMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = ModeNormal
		m.pageSizeInput.Blur()
		size, err := strconv.Atoi(strings.TrimSpace(m.pageSizeInput.Value()))
		if err != nil {
			m.notice = "Invalid page size"
			return m, clearNoticeLater()
		}
		req, ok := m.list.ChangePageSize(size)
		if !ok {
			m.notice = "Page size must be between 1 and " + strconv.Itoa(domain.MaxPageSize)
			return m, clearNoticeLater()
		}
		return m, m.reload(req)
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.pageSizeInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.pageSizeInput, cmd = m.pageSizeInput.Update(msg)
	return m, cmd
}

// handleDetailKeys handles keys on the detail screen.
func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		return m, m.navigate(ListRoute)

	case key.Matches(msg, m.keys.Edit):
		if m.detail.CanEdit() {
			return m, m.navigate(EditRoute(m.detail.ID()))
		}
		return m, nil

	case key.Matches(msg, m.keys.Copy):
		if m.detail.Issue() != nil {
			return m, copyText(m.detail.JSON())
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleJSON):
		m.showJSON = !m.showJSON
		m.refreshDetailView()
		m.detailView.GotoTop()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		if req, ok := m.detail.Reload(); ok {
			return m, m.fetchIssue(req)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailView, cmd = m.detailView.Update(msg)
	return m, cmd
}

// handleFormMode handles keys on the create and edit screens.
func (m *Model) handleFormMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		return m, m.navigate(ListRoute)

	case key.Matches(msg, m.keys.Submit):
		m.syncDraft()
		req, ok := m.form.Submit()
		if !ok {
			switch {
			case !m.form.Valid():
				m.notice = "Title is required"
			case m.form.Done():
				m.notice = "No changes"
				return m, tea.Batch(m.navigate(ListRoute), clearNoticeLater())
			default:
				return m, nil
			}
			return m, clearNoticeLater()
		}
		return m, m.submit(req)

	case key.Matches(msg, m.keys.NextField):
		m.focusField(m.field.next())
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.focusField(m.field.prev())
		return m, nil
	}

	if !m.field.isText() {
		if key.Matches(msg, m.keys.Cycle) {
			draft := m.form.Draft()
			back := msg.Type == tea.KeyLeft
			switch m.field {
			case FieldStatus:
				draft.Status = cycleDir(domain.AllStatuses(), draft.Status, back)
			case FieldPriority:
				draft.Priority = cycleDir(domain.AllPriorities(), draft.Priority, back)
			case FieldTitle, FieldDescription, FieldAssignee, formFieldCount:
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.field {
	case FieldTitle:
		if msg.Type == tea.KeyEnter {
			m.focusField(m.field.next())
			return m, nil
		}
		m.titleInput, cmd = m.titleInput.Update(msg)
	case FieldDescription:
		m.descInput, cmd = m.descInput.Update(msg)
	case FieldAssignee:
		if msg.Type == tea.KeyEnter {
			if s := m.assigneeInput.CurrentSuggestion(); s != "" {
				m.assigneeInput.SetValue(s)
				m.assigneeInput.CursorEnd()
			}
			break
		}
		m.assigneeInput, cmd = m.assigneeInput.Update(msg)
	case FieldStatus, FieldPriority, formFieldCount:
	}
	m.syncDraft()
	return m, cmd
}

// statusOptions returns the status filter choices, "" meaning any.
func statusOptions() []domain.Status {
	return append([]domain.Status{""}, domain.AllStatuses()...)
}

// priorityOptions returns the priority filter choices, "" meaning any.
func priorityOptions() []domain.Priority {
	return append([]domain.Priority{""}, domain.AllPriorities()...)
}

// cycle returns the option after current, wrapping around.
// An unknown current value yields the first option.
func cycle[T comparable](options []T, current T) T {
	return cycleDir(options, current, false)
}

// cycleDir returns the option after (or before, if back) current.
func cycleDir[T comparable](options []T, current T, back bool) T {
	if len(options) == 0 {
		return current
	}
	idx := slices.Index(options, current)
	if idx < 0 {
		return options[0]
	}
	if back {
		return options[(idx+len(options)-1)%len(options)]
	}
	return options[(idx+1)%len(options)]
}
