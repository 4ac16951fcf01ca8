package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/runoshun/issues/internal/controller"
	"github.com/runoshun/issues/internal/domain"
)

// column is one column of the issue table.
type column struct {
	title string
	field domain.SortField
	width int
}

// fixedColumns are the table columns after the title, which takes the rest.
var fixedColumns = []column{
	{title: "Status", field: domain.SortByStatus, width: 13},
	{title: "Priority", field: domain.SortByPriority, width: 10},
	{title: "Assignee", field: domain.SortByAssignee, width: 14},
	{title: "Created", field: domain.SortByCreatedAt, width: 18},
	{title: "Updated", field: domain.SortByUpdatedAt, width: 18},
}

const (
	columnGap     = "  "
	minTitleWidth = 12
	cursorWidth   = 2
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var content string
	if m.mode == ModeHelp {
		content = m.viewHelp()
	} else {
		switch m.route.Screen {
		case ScreenDetail:
			content = m.viewDetail()
		case ScreenCreate, ScreenEdit:
			content = m.viewForm()
		case ScreenList:
			content = m.viewList()
		}
	}

	return m.styles.App.Render(content)
}

// contentWidth is the usable width inside the app padding.
func (m *Model) contentWidth() int {
	return max(m.width-4, 40)
}

// viewList renders the issue list screen.
func (m *Model) viewList() string {
	var b strings.Builder

	header := m.styles.HeaderText.Render("Issues")
	count := m.styles.Footer.Render(fmt.Sprintf("  %d total", m.list.TotalItems()))
	b.WriteString(m.styles.Header.Render(header + count))
	b.WriteString("\n")

	b.WriteString(m.viewFilters())
	b.WriteString("\n")

	switch m.mode {
	case ModeSearch:
		b.WriteString(m.searchInput.View())
		b.WriteString("\n")
	case ModePageSize:
		b.WriteString(m.pageSizeInput.View())
		b.WriteString("\n")
	case ModeNormal, ModeForm, ModeHelp:
	}

	b.WriteString(m.viewMessages(m.list.Loading(), "Loading issues...", m.list.Error()))
	b.WriteString("\n")

	b.WriteString(m.viewTable())
	b.WriteString("\n")

	if m.list.TotalItems() > 0 {
		b.WriteString(m.styles.Footer.Render(fmt.Sprintf("Showing %d-%d of %d",
			m.list.DisplayedStart(), m.list.DisplayedRange(), m.list.TotalItems())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

// viewFilters renders the active search term and filters.
func (m *Model) viewFilters() string {
	item := func(label, value string) string {
		if value == "" {
			return m.styles.Filter.Render(label + ": Any")
		}
		return m.styles.FilterActive.Render(label + ": " + value)
	}

	search := m.styles.Filter.Render("Search: -")
	if term := m.list.SearchTerm(); term != "" {
		search = m.styles.FilterActive.Render(fmt.Sprintf("Search: %q", term))
	}

	parts := []string{
		search,
		item("Status", string(m.list.SelectedStatus())),
		item("Priority", string(m.list.SelectedPriority())),
		item("Assignee", m.list.SelectedAssignee()),
		m.styles.Filter.Render(fmt.Sprintf("Page size: %d", m.list.PageSize())),
	}
	return strings.Join(parts, columnGap)
}

// viewMessages renders the loading indicator, error and notice lines.
func (m *Model) viewMessages(loading bool, loadingText, errMsg string) string {
	var lines []string
	if loading {
		lines = append(lines, m.spinner.View()+" "+loadingText)
	}
	if errMsg != "" {
		lines = append(lines, m.styles.ErrorMsg.Render("Error: "+errMsg))
	}
	if m.notice != "" {
		lines = append(lines, m.styles.NoticeMsg.Render(m.notice))
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}

// titleWidth returns the width left for the title column.
func (m *Model) titleWidth() int {
	used := cursorWidth
	for _, c := range fixedColumns {
		used += c.width + len(columnGap)
	}
	return max(m.contentWidth()-used, minTitleWidth)
}

// viewTable renders the column headers and the rows of the current page.
func (m *Model) viewTable() string {
	titleWidth := m.titleWidth()

	var b strings.Builder
	cells := []string{cell(m.headerLabel("Title", domain.SortByTitle), titleWidth)}
	for _, c := range fixedColumns {
		cells = append(cells, cell(m.headerLabel(c.title, c.field), c.width))
	}
	b.WriteString(strings.Repeat(" ", cursorWidth))
	b.WriteString(m.styles.TableHeader.Render(strings.Join(cells, columnGap)))
	b.WriteString("\n")

	issues := m.list.Issues()
	if len(issues) == 0 && !m.list.Loading() && m.list.Error() == "" {
		b.WriteString(m.styles.Footer.Render("  No issues found"))
		b.WriteString("\n")
		return b.String()
	}

	for i := range issues {
		b.WriteString(m.renderRow(&issues[i], i == m.cursor, titleWidth))
		b.WriteString("\n")
	}
	return b.String()
}

// headerLabel returns a column title with its sort indicator.
func (m *Model) headerLabel(title string, field domain.SortField) string {
	return title + " " + m.list.SortIndicator(field)
}

// renderRow renders one issue row.
func (m *Model) renderRow(issue *domain.Issue, selected bool, titleWidth int) string {
	cursor := m.styles.CursorNormal.Render("  ")
	rowStyle := m.styles.Row
	if selected {
		cursor = m.styles.CursorSelected.Render("> ")
		rowStyle = m.styles.RowSelected
	}

	assignee := issue.Assignee
	if assignee == "" {
		assignee = "-"
	}

	cells := []string{
		rowStyle.Render(cell(issue.Title, titleWidth)),
		m.styles.ClassStyle(issue.Status.Class()).Render(cell(string(issue.Status), fixedColumns[0].width)),
		m.styles.ClassStyle(issue.Priority.Class()).Render(cell(string(issue.Priority), fixedColumns[1].width)),
		rowStyle.Render(cell(assignee, fixedColumns[2].width)),
		rowStyle.Render(cell(controller.FormatTime(issue.CreatedAt, controller.ListTimeLayout), fixedColumns[3].width)),
		rowStyle.Render(cell(controller.FormatTime(issue.UpdatedAt, controller.ListTimeLayout), fixedColumns[4].width)),
	}
	return cursor + strings.Join(cells, columnGap)
}

// cell truncates or pads s to exactly width display columns.
func cell(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// pagination returns the page indicator for the status line.
func (m *Model) pagination() string {
	prev, next := " ", " "
	if m.list.HasPrev() {
		prev = "‹"
	}
	if m.list.HasNext() {
		next = "›"
	}
	return fmt.Sprintf("%s Page %d/%d %s", prev, m.list.CurrentPage(), m.list.TotalPages(), next)
}

// viewDetail renders the issue detail screen.
func (m *Model) viewDetail() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render(m.styles.HeaderText.Render("Issue " + m.detail.ID())))
	b.WriteString("\n")
	b.WriteString(m.viewMessages(m.detail.Loading(), "Loading issue...", m.detail.Error()))

	if m.detail.Issue() != nil {
		b.WriteString(m.detailView.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

// refreshDetailView re-renders the detail viewport content.
func (m *Model) refreshDetailView() {
	if m.detail == nil {
		return
	}
	m.detailView.SetContent(m.detailContent(max(m.detailView.Width, 40)))
}

// detailContent renders the loaded issue for the viewport.
func (m *Model) detailContent(width int) string {
	issue := m.detail.Issue()
	if issue == nil {
		return ""
	}
	if m.showJSON {
		return m.detail.JSON()
	}

	label := func(name string) string { return m.styles.DetailLabel.Render(name) }

	assignee := issue.Assignee
	if assignee == "" {
		assignee = m.styles.DetailMuted.Render("Unassigned")
	}

	lines := []string{
		m.styles.DetailTitle.Render(issue.Title),
		label("ID") + m.styles.DetailValue.Render(issue.ID),
		label("Status") + m.styles.ClassStyle(m.detail.StatusClass()).Render(string(issue.Status)),
		label("Priority") + m.styles.ClassStyle(m.detail.PriorityClass()).Render(string(issue.Priority)),
		label("Assignee") + m.styles.DetailValue.Render(assignee),
		label("Created") + m.styles.DetailValue.Render(m.detail.FormattedCreated()) + m.styles.DetailMuted.Render(relative(issue.CreatedAt)),
		label("Updated") + m.styles.DetailValue.Render(m.detail.FormattedUpdated()) + m.styles.DetailMuted.Render(relative(issue.UpdatedAt)),
		"",
		label("Description"),
	}

	if strings.TrimSpace(issue.Description) == "" {
		lines = append(lines, m.styles.DetailMuted.Render("No description"))
	} else {
		lines = append(lines, strings.TrimRight(m.markdown(issue.Description, width), "\n"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// relative returns " (3 hours ago)" for t, or "" for the zero time.
func relative(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return " (" + humanize.Time(t) + ")"
}

// viewForm renders the create and edit screens.
func (m *Model) viewForm() string {
	var b strings.Builder

	title := "New Issue"
	if m.form.IsEdit() {
		title = "Edit Issue " + m.form.ID()
	}
	b.WriteString(m.styles.Header.Render(m.styles.HeaderText.Render(title)))
	b.WriteString("\n")

	loadingText := "Saving..."
	if m.form.IsEdit() && m.form.Original() == nil {
		loadingText = "Loading issue..."
	}
	b.WriteString(m.viewMessages(m.form.Loading(), loadingText, m.form.Error()))

	draft := m.form.Draft()
	b.WriteString(m.formRow(FieldTitle, m.titleInput.View()))
	if !m.form.Valid() {
		b.WriteString(m.styles.DetailLabel.Render("") + m.styles.DetailMuted.Render("Title is required"))
		b.WriteString("\n")
	}
	b.WriteString(m.formRow(FieldDescription, m.descInput.View()))
	b.WriteString(m.formRow(FieldStatus, m.choice(string(draft.Status), draft.Status.Class())))
	b.WriteString(m.formRow(FieldPriority, m.choice(string(draft.Priority), draft.Priority.Class())))
	b.WriteString(m.formRow(FieldAssignee, m.assigneeInput.View()))

	b.WriteString("\n")
	b.WriteString(m.viewFooter())
	return b.String()
}

// formRow renders a labelled field, boxed and highlighted when focused.
func (m *Model) formRow(field FormField, value string) string {
	box := m.styles.Input
	labelStyle := m.styles.DetailLabel
	if m.field == field {
		box = m.styles.InputFocused
		labelStyle = labelStyle.Foreground(Colors.Primary).Bold(true)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, labelStyle.Render(field.String()), box.Render(value))
	return row + "\n"
}

// choice renders a cycling option value.
func (m *Model) choice(value, class string) string {
	return "‹ " + m.styles.ClassStyle(class).Render(value) + " ›"
}

// viewHelp renders the help overlay.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	h := m.help
	h.ShowAll = true
	return m.styles.Help.Render(lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		h.View(m.keys),
	))
}

// viewFooter renders the status line.
func (m *Model) viewFooter() string {
	return NewStatusLine(m.contentWidth(), &m.styles).Render(m.GetStatusInfo())
}
