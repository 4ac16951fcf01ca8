package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/runoshun/issues/internal/app"
	"github.com/runoshun/issues/internal/controller"
	"github.com/runoshun/issues/internal/domain"
	"github.com/runoshun/issues/internal/infra/draftfile"
	"github.com/runoshun/issues/internal/usecase"
)

// newListCommand creates the list command for listing issues.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Search    string
		Status    string
		Priority  string
		Assignee  string
		SortBy    string
		SortOrder string
		Page      int
		PageSize  int
		JSON      bool
	}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List issues",
		Long: `Display one page of issues.

Sorting and page size default to the [list] section of the config file.
Use @me as the assignee to filter by your git user.name.

Output format is tab-separated with columns:
  ID, STATUS, PRIORITY, ASSIGNEE, UPDATED, TITLE

Examples:
  # First page, most recently updated first
  issues list

  # Open high-priority issues assigned to me
  issues list --status open --priority high --assignee @me

  # Search titles, sorted by title
  issues list --search login --sort title --order asc

  # Third page of 50
  issues list --page 3 --page-size 50

  # Raw page as JSON
  issues list --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filters := c.AppConfig.DefaultFilters()
			filters.Search = strings.TrimSpace(opts.Search)
			filters.Assignee = strings.TrimSpace(opts.Assignee)

			if opts.Status != "" {
				s, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return err
				}
				filters.Status = s
			}
			if opts.Priority != "" {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				filters.Priority = p
			}
			if cmd.Flags().Changed("sort") {
				filters.SortBy = domain.SortField(opts.SortBy)
			}
			if cmd.Flags().Changed("order") {
				filters.SortOrder = domain.SortOrder(strings.ToLower(opts.SortOrder))
			}
			if cmd.Flags().Changed("page") {
				if opts.Page < 1 {
					return domain.ErrInvalidPage
				}
				filters.Page = opts.Page
			}
			if cmd.Flags().Changed("page-size") {
				if opts.PageSize < 1 {
					return domain.ErrInvalidPageSize
				}
				filters.PageSize = opts.PageSize
			}

			uc := c.ListIssuesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListIssuesInput{Filters: filters})
			if err != nil {
				return err
			}

			if opts.JSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Response)
			}

			printIssueList(cmd.OutOrStdout(), out.Response.Issues, c.Clock)
			printPageInfo(cmd.OutOrStdout(), out.Response, out.Filters)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.Search, "search", "q", "", "Search issue titles")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Filter by status (open, in_progress, closed)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Filter by priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Filter by assignee (@me = git user.name)")
	cmd.Flags().StringVar(&opts.SortBy, "sort", "", "Sort field (title, status, priority, assignee, createdAt, updatedAt)")
	cmd.Flags().StringVar(&opts.SortOrder, "order", "", "Sort order (asc, desc)")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "Page number")
	cmd.Flags().IntVarP(&opts.PageSize, "page-size", "n", domain.DefaultPageSize, "Issues per page")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output the page in JSON format")

	return cmd
}

// printIssueList prints issues in TSV format.
func printIssueList(w io.Writer, issues []domain.Issue, clock domain.Clock) {
	if len(issues) == 0 {
		_, _ = fmt.Fprintln(w, "No issues found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	// Header
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tPRIORITY\tASSIGNEE\tUPDATED\tTITLE")

	now := clock.Now()
	for _, issue := range issues {
		assignee := issue.Assignee
		if assignee == "" {
			assignee = "-"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			issue.ID,
			issue.Status,
			issue.Priority,
			assignee,
			formatRelative(issue.UpdatedAt, now),
			issue.Title,
		)
	}
}

// printPageInfo prints the page position below the list.
func printPageInfo(w io.Writer, resp *domain.IssuesResponse, filters domain.IssueFilters) {
	if resp.Total == 0 {
		return
	}
	start := (filters.Page-1)*filters.PageSize + 1
	end := start + len(resp.Issues) - 1
	if len(resp.Issues) == 0 {
		start = 0
		end = 0
	}
	_, _ = fmt.Fprintf(w, "\nShowing %d-%d of %d (page %d/%d)\n",
		start, end, resp.Total, filters.Page, max(resp.TotalPages, 1))
}

// formatRelative formats t relative to now ("3 hours ago"), or "-" for the zero time.
func formatRelative(t, now time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// newShowCommand creates the show command for displaying one issue.
func newShowCommand(c *app.Container) *cobra.Command {
	var opts struct {
		JSON bool
	}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Display issue details",
		Long: `Display detailed information about an issue.

Examples:
  # Show issue by ID
  issues show 42

  # Output in JSON format
  issues show 42 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uc := c.ShowIssueUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ShowIssueInput{ID: args[0]})
			if err != nil {
				return err
			}

			if opts.JSON {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), controller.IssueJSON(out.Issue))
				return nil
			}

			printIssueDetails(cmd.OutOrStdout(), out.Issue, c.Clock)
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output in JSON format")

	return cmd
}

// printIssueDetails prints an issue for humans.
func printIssueDetails(w io.Writer, issue *domain.Issue, clock domain.Clock) {
	now := clock.Now()

	_, _ = fmt.Fprintf(w, "# %s\n\n", issue.Title)
	_, _ = fmt.Fprintf(w, "ID: %s\n", issue.ID)
	_, _ = fmt.Fprintf(w, "Status: %s\n", issue.Status)
	_, _ = fmt.Fprintf(w, "Priority: %s\n", issue.Priority)
	if issue.Assignee != "" {
		_, _ = fmt.Fprintf(w, "Assignee: %s\n", issue.Assignee)
	} else {
		_, _ = fmt.Fprintln(w, "Assignee: Unassigned")
	}
	if !issue.CreatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Created: %s (%s)\n",
			controller.FormatTime(issue.CreatedAt, controller.DetailTimeLayout), formatRelative(issue.CreatedAt, now))
	}
	if !issue.UpdatedAt.IsZero() {
		_, _ = fmt.Fprintf(w, "Updated: %s (%s)\n",
			controller.FormatTime(issue.UpdatedAt, controller.DetailTimeLayout), formatRelative(issue.UpdatedAt, now))
	}

	_, _ = fmt.Fprintln(w)
	if issue.Description != "" {
		_, _ = fmt.Fprintln(w, issue.Description)
	} else {
		_, _ = fmt.Fprintln(w, "(no description)")
	}
}

// newNewCommand creates the new command for creating issues.
func newNewCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Status      string
		Priority    string
		Assignee    string
		From        string
		DryRun      bool
	}

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a new issue",
		Long: `Create a new issue.

Status defaults to Open and priority to Medium.

Examples:
  # Create an issue
  issues new --title "Login page broken"

  # Create an assigned, high-priority issue with a body
  issues new --title "Crash on start" --priority high --assignee @me --body "$(cat <<'EOF'
## Steps
1. Start the app
EOF
)"

  # Create issues from a file (multiple issues supported)
  issues new --from issues.md

  # Preview without creating
  issues new --from issues.md --dry-run

File format for --from:
  ---
  title: Issue 1
  priority: high
  ---
  Description here.

  ---
  title: Issue 2
  assignee: alice
  status: in_progress
  ---`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.From != "" {
				return createIssuesFromFile(cmd, c, opts.From, opts.DryRun)
			}

			// Require --title when not using --from
			if opts.Title == "" {
				return errors.New(`required flag(s) "title" not set`)
			}

			draft := domain.IssueDraft{
				Title:       opts.Title,
				Description: opts.Description,
				Assignee:    opts.Assignee,
			}
			if opts.Status != "" {
				s, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return err
				}
				draft.Status = s
			}
			if opts.Priority != "" {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				draft.Priority = p
			}

			uc := c.CreateIssueUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.CreateIssueInput{
				Draft:  draft,
				DryRun: opts.DryRun,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if opts.DryRun {
				_, _ = fmt.Fprintln(w, "Dry run - issue that would be created:")
				_, _ = fmt.Fprintln(w)
				return draftfile.Write(w, []domain.IssueDraft{out.Draft})
			}

			_, _ = fmt.Fprintf(w, "Created issue %s\n", out.Issue.ID)
			return nil
		},
	}

	// Flags (--title is conditionally required based on --from)
	cmd.Flags().StringVar(&opts.Title, "title", "", "Issue title (required unless --from is used)")
	cmd.Flags().StringVar(&opts.Description, "body", "", "Issue description (Markdown)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "Initial status (default: open)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "Priority (default: medium)")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "Assignee (@me = git user.name)")
	cmd.Flags().StringVar(&opts.From, "from", "", "Create issues from a Markdown file")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Validate and print without creating")

	return cmd
}

// createIssuesFromFile creates issues from a Markdown file.
func createIssuesFromFile(cmd *cobra.Command, c *app.Container, filePath string, dryRun bool) error {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	uc := c.CreateIssuesFromFileUseCase()
	out, err := uc.Execute(cmd.Context(), usecase.CreateIssuesFromFileInput{
		Content: string(content),
		DryRun:  dryRun,
	})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if dryRun {
		_, _ = fmt.Fprintln(w, "Dry run - issues that would be created:")
		_, _ = fmt.Fprintln(w)
		return draftfile.Write(w, out.Drafts)
	}

	for _, issue := range out.Issues {
		_, _ = fmt.Fprintf(w, "Created issue %s: %s\n", issue.ID, issue.Title)
	}
	_, _ = fmt.Fprintf(w, "\nCreated %d issue(s)\n", len(out.Issues))
	return nil
}

// newEditCommand creates the edit command for updating issues.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Title       string
		Description string
		Status      string
		Priority    string
		Assignee    string
		Unassign    bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an issue",
		Long: `Edit an existing issue.

Only the fields whose flags are given are sent.

Examples:
  # Change the title
  issues edit 42 --title "New title"

  # Start work on it
  issues edit 42 --status in_progress --assignee @me

  # Clear the assignee
  issues edit 42 --unassign`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.IssuePatch
			flags := cmd.Flags()

			if flags.Changed("title") {
				patch.Title = &opts.Title
			}
			if flags.Changed("body") {
				patch.Description = &opts.Description
			}
			if flags.Changed("status") {
				s, err := domain.ParseStatus(opts.Status)
				if err != nil {
					return err
				}
				patch.Status = &s
			}
			if flags.Changed("priority") {
				p, err := domain.ParsePriority(opts.Priority)
				if err != nil {
					return err
				}
				patch.Priority = &p
			}
			if flags.Changed("assignee") && opts.Unassign {
				return errors.New("cannot use --assignee and --unassign together")
			}
			if flags.Changed("assignee") {
				patch.Assignee = &opts.Assignee
			}
			if opts.Unassign {
				empty := ""
				patch.Assignee = &empty
			}

			uc := c.UpdateIssueUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.UpdateIssueInput{
				ID:    args[0],
				Patch: patch,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated issue %s\n", out.Issue.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "New title")
	cmd.Flags().StringVar(&opts.Description, "body", "", "New description (Markdown)")
	cmd.Flags().StringVar(&opts.Status, "status", "", "New status (open, in_progress, closed)")
	cmd.Flags().StringVar(&opts.Priority, "priority", "", "New priority (low, medium, high)")
	cmd.Flags().StringVar(&opts.Assignee, "assignee", "", "New assignee (@me = git user.name)")
	cmd.Flags().BoolVar(&opts.Unassign, "unassign", false, "Clear the assignee")

	return cmd
}

// newAssigneesCommand creates the assignees command.
func newAssigneesCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assignees",
		Short: "List known assignees",
		Long: `List the distinct assignees of existing issues, one per line.

These are the choices offered by the assignee filter in the TUI.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.ListAssigneesUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.ListAssigneesInput{})
			if err != nil {
				return err
			}

			for _, name := range out.Assignees {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			if out.Scanned < out.Total {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Note: only the first %d of %d issues were scanned\n", out.Scanned, out.Total)
			}
			return nil
		},
	}
	return cmd
}
