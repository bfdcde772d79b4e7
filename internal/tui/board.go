// Package tui renders the run board in the terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/coscribe/coscribe/internal/engine"
	"github.com/coscribe/coscribe/pkg/models"
)

// BoardRenderer renders a board projection as styled columns.
type BoardRenderer struct {
	width int

	titleStyle      lipgloss.Style
	columnStyle     lipgloss.Style
	headerStyle     lipgloss.Style
	todoStyle       lipgloss.Style
	inProgressStyle lipgloss.Style
	blockedStyle    lipgloss.Style
	doneStyle       lipgloss.Style
	footerStyle     lipgloss.Style
}

// NewBoardRenderer creates a renderer with default styles.
func NewBoardRenderer() *BoardRenderer {
	return &BoardRenderer{
		width: 100,

		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Padding(0, 1),

		columnStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1),

		headerStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("75")),

		todoStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")), // Gray

		inProgressStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")), // Green

		blockedStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")), // Orange

		doneStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("28")), // Dark green

		footerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true),
	}
}

// SetWidth updates the total render width.
func (r *BoardRenderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Render produces the full board view.
func (r *BoardRenderer) Render(board *engine.Board) string {
	if board == nil {
		return ""
	}

	colWidth := r.width/4 - 2
	if colWidth < 16 {
		colWidth = 16
	}

	columns := []string{
		r.column("Todo", board.Columns.Todo, r.todoStyle, colWidth),
		r.column("In Progress", board.Columns.InProgress, r.inProgressStyle, colWidth),
		r.column("Blocked", board.Columns.Blocked, r.blockedStyle, colWidth),
		r.column("Done", board.Columns.Done, r.doneStyle, colWidth),
	}

	var b strings.Builder
	b.WriteString(r.titleStyle.Render(fmt.Sprintf("Run %s", board.RunID)))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	b.WriteString(r.footerStyle.Render(fmt.Sprintf(
		"remaining: %d  needs input: %d  open branch proposals: %d",
		board.Readiness.TasksRemaining,
		board.Readiness.UnresolvedNeedsInput,
		board.Readiness.OpenBranchProposals,
	)))
	return b.String()
}

// column renders one status column.
func (r *BoardRenderer) column(name string, tasks []*models.AgentTask, style lipgloss.Style, width int) string {
	var b strings.Builder
	b.WriteString(r.headerStyle.Render(fmt.Sprintf("%s (%d)", name, len(tasks))))
	for _, t := range tasks {
		b.WriteString("\n")
		b.WriteString(style.Render(taskLine(t, width)))
	}
	return r.columnStyle.Width(width).Render(b.String())
}

// taskLine formats a single task entry, truncated to the column width.
func taskLine(t *models.AgentTask, width int) string {
	line := fmt.Sprintf("%s %s", statusGlyph(t.Status), t.Title)
	if t.AssignedAgentID != "" {
		line += " @" + t.AssignedAgentID
	}
	if width > 3 && len(line) > width {
		line = line[:width-3] + "..."
	}
	return line
}

// statusGlyph returns the indicator character for a task status.
func statusGlyph(status models.TaskStatus) string {
	switch status {
	case models.TaskStatusTodo:
		return "○"
	case models.TaskStatusInProgress:
		return "●"
	case models.TaskStatusBlocked:
		return "■"
	case models.TaskStatusDone:
		return "✓"
	default:
		return "?"
	}
}
