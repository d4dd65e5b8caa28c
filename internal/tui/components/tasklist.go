package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/tui/theme"
)

type TaskListProps struct {
	Tasks    []models.Task
	Selected int
	Width    int
	Height   int
}

// RenderTaskList renders one row per task, scrolled so the selected row is visible
func RenderTaskList(props TaskListProps) string {
	if len(props.Tasks) == 0 {
		return lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)).
			Italic(true).
			Render("No tasks yet")
	}

	start, end := visibleRange(len(props.Tasks), props.Selected, props.Height)

	rows := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, RenderTaskRow(props.Tasks[i], i == props.Selected, props.Width))
	}
	return strings.Join(rows, "\n")
}

// visibleRange returns the window of rows to draw for a list of n rows
func visibleRange(n, selected, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := selected - height/2
	start = max(0, min(start, n-height))
	return start, start + height
}

// RenderTaskRow renders a single task row
func RenderTaskRow(task models.Task, selected bool, width int) string {
	check := "[ ]"
	titleStyle := lipgloss.NewStyle()
	if task.Completed {
		check = "[x]"
		titleStyle = titleStyle.Foreground(lipgloss.Color(theme.Done)).Strikethrough(true)
	}

	cursor := "  "
	if selected {
		cursor = "> "
		titleStyle = titleStyle.Bold(true).Foreground(lipgloss.Color(theme.Selected))
	}

	due := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Muted)).
		Render(task.DueDate.Format(models.DueDateLayout))

	title := task.Title
	if avail := width - len(cursor) - len(check) - lipgloss.Width(due) - 4; width > 0 && avail > 1 {
		title = truncate.StringWithTail(title, uint(avail), "…")
	}

	return fmt.Sprintf("%s%s %s  %s", cursor, check, titleStyle.Render(title), due)
}
