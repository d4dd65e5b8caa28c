package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/thenoetrevino/mytasks/internal/feature/home"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/tui/components"
	"github.com/thenoetrevino/mytasks/internal/tui/notifications"
)

// chrome is the number of lines used by the header and the status line
const chrome = 4

func (m *Model) render() string {
	if m.width == 0 {
		return "Loading..."
	}

	var body string
	switch m.route {
	case models.RouteNewTask, models.RouteUpdateTask:
		body = m.viewForm()
	case models.RouteTaskDetails:
		body = m.viewDetails()
	default:
		body = m.viewHome()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(),
		body,
		m.viewStatus(),
	)
}

func (m *Model) viewHeader() string {
	title := "My tasks"
	switch m.route {
	case models.RouteNewTask:
		title = "New task"
	case models.RouteUpdateTask:
		title = "Edit task"
	case models.RouteTaskDetails:
		title = "Task"
	}
	return headerStyle().Render(title) + "\n"
}

func (m *Model) viewHome() string {
	h := m.home
	if h == nil {
		return ""
	}
	if h.state.OpenDialog == home.DialogExit {
		box := dialogBoxStyle().
			Width(40).
			Render("Quit mytasks?\n\n[y]es  [n]o")
		return lipgloss.Place(m.width, max(1, m.height-chrome), lipgloss.Center, lipgloss.Center, box)
	}

	listHeight := m.height - chrome
	var shortcuts string
	if h.state.IsFabExpanded {
		shortcuts = m.viewShortcuts()
		listHeight -= lipgloss.Height(shortcuts)
	}

	list := components.RenderTaskList(components.TaskListProps{
		Tasks:    h.state.Tasks,
		Selected: h.cursor,
		Width:    m.width,
		Height:   listHeight,
	})

	if shortcuts == "" {
		return list
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, "", shortcuts)
}

func (m *Model) viewShortcuts() string {
	rows := []string{
		fmt.Sprintf("%-8s new task", m.keys.AddTask),
		fmt.Sprintf("%-8s open", m.keys.ViewTask),
		fmt.Sprintf("%-8s toggle done", m.keys.ToggleTask),
		fmt.Sprintf("%-8s reload", m.keys.Reload),
		fmt.Sprintf("%-8s quit", m.keys.Quit),
	}
	return panelStyle().Render(strings.Join(rows, "\n"))
}

func (m *Model) viewDetails() string {
	d := m.details
	if d == nil || d.state.Task == nil {
		return mutedStyle().Render("No task selected")
	}
	task := d.state.Task

	status := "pending"
	if task.Completed {
		status = "done"
	}
	meta := mutedStyle().Render(fmt.Sprintf("#%d  %s  due %s",
		task.ID, status, task.DueDate.Local().Format(models.DueDateLayout)))

	desc := components.RenderDescription(components.DescriptionProps{
		Description: task.Description,
		Width:       max(20, m.width-4),
	})

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Render(task.Title),
		meta,
		"",
		desc,
	)
	if d.state.IsLoading {
		content += "\n\n" + mutedStyle().Render("Deleting...")
	}
	return content
}

func (m *Model) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}
	content := f.fields.View()
	if f.state.IsLoading {
		content += "\n" + mutedStyle().Render("Saving...")
	}
	return panelStyle().Width(max(30, m.width-2)).Render(content)
}

func (m *Model) viewStatus() string {
	if n, ok := m.Notification(); ok {
		return "\n" + notifications.RenderInline(n, m.width)
	}

	var hint string
	switch m.route {
	case models.RouteNewTask, models.RouteUpdateTask:
		hint = fmt.Sprintf("%s save  %s next field  %s cancel", m.keys.SaveForm, m.keys.NextField, m.keys.Back)
	case models.RouteTaskDetails:
		hint = fmt.Sprintf("%s edit  %s delete  %s back", m.keys.EditTask, m.keys.DeleteTask, m.keys.Back)
	default:
		hint = fmt.Sprintf("%s shortcuts", m.keys.ToggleShortcut)
	}

	link := "offline"
	if m.app.Connected() {
		link = "synced"
	}
	return "\n" + mutedStyle().Render(hint+"  ·  "+link)
}
