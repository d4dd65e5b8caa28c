package notifications

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
)

// RenderInline renders a compact single line notification no wider than width
func RenderInline(n Notification, width int) string {
	style := n.Severity.style()

	content := style.icon + " " + n.Message
	if width > 2 {
		content = truncate.StringWithTail(content, uint(width-2), "…")
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(style.foreground)).
		Bold(n.Severity == Error).
		Padding(0, 1).
		Render(content)
}
