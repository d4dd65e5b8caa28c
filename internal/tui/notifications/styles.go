package notifications

import "github.com/thenoetrevino/mytasks/internal/tui/theme"

type style struct {
	icon       string
	foreground string
}

func (s Severity) style() style {
	switch s {
	case Success:
		return style{icon: "✓", foreground: theme.SuccessFg}
	case Error:
		return style{icon: "✕", foreground: theme.ErrorFg}
	default:
		return style{icon: "🔔", foreground: theme.Accent}
	}
}
