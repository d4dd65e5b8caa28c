// Package theme holds the colors of the terminal UI
package theme

import "github.com/thenoetrevino/mytasks/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Accent    string
	Muted     string
	Done      string
	ErrorFg   string
	SuccessFg string
	Selected  string
)

func init() {
	Init(config.DefaultTheme())
}

// Init initializes the theme colors from the configured theme
func Init(t config.Theme) {
	Accent = t.Accent
	Muted = t.Muted
	Done = t.Done
	ErrorFg = t.Error
	SuccessFg = t.Success
	Selected = t.Selected
}
