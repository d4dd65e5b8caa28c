package config

// Theme holds the colors used by the terminal UI, as hex strings
type Theme struct {
	Accent   string `yaml:"accent"`
	Muted    string `yaml:"muted"`
	Done     string `yaml:"done"`
	Error    string `yaml:"error"`
	Success  string `yaml:"success"`
	Selected string `yaml:"selected"`
}

// DefaultTheme returns the default purple theme
func DefaultTheme() Theme {
	return Theme{
		Accent:   "#7D56F4",
		Muted:    "#6C7086",
		Done:     "#A6E3A1",
		Error:    "#F38BA8",
		Success:  "#94E2D5",
		Selected: "#CBA6F7",
	}
}

// applyDefaults fills in missing colors with defaults
func (t *Theme) applyDefaults() {
	d := DefaultTheme()
	for _, f := range []struct {
		v   *string
		def string
	}{
		{&t.Accent, d.Accent},
		{&t.Muted, d.Muted},
		{&t.Done, d.Done},
		{&t.Error, d.Error},
		{&t.Success, d.Success},
		{&t.Selected, d.Selected},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
}
