package config

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Task list
	AddTask        string `yaml:"add_task"`
	ViewTask       string `yaml:"view_task"`
	ToggleTask     string `yaml:"toggle_task"`
	PrevTask       string `yaml:"prev_task"`
	NextTask       string `yaml:"next_task"`
	ToggleShortcut string `yaml:"toggle_shortcuts"`
	Reload         string `yaml:"reload"`

	// Details
	EditTask   string `yaml:"edit_task"`
	DeleteTask string `yaml:"delete_task"`

	// Forms
	SaveForm  string `yaml:"save_form"`
	NextField string `yaml:"next_field"`

	// Other
	Back string `yaml:"back"`
	Quit string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTask:        "a",
		ViewTask:       "enter",
		ToggleTask:     "space",
		PrevTask:       "k",
		NextTask:       "j",
		ToggleShortcut: "?",
		Reload:         "r",

		EditTask:   "e",
		DeleteTask: "d",

		SaveForm:  "ctrl+s",
		NextField: "tab",

		Back: "esc",
		Quit: "q",
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()

	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}

	fill(&k.AddTask, defaults.AddTask)
	fill(&k.ViewTask, defaults.ViewTask)
	fill(&k.ToggleTask, defaults.ToggleTask)
	fill(&k.PrevTask, defaults.PrevTask)
	fill(&k.NextTask, defaults.NextTask)
	fill(&k.ToggleShortcut, defaults.ToggleShortcut)
	fill(&k.Reload, defaults.Reload)
	fill(&k.EditTask, defaults.EditTask)
	fill(&k.DeleteTask, defaults.DeleteTask)
	fill(&k.SaveForm, defaults.SaveForm)
	fill(&k.NextField, defaults.NextField)
	fill(&k.Back, defaults.Back)
	fill(&k.Quit, defaults.Quit)
}
