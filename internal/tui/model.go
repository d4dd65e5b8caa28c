// Package tui is the terminal front end. Each screen renders the snapshots
// of its view model and turns key presses into the view model's intents.
package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/mytasks/internal/app"
	"github.com/thenoetrevino/mytasks/internal/config"
	"github.com/thenoetrevino/mytasks/internal/models"
	"github.com/thenoetrevino/mytasks/internal/tui/notifications"
	"github.com/thenoetrevino/mytasks/internal/tui/theme"
)

// Model represents the application state for the TUI
type Model struct {
	ctx  context.Context
	app  *app.App
	keys config.KeyMappings

	width  int
	height int

	route        models.Route
	notification *notifications.Notification

	home    *homeScreen
	form    *formScreen
	details *detailsScreen
}

// New creates the TUI model on top of a wired application
func New(ctx context.Context, a *app.App, cfg *config.Config) *Model {
	theme.Init(cfg.Theme)
	return &Model{
		ctx:   ctx,
		app:   a,
		keys:  cfg.KeyMappings,
		route: models.RouteHome,
	}
}

// Init opens the home screen, which starts the live task query
// Required by tea.Model interface
func (m *Model) Init() tea.Cmd {
	m.home = newHomeScreen(m.ctx, m.app.NewHome())
	return m.home.listen()
}

// Close disposes every open screen
func (m *Model) Close() {
	m.closeForm()
	m.closeDetails()
	if m.home != nil {
		m.home.close()
		m.home = nil
	}
}

// Route returns the screen currently shown
func (m *Model) Route() models.Route {
	return m.route
}

// Notification returns the message in the status line, if any
func (m *Model) Notification() (notifications.Notification, bool) {
	if m.notification == nil {
		return notifications.Notification{}, false
	}
	return *m.notification, true
}

func (m *Model) notify(n notifications.Notification) {
	m.notification = &n
}

// Update handles all messages and updates the model.
// Implements tea.Model interface.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.form != nil {
			m.form.resize(msg.Width)
		}
		return m, nil

	case homeStateMsg:
		return m, m.handleHomeState(msg)
	case formStateMsg:
		return m, m.handleFormState(msg)
	case detailsStateMsg:
		return m, m.handleDetailsState(msg)

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// Any key dismisses the previous notification
		m.notification = nil
		return m, m.handleKey(msg)
	}

	// Cursor blinks and other component messages go to the open form
	if m.form != nil && m.route != models.RouteHome && m.route != models.RouteTaskDetails {
		return m, m.form.update(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.route {
	case models.RouteNewTask, models.RouteUpdateTask:
		return m.handleFormKey(msg)
	case models.RouteTaskDetails:
		return m.handleDetailsKey(msg)
	default:
		return m.handleHomeKey(msg)
	}
}

// View renders the current state of the application.
// Implements tea.Model interface.
func (m *Model) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.Content = m.render()
	return view
}
