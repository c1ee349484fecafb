package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"powerboard/internal/adapters/tui/views"
	"powerboard/internal/application"
	"powerboard/internal/ports"
)

// viewKind represents the current view
type viewKind int

const (
	viewCards viewKind = iota
	viewHelp
)

// App is the main TUI application model. It owns the view models and routes
// controller change notifications into bubbletea messages.
type App struct {
	controller *application.Controller
	order      *application.Reconciler
	analytics  ports.AnalyticsSink
	log        *zap.Logger

	state viewKind
	cards *views.CardsModel
	help  *views.HelpModel

	updates chan struct{}

	width  int
	height int
}

// NewApp creates a new TUI application. Pass a.Notify to the controller's
// WithOnChange option so state transitions repaint the screen.
func NewApp(controller *application.Controller, order *application.Reconciler, analytics ports.AnalyticsSink, log *zap.Logger) *App {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		controller: controller,
		order:      order,
		analytics:  analytics,
		log:        log,
		state:      viewCards,
		updates:    make(chan struct{}, 1),
	}
	a.cards = views.NewCardsModel(controller, order)
	a.help = views.NewHelpModel()
	return a
}

// Notify schedules a repaint. Safe to call from any goroutine; coalesces
// bursts into a single pending update.
func (a *App) Notify() {
	select {
	case a.updates <- struct{}{}:
	default:
	}
}

type stateChangedMsg struct{}

type authRetryDoneMsg struct{ err error }

func (a *App) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		<-a.updates
		return stateChangedMsg{}
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.waitForUpdate()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.cards.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case stateChangedMsg:
		if set, ok := a.controller.Snapshots(); ok {
			a.order.SetSnapshots(set)
		}
		return a, a.waitForUpdate()

	case views.SwitchToHelpMsg:
		a.state = viewHelp
		return a, nil

	case views.SwitchToCardsMsg:
		a.state = viewCards
		return a, nil

	case views.RetryAuthMsg:
		return a, a.retryAuth()

	case authRetryDoneMsg:
		if msg.err != nil {
			a.log.Warn("manual auth", zap.Error(msg.err))
			a.cards.SetMessage("Sign-in failed: "+msg.err.Error(), true)
		}
		return a, nil

	case views.OrderChangedMsg:
		a.analytics.ReportEvent("ui", "reorder", strings.Join(msg.Order, ","))
		return a, nil
	}

	var cmd tea.Cmd
	switch a.state {
	case viewCards:
		_, cmd = a.cards.Update(msg)
	case viewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

func (a *App) retryAuth() tea.Cmd {
	return func() tea.Msg {
		return authRetryDoneMsg{err: a.controller.ManualStartAuth()}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case viewHelp:
		return a.help.View()
	default:
		return a.cards.View()
	}
}
