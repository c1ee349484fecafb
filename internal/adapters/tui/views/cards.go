package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"powerboard/internal/adapters/tui/styles"
	"powerboard/internal/application"
	"powerboard/internal/domain"
)

// PowerProvider is the slice of the refresh controller the cards view reads.
type PowerProvider interface {
	Status() string
	Snapshots() (domain.SnapshotSet, bool)
}

// CardsKeyMap defines key bindings for the cards view
type CardsKeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Grab   key.Binding
	Cancel key.Binding
	Retry  key.Binding
	Reset  key.Binding
	Copy   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

var CardsKeys = CardsKeyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Grab: key.NewBinding(
		key.WithKeys(" ", "enter"),
		key.WithHelp("space/enter", "grab/drop"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry sign-in"),
	),
	Reset: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset order"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy summary"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// CardsModel renders one card per character, ordered by the reconciler, with
// keyboard grab-and-drop reordering.
type CardsModel struct {
	ViewState
	provider PowerProvider
	order    *application.Reconciler
	cursor   int
}

// NewCardsModel creates the cards view over the given provider and order.
func NewCardsModel(provider PowerProvider, order *application.Reconciler) *CardsModel {
	return &CardsModel{provider: provider, order: order}
}

// Init initializes the cards view
func (m *CardsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the cards view
func (m *CardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, CardsKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, CardsKeys.Left):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, CardsKeys.Right):
			if m.cursor < len(m.currentOrder())-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, CardsKeys.Grab):
			return m, m.grabOrDrop()

		case key.Matches(msg, CardsKeys.Cancel):
			m.order.DragEnd()
			return m, nil

		case key.Matches(msg, CardsKeys.Retry):
			return m, func() tea.Msg { return RetryAuthMsg{} }

		case key.Matches(msg, CardsKeys.Reset):
			if err := m.order.Reset(); err != nil {
				m.SetMessage(err.Error(), true)
				return m, nil
			}
			m.SetMessage("Order reset", false)
			return m, m.orderChanged()

		case key.Matches(msg, CardsKeys.Copy):
			return m, m.copySummary()

		case key.Matches(msg, CardsKeys.Help):
			return m, func() tea.Msg { return SwitchToHelpMsg{} }
		}
	}

	return m, nil
}

func (m *CardsModel) currentOrder() domain.DisplayOrder {
	return m.order.EffectiveOrder()
}

func (m *CardsModel) cursorID() string {
	order := m.currentOrder()
	if len(order) == 0 {
		return ""
	}
	if m.cursor >= len(order) {
		m.cursor = len(order) - 1
	}
	return order[m.cursor]
}

func (m *CardsModel) grabOrDrop() tea.Cmd {
	id := m.cursorID()
	if id == "" {
		return nil
	}
	if m.order.Dragging() == "" {
		m.order.DragStart(id)
		return nil
	}
	if m.order.DropOn(id) {
		return m.orderChanged()
	}
	m.order.DragEnd()
	return nil
}

func (m *CardsModel) orderChanged() tea.Cmd {
	order := m.currentOrder()
	return func() tea.Msg {
		return OrderChangedMsg{Order: order}
	}
}

func (m *CardsModel) copySummary() tea.Cmd {
	set, ok := m.provider.Snapshots()
	if !ok {
		m.SetMessage("Nothing to copy yet", true)
		return nil
	}
	agg := set.Aggregates()
	summary := fmt.Sprintf("Power %d (+%d artifact) = %d", agg.Overall, agg.Artifact, agg.Total)
	if err := clipboard.WriteAll(summary); err != nil {
		m.SetMessage("Clipboard: "+err.Error(), true)
		return nil
	}
	m.SetMessage("Copied: "+summary, false)
	return nil
}

// View renders the cards view
func (m *CardsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Powerboard"))
	b.WriteString("\n")

	set, ok := m.provider.Snapshots()
	status := m.provider.Status()

	if !ok || len(set) == 0 {
		if status == "" {
			status = "Loading..."
		}
		b.WriteString("\n")
		b.WriteString(styles.StatusText.Render(status))
		b.WriteString("\n")
		return styles.App.Render(b.String())
	}

	agg := set.Aggregates()
	b.WriteString(styles.Aggregates.Render(
		fmt.Sprintf("Power %d  ·  Artifact +%d  ·  Total %d", agg.Overall, agg.Artifact, agg.Total)))
	b.WriteString("\n\n")

	order := m.currentOrder()
	if m.cursor >= len(order) {
		m.cursor = len(order) - 1
	}

	dragging := m.order.Dragging()
	cards := make([]string, 0, len(order))
	for i, id := range order {
		snap, found := set.ByID(id)
		if !found {
			continue
		}
		cards = append(cards, m.renderCard(snap, i == m.cursor, id == dragging))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	b.WriteString("\n")

	if status != "" {
		b.WriteString("\n")
		b.WriteString(styles.StatusText.Render(status))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		if m.MessageErr {
			b.WriteString(styles.ErrorMsg.Render(m.Message))
		} else {
			b.WriteString(styles.Success.Render(m.Message))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer(dragging != ""))

	return styles.App.Render(b.String())
}

func (m *CardsModel) renderCard(snap domain.CharacterSnapshot, selected, grabbed bool) string {
	accent := styles.ClassColor(snap.Class)
	if snap.EmblemColor != "" {
		accent = lipgloss.Color(snap.EmblemColor)
	}

	var lines []string
	lines = append(lines, styles.CardClass.Foreground(accent).Render(snap.Class))
	lines = append(lines, styles.CardPower.Render(fmt.Sprintf("%d", snap.Light)))
	if snap.ArtifactBonus > 0 {
		lines = append(lines, styles.CardArtifact.Render(fmt.Sprintf("+%d", snap.ArtifactBonus)))
	} else {
		lines = append(lines, "")
	}

	content := strings.Join(lines, "\n")
	switch {
	case grabbed:
		return styles.CardGrabbed.Render(content)
	case selected:
		return styles.CardSelected.Render(content)
	default:
		return styles.Card.Render(content)
	}
}

func (m *CardsModel) footer(dragging bool) string {
	if dragging {
		return styles.HelpKey.Render("space/enter") + styles.HelpDesc.Render(" drop") +
			styles.HelpSeparator.String() +
			styles.HelpKey.Render("esc") + styles.HelpDesc.Render(" cancel")
	}
	parts := []string{
		styles.HelpKey.Render("h/l") + styles.HelpDesc.Render(" move"),
		styles.HelpKey.Render("space") + styles.HelpDesc.Render(" grab"),
		styles.HelpKey.Render("y") + styles.HelpDesc.Render(" copy"),
		styles.HelpKey.Render("?") + styles.HelpDesc.Render(" help"),
		styles.HelpKey.Render("q") + styles.HelpDesc.Render(" quit"),
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}
