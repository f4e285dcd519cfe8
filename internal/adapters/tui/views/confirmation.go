package views

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"shelfmerge/internal/adapters/tui/styles"
	"shelfmerge/internal/domain"
)

// ConfirmKeyMap defines key bindings for the match dialog
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
	Abort   key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "m"),
		key.WithHelp("y/m", "merge"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "s", "esc"),
		key.WithHelp("n/s", "skip"),
	),
	Abort: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "stop collecting"),
	),
}

// MatchModel asks whether two one-sided records describe the same book
type MatchModel struct {
	ViewState
	Current   *domain.Book
	Candidate *domain.Book
	Keys      ConfirmKeyMap

	decision domain.Decision
	answered bool
	aborted  bool
}

// NewMatchModel creates the dialog for one candidate pair
func NewMatchModel(current, candidate *domain.Book) *MatchModel {
	return &MatchModel{
		Current:   current,
		Candidate: candidate,
		Keys:      DefaultConfirmKeys,
	}
}

// Decision returns the answer and whether one was given
func (m *MatchModel) Decision() (domain.Decision, bool) {
	return m.decision, m.answered
}

// Aborted reports whether the user asked to stop
func (m *MatchModel) Aborted() bool {
	return m.aborted
}

func (m *MatchModel) Init() tea.Cmd {
	return nil
}

func (m *MatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Confirm):
			m.decision, m.answered = domain.DecisionConfirm, true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Cancel):
			m.decision, m.answered = domain.DecisionDecline, true
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Abort):
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *MatchModel) View() string {
	present, missing, _ := m.Current.State.Single()
	width := m.ColumnWidth()

	columns := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderColumn("Record from "+styles.SourceHeader(present), m.Current, present, nil, width),
		" ",
		RenderColumn("Candidate from "+styles.SourceHeader(missing), m.Candidate, missing, nil, width),
	)

	return NewViewBuilder().
		Title("Same book?").
		Line(columns).
		BlankLine().
		Help(m.Keys.Confirm, m.Keys.Cancel, m.Keys.Abort).
		String()
}
