package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"shelfmerge/internal/adapters/tui/views"
	"shelfmerge/internal/application"
	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/domain"
	"shelfmerge/internal/ports"
)

// Confirmer implements ports.MatchConfirmer with a full-screen dialog per pair
type Confirmer struct {
	opts []tea.ProgramOption
}

var _ ports.MatchConfirmer = (*Confirmer)(nil)

// NewConfirmer creates a TUI confirmer; opts are passed to every tea.Program
func NewConfirmer(opts ...tea.ProgramOption) *Confirmer {
	return &Confirmer{opts: opts}
}

func (c *Confirmer) Confirm(ctx context.Context, current, candidate *domain.Book) (domain.Decision, error) {
	model := views.NewMatchModel(current, candidate)
	opts := append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, c.opts...)

	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return domain.DecisionDecline, ctx.Err()
		}
		return domain.DecisionDecline, fmt.Errorf("confirmation dialog: %w", err)
	}

	if model.Aborted() {
		return domain.DecisionDecline, application.ErrAborted
	}
	decision, ok := model.Decision()
	if !ok {
		return domain.DecisionDecline, application.ErrAborted
	}
	return decision, nil
}

// Pager is the analyze screen: the discrepancy list plus an editor hand-off
type Pager struct {
	list   *views.DiscrepancyModel
	editor ports.EditorOpener
	err    error
}

// NewPager wraps a discrepancy list. With a non-nil editor the stored file at
// path can be opened from the pager.
func NewPager(result *commands.AnalyzeResult, editor ports.EditorOpener, path string) *Pager {
	list := views.NewDiscrepancyModel(result)
	if editor != nil {
		list.EditPath = path
	}
	return &Pager{list: list, editor: editor}
}

type editorFinishedMsg struct{ err error }

func (p *Pager) Init() tea.Cmd {
	return p.list.Init()
}

func (p *Pager) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case views.OpenEditorMsg:
		return p, p.openEditor(msg.Path)
	case editorFinishedMsg:
		if msg.err != nil {
			p.list.SetMessage(fmt.Sprintf("Editor: %v", msg.err), true)
		} else {
			p.list.SetMessage("Edits are picked up on the next analyze", false)
		}
		return p, nil
	}

	_, cmd := p.list.Update(msg)
	return p, cmd
}

func (p *Pager) openEditor(path string) tea.Cmd {
	if p.editor == nil {
		return nil
	}

	cmd, err := p.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

func (p *Pager) View() string {
	return p.list.View()
}

// Run shows the pager until the user quits
func (p *Pager) Run(ctx context.Context, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(p, opts...).Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("discrepancy pager: %w", err)
	}
	return ctx.Err()
}
