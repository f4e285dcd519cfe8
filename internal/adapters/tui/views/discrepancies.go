package views

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"shelfmerge/internal/adapters/tui/styles"
	"shelfmerge/internal/application/commands"
	"shelfmerge/internal/domain"
)

// PagerKeyMap defines key bindings for the discrepancy pager
type PagerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	Copy     key.Binding
	Edit     key.Binding
	Quit     key.Binding
}

// DefaultPagerKeys returns the default pager key bindings
var DefaultPagerKeys = PagerKeyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j", "enter", " "), key.WithHelp("↓/j/enter", "next")),
	PrevPage: key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
	NextPage: key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy title")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit collection")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// pagerChrome is the number of lines the pager draws around the report list
const pagerChrome = 24

// OpenEditorMsg requests the stored collection be opened in the editor
type OpenEditorMsg struct {
	Path string
}

// DiscrepancyModel pages through the records whose catalogs disagree
type DiscrepancyModel struct {
	ViewState
	result    *commands.AnalyzeResult
	paginator *Paginator
	Keys      PagerKeyMap

	// EditPath enables the edit key when set
	EditPath string
	copy     func(string) error
}

// NewDiscrepancyModel creates a pager over an analysis result
func NewDiscrepancyModel(result *commands.AnalyzeResult) *DiscrepancyModel {
	p := NewPaginator(defaultPageRows)
	p.SetTotal(len(result.Reports))
	return &DiscrepancyModel{
		result:    result,
		paginator: p,
		Keys:      DefaultPagerKeys,
		copy:      clipboard.WriteAll,
	}
}

// Selected returns the report under the cursor, if any
func (m *DiscrepancyModel) Selected() (commands.Report, bool) {
	if len(m.result.Reports) == 0 {
		return commands.Report{}, false
	}
	return m.result.Reports[m.paginator.Cursor()], true
}

func (m *DiscrepancyModel) Init() tea.Cmd {
	return nil
}

func (m *DiscrepancyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.paginator.FitHeight(msg.Height, pagerChrome)

	case tea.KeyMsg:
		m.SetMessage("", false)
		switch {
		case key.Matches(msg, m.Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.Keys.Up):
			m.paginator.CursorUp()
		case key.Matches(msg, m.Keys.Down):
			m.paginator.CursorDown()
		case key.Matches(msg, m.Keys.PrevPage):
			m.paginator.PrevPage()
		case key.Matches(msg, m.Keys.NextPage):
			m.paginator.NextPage()
		case key.Matches(msg, m.Keys.Copy):
			m.copySelected()
		case key.Matches(msg, m.Keys.Edit):
			if m.EditPath != "" {
				path := m.EditPath
				return m, func() tea.Msg { return OpenEditorMsg{Path: path} }
			}
		}
	}
	return m, nil
}

func (m *DiscrepancyModel) copySelected() {
	r, ok := m.Selected()
	if !ok {
		return
	}
	title := r.Book.DisplayTitle()
	if err := m.copy(title); err != nil {
		m.SetMessage(fmt.Sprintf("Copy failed: %v", err), true)
		return
	}
	m.SetMessage("Copied: "+title, false)
}

func (m *DiscrepancyModel) View() string {
	vb := NewViewBuilder().
		Title("Discrepancies").
		Subtitle(fmt.Sprintf("%d merged • %d unresolved • %d disagree",
			m.result.MergedCount, m.result.UnresolvedCount, len(m.result.Reports)))

	if len(m.result.Reports) == 0 {
		return vb.Line("Both catalogs agree on every merged record.").
			BlankLine().
			Help(m.Keys.Quit).
			String()
	}

	start, end := m.paginator.VisibleRange()
	for i := start; i < end; i++ {
		r := m.result.Reports[i]
		line := fmt.Sprintf("%3d. %s  %s", i+1, r.Book.DisplayTitle(), fieldList(r.Fields))
		if i == m.paginator.Cursor() {
			vb.Line(styles.RowSelected.Render(line))
		} else {
			vb.Line(styles.Row.Render(line))
		}
	}
	vb.Muted(fmt.Sprintf("page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages()))
	vb.BlankLine()

	if r, ok := m.Selected(); ok {
		vb.Line(RenderRecord(r.Book, r.Fields, m.ColumnWidth()))
	}
	vb.BlankLine().Message(m.Message, m.MessageErr)

	bindings := []key.Binding{m.Keys.Up, m.Keys.Down, m.Keys.NextPage, m.Keys.Copy}
	if m.EditPath != "" {
		bindings = append(bindings, m.Keys.Edit)
	}
	bindings = append(bindings, m.Keys.Quit)
	return vb.Help(bindings...).String()
}

func fieldList(fields []domain.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return styles.FieldDiffer.Render("[" + strings.Join(names, ", ") + "]")
}
