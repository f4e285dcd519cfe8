package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"shelfmerge/internal/adapters/tui/styles"
	"shelfmerge/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderColumn renders one catalog's side of a record as a bordered column.
// Fields in highlight are marked as disagreeing.
func RenderColumn(header string, b *domain.Book, src domain.Source, highlight map[domain.Field]bool, width int) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, fv := range b.Describe() {
		label := styles.FieldLabel.Render(string(fv.Field) + ":")
		if highlight[fv.Field] {
			label = styles.FieldDiffer.Render("! " + string(fv.Field) + ":")
		}

		value := fv.Values[src]
		if fv.Absent[src] {
			value = styles.Absent.Render("absent")
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", label, value))
	}
	return styles.Column.Width(width).Render(strings.TrimSuffix(sb.String(), "\n"))
}

// RenderRecord renders both sides of a record next to each other
func RenderRecord(b *domain.Book, fields []domain.Field, width int) string {
	highlight := make(map[domain.Field]bool, len(fields))
	for _, f := range fields {
		highlight[f] = true
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		RenderColumn(styles.SourceHeader(domain.SourceGoodreads), b, domain.SourceGoodreads, highlight, width),
		" ",
		RenderColumn(styles.SourceHeader(domain.SourceStoryGraph), b, domain.SourceStoryGraph, highlight, width),
	)
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Muted adds muted text followed by a newline
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	v.b.WriteString(styles.MutedText.Render(text))
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}
