package view

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/message"

	"github.com/raizdigital/especies/pkg/controller"
	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/species"
)

var (
	primaryGreen = lipgloss.Color("#2e7d32")
	grayDark     = lipgloss.Color("#555555")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(primaryGreen)
	emptyStyle  = lipgloss.NewStyle().Italic(true).Foreground(grayDark).Padding(1, 2)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	nameStyle   = lipgloss.NewStyle().Foreground(primaryGreen).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(grayDark).Padding(0, 1)
)

// TerminalView renders the list as a table on a writer. It implements
// controller.View; the form itself is driven by the prompts of the caller,
// so ShowForm only prints the form title.
type TerminalView struct {
	out     io.Writer
	printer *message.Printer
}

// NewTerminalView creates a TerminalView writing to out.
func NewTerminalView(out io.Writer, p *message.Printer) *TerminalView {
	if p == nil {
		p = i18n.Default()
	}
	return &TerminalView{out: out, printer: p}
}

// RenderList prints the count and a table with one row per species, or the
// empty-state text.
func (v *TerminalView) RenderList(items []species.Species) {
	if len(items) == 0 {
		fmt.Fprintln(v.out, emptyStyle.Render(v.printer.Sprintf(i18n.EmptyState)))
		return
	}
	fmt.Fprintln(v.out, titleStyle.Render(v.printer.Sprintf(i18n.CountLabel, len(items))))
	fmt.Fprintln(v.out, v.Table(items))
}

// Table returns the rendered table for items.
func (v *TerminalView) Table(items []species.Species) string {
	noDesc := v.printer.Sprintf(i18n.NoDescription)

	rows := make([][]string, 0, len(items))
	for _, s := range items {
		desc := s.Description
		if desc == "" {
			desc = noDesc
		}
		rows = append(rows, []string{strconv.FormatInt(s.ID, 10), s.Name, desc})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(grayDark)).
		Headers("ID", v.printer.Sprintf(i18n.FieldName), v.printer.Sprintf(i18n.FieldDesc)).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return nameStyle
			case col == 2 && row >= 0 && row < len(items) && items[row].Description == "":
				return mutedStyle
			default:
				return cellStyle
			}
		})
	return t.String()
}

// ShowForm prints the form title for mode.
func (v *TerminalView) ShowForm(mode controller.FormMode, _ controller.FormState) {
	fmt.Fprintln(v.out, titleStyle.Render(formTitle(v.printer, mode)))
}

// HideForm is a no-op; prompts disappear when answered.
func (v *TerminalView) HideForm() {}
