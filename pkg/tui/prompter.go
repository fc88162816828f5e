package tui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/message"

	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/species"
)

var noticeStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#2e7d32")).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("#2e7d32")).
	Padding(0, 1)

// HuhPrompter asks questions with huh forms.
type HuhPrompter struct {
	printer    *message.Printer
	out        io.Writer
	accessible bool
}

// NewHuhPrompter creates a HuhPrompter. Notices are written to out. In
// accessible mode huh prompts are plain line-based questions.
func NewHuhPrompter(p *message.Printer, out io.Writer, accessible bool) *HuhPrompter {
	if p == nil {
		p = i18n.Default()
	}
	return &HuhPrompter{printer: p, out: out, accessible: accessible}
}

func (h *HuhPrompter) run(groups ...*huh.Group) error {
	return huh.NewForm(groups...).WithAccessible(h.accessible).Run()
}

// ChooseAction shows the main menu.
func (h *HuhPrompter) ChooseAction(items []species.Species) (Action, error) {
	p := h.printer
	action := ActionReload
	options := []huh.Option[Action]{
		huh.NewOption(p.Sprintf(i18n.ActionNew), ActionNew),
		huh.NewOption(p.Sprintf(i18n.ActionReload), ActionReload),
	}
	if len(items) > 0 {
		options = append(options,
			huh.NewOption(p.Sprintf(i18n.ActionEdit), ActionEdit),
			huh.NewOption(p.Sprintf(i18n.ActionDelete), ActionDelete),
		)
	}
	options = append(options, huh.NewOption(p.Sprintf(i18n.ActionQuit), ActionQuit))

	err := h.run(huh.NewGroup(
		huh.NewSelect[Action]().
			Title(p.Sprintf(i18n.CountLabel, len(items))).
			Options(options...).
			Value(&action),
	))
	return action, err
}

// ChooseSpecies shows a select with one option per species.
func (h *HuhPrompter) ChooseSpecies(title string, items []species.Species) (int64, error) {
	options := make([]huh.Option[int64], 0, len(items))
	for _, s := range items {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (#%d)", s.Name, s.ID), s.ID))
	}

	var id int64
	err := h.run(huh.NewGroup(
		huh.NewSelect[int64]().
			Title(title).
			Options(options...).
			Value(&id),
	))
	return id, err
}

// EditFields shows the name input and the description text area.
func (h *HuhPrompter) EditFields(title string, name, description *string) error {
	p := h.printer
	return h.run(huh.NewGroup(
		huh.NewInput().
			Title(p.Sprintf(i18n.FieldName)).
			Value(name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New(p.Sprintf(i18n.NameRequired))
				}
				return nil
			}),
		huh.NewText().
			Title(p.Sprintf(i18n.FieldDesc)).
			Value(description),
	).Title(title))
}

// Confirm asks a yes/no question.
func (h *HuhPrompter) Confirm(msg string) (bool, error) {
	var ok bool
	err := h.run(huh.NewGroup(
		huh.NewConfirm().
			Title(msg).
			Affirmative(h.printer.Sprintf(i18n.Yes)).
			Negative(h.printer.Sprintf(i18n.No)).
			Value(&ok),
	))
	return ok, err
}

// Notify prints the notice. Enter acknowledges it.
func (h *HuhPrompter) Notify(msg string) {
	fmt.Fprintln(h.out, noticeStyle.Render(msg))
	_ = h.run(huh.NewGroup(huh.NewNote().Title("OK").Next(true)))
}
