// Package tui is the interactive terminal surface of especies.
//
// The App loops over a menu of actions and drives the controller; every
// question goes through a Prompter so the loop can run without a terminal.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/huh"
	"golang.org/x/text/message"

	"github.com/raizdigital/especies/pkg/controller"
	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/logging"
	"github.com/raizdigital/especies/pkg/species"
	"github.com/raizdigital/especies/pkg/view"
)

// Action is an entry of the main menu.
type Action int

// Menu actions.
const (
	ActionReload Action = iota
	ActionNew
	ActionEdit
	ActionDelete
	ActionQuit
)

// Prompter asks the user questions. Implementations return
// huh.ErrUserAborted when the user cancels a prompt.
type Prompter interface {
	// ChooseAction asks for the next menu action.
	ChooseAction(items []species.Species) (Action, error)
	// ChooseSpecies asks the user to pick one of items and returns its id.
	ChooseSpecies(title string, items []species.Species) (int64, error)
	// EditFields lets the user edit name and description in place.
	EditFields(title string, name, description *string) error
	// Confirm asks a yes/no question.
	Confirm(message string) (bool, error)
	// Notify shows message until the user acknowledges it.
	Notify(message string)
}

// App is the interactive loop.
type App struct {
	prompter Prompter
	ctrl     *controller.Controller
	printer  *message.Printer
	logger   *slog.Logger
}

// Option configures an App.
type Option func(*appConfig)

type appConfig struct {
	logger  *slog.Logger
	printer *message.Printer
}

// WithLogger sets the logger of the app and its controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *appConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrinter sets the printer for texts.
func WithPrinter(p *message.Printer) Option {
	return func(c *appConfig) {
		if p != nil {
			c.printer = p
		}
	}
}

// New creates an App rendering the list on out.
func New(client species.Client, prompter Prompter, out io.Writer, opts ...Option) *App {
	cfg := appConfig{logger: logging.Nop(), printer: i18n.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &App{
		prompter: prompter,
		printer:  cfg.printer,
		logger:   cfg.logger,
	}
	a.ctrl = controller.New(client,
		view.NewTerminalView(out, cfg.printer),
		dialogs{prompter: prompter, logger: cfg.logger},
		controller.WithLogger(cfg.logger),
		controller.WithPrinter(cfg.printer),
	)
	return a
}

// Controller returns the controller driven by the app.
func (a *App) Controller() *controller.Controller {
	return a.ctrl
}

// Run loads the list and loops until the user quits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	// A failed load is logged by the controller; the menu still works.
	_ = a.ctrl.LoadList(ctx)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		action, err := a.prompter.ChooseAction(a.ctrl.Items())
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("choose action: %w", err)
		}

		switch action {
		case ActionReload:
			_ = a.ctrl.LoadList(ctx)
		case ActionNew:
			a.ctrl.OpenCreateForm()
			if err := a.editAndSubmit(ctx); err != nil {
				return err
			}
		case ActionEdit:
			if err := a.edit(ctx); err != nil {
				return err
			}
		case ActionDelete:
			if err := a.delete(ctx); err != nil {
				return err
			}
		case ActionQuit:
			return nil
		}
	}
}

func (a *App) edit(ctx context.Context) error {
	id, ok, err := a.pick(a.printer.Sprintf(i18n.EditTitle))
	if err != nil || !ok {
		return err
	}
	item, found := a.ctrl.Find(id)
	if !found {
		a.prompter.Notify(a.printer.Sprintf(i18n.NotFound))
		return nil
	}
	a.ctrl.PrepareEdit(item.ID, item.Name, item.Description)
	return a.editAndSubmit(ctx)
}

func (a *App) delete(ctx context.Context) error {
	id, ok, err := a.pick(a.printer.Sprintf(i18n.ActionDelete))
	if err != nil || !ok {
		return err
	}
	// Failures are already notified and logged by the controller.
	_ = a.ctrl.DeleteEntity(ctx, id)
	return nil
}

// pick asks for one species of the current list. ok is false when the list
// is empty or the user cancelled.
func (a *App) pick(title string) (int64, bool, error) {
	items := a.ctrl.Items()
	if len(items) == 0 {
		a.prompter.Notify(a.printer.Sprintf(i18n.EmptyState))
		return 0, false, nil
	}
	id, err := a.prompter.ChooseSpecies(title, items)
	if errors.Is(err, huh.ErrUserAborted) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("choose species: %w", err)
	}
	return id, true, nil
}

// editAndSubmit prompts for the fields of the open form until a submit
// succeeds or the user cancels, which closes the form.
func (a *App) editAndSubmit(ctx context.Context) error {
	title := a.printer.Sprintf(i18n.NewTitle)
	if a.ctrl.Mode() == controller.EditMode {
		title = a.printer.Sprintf(i18n.EditTitle)
	}

	for {
		state := a.ctrl.State()
		name, description := state.Name, state.Description

		err := a.prompter.EditFields(title, &name, &description)
		if errors.Is(err, huh.ErrUserAborted) {
			a.ctrl.CloseForm()
			return nil
		}
		if err != nil {
			a.ctrl.CloseForm()
			return fmt.Errorf("edit fields: %w", err)
		}

		a.ctrl.SetFields(name, description)
		// The form closes once the write succeeded, even if the reload failed.
		if err := a.ctrl.SubmitForm(ctx); err == nil || !a.ctrl.Mode().Open() {
			return nil
		}
		if ctx.Err() != nil {
			a.ctrl.CloseForm()
			return ctx.Err()
		}
	}
}

// dialogs adapts a Prompter to controller.Dialogs.
type dialogs struct {
	prompter Prompter
	logger   *slog.Logger
}

func (d dialogs) Confirm(message string) bool {
	ok, err := d.prompter.Confirm(message)
	if err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			d.logger.Warn("confirmation prompt failed", "error", err)
		}
		return false
	}
	return ok
}

func (d dialogs) Notify(message string) {
	d.prompter.Notify(message)
}
