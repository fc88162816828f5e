package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/message"

	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/logging"
	"github.com/raizdigital/especies/pkg/species"
)

// ErrFormClosed is returned by SubmitForm when no form is open.
var ErrFormClosed = errors.New("form is not open")

// View renders the list and the form surface.
type View interface {
	// RenderList replaces the rendered list with items. An empty slice shows
	// the empty-state placeholder instead of the list.
	RenderList(items []species.Species)
	// ShowForm shows the form surface labelled for mode, filled with state.
	ShowForm(mode FormMode, state FormState)
	// HideForm hides the form surface.
	HideForm()
}

// Dialogs provides blocking user-decision primitives.
type Dialogs interface {
	// Confirm asks the user a yes/no question and blocks until answered.
	Confirm(message string) bool
	// Notify shows an outcome message and blocks until acknowledged.
	Notify(message string)
}

// Controller synchronizes a View with the remote species collection.
// Operations are serialized; at most one API call is outstanding.
type Controller struct {
	mu      sync.Mutex
	client  species.Client
	view    View
	dialogs Dialogs
	logger  *slog.Logger
	printer *message.Printer

	mode  FormMode
	state FormState
	items []species.Species
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the diagnostic logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPrinter sets the printer used for dialog texts.
func WithPrinter(p *message.Printer) Option {
	return func(c *Controller) {
		if p != nil {
			c.printer = p
		}
	}
}

// New creates a Controller.
func New(client species.Client, view View, dialogs Dialogs, opts ...Option) *Controller {
	c := &Controller{
		client:  client,
		view:    view,
		dialogs: dialogs,
		logger:  logging.Nop(),
		printer: i18n.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OpenCreateForm clears the form state and shows the form for creation.
func (c *Controller) OpenCreateForm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = FormState{}
	c.mode = CreateMode
	c.view.ShowForm(c.mode, c.state)
}

// PrepareEdit fills the form with an existing species and shows it for
// editing. Nothing is written until SubmitForm.
func (c *Controller) PrepareEdit(id int64, name, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state = FormState{EditingID: id, Name: name, Description: description}
	c.mode = EditMode
	c.view.ShowForm(c.mode, c.state)
}

// SetFields mirrors the current values of the form's editable fields.
func (c *Controller) SetFields(name, description string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Name = name
	c.state.Description = description
}

// CloseForm hides the form. The form state is kept.
func (c *Controller) CloseForm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closeForm()
}

func (c *Controller) closeForm() {
	c.mode = Closed
	c.view.HideForm()
}

// LoadList fetches the full collection and replaces the rendered list.
// On failure the view is left untouched and the error is only logged.
func (c *Controller) LoadList(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loadList(ctx)
}

func (c *Controller) loadList(ctx context.Context) error {
	items, err := c.client.List(ctx)
	if err != nil {
		c.logger.Error("failed to load species list", "error", err)
		return fmt.Errorf("load species list: %w", err)
	}
	if items == nil {
		items = []species.Species{}
	}

	c.items = items
	c.view.RenderList(items)
	c.logger.Debug("species list rendered", "count", len(items))
	return nil
}

// DeleteEntity asks for confirmation and deletes the species addressed by id.
// A declined confirmation returns nil without calling the API.
func (c *Controller) DeleteEntity(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dialogs.Confirm(c.printer.Sprintf(i18n.ConfirmDelete)) {
		c.logger.Debug("species deletion declined", "id", id)
		return nil
	}

	if err := c.client.Delete(ctx, id); err != nil {
		c.reportFailure(err, i18n.DeleteFailed, "failed to delete species", "id", id)
		return fmt.Errorf("delete species %d: %w", id, err)
	}

	c.logger.Info("species deleted", "id", id)
	c.dialogs.Notify(c.printer.Sprintf(i18n.Deleted))
	return c.loadList(ctx)
}

// SubmitForm creates or updates a species from the form state. On success the
// form is closed and the list reloaded; on failure the form stays open.
func (c *Controller) SubmitForm(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.mode.Open() {
		return ErrFormClosed
	}

	state := c.state
	payload := species.Payload{Name: state.Name, Description: state.Description}

	var err error
	if state.Editing() {
		err = c.client.Update(ctx, state.EditingID, payload)
	} else {
		err = c.client.Create(ctx, payload)
	}
	if err != nil {
		c.reportFailure(err, i18n.SaveFailed, "failed to save species", "id", state.EditingID)
		return fmt.Errorf("save species: %w", err)
	}

	if state.Editing() {
		c.logger.Info("species updated", "id", state.EditingID)
		c.dialogs.Notify(c.printer.Sprintf(i18n.Updated))
	} else {
		c.logger.Info("species created", "name", state.Name)
		c.dialogs.Notify(c.printer.Sprintf(i18n.Created))
	}
	c.closeForm()
	return c.loadList(ctx)
}

// reportFailure logs a failed mutation and notifies the user. Transport
// failures get the connection notice; any other failure gets failureKey.
func (c *Controller) reportFailure(err error, failureKey, logMsg string, args ...any) {
	if species.IsConnectionError(err) {
		c.logger.Error(logMsg, append(args, "error", err)...)
		c.dialogs.Notify(c.printer.Sprintf(i18n.ConnectionError))
		return
	}
	c.logger.Warn(logMsg, append(args, "status", species.StatusCode(err), "error", err)...)
	c.dialogs.Notify(c.printer.Sprintf(failureKey))
}

// Mode returns the current form mode.
func (c *Controller) Mode() FormMode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// State returns a copy of the form state.
func (c *Controller) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Items returns a copy of the last rendered list.
func (c *Controller) Items() []species.Species {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]species.Species, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the species with id from the last rendered list.
func (c *Controller) Find(id int64) (species.Species, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.items {
		if s.ID == id {
			return s, true
		}
	}
	return species.Species{}, false
}
