package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sync"

	"golang.org/x/text/message"

	"github.com/raizdigital/especies/pkg/controller"
	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/species"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html.tmpl"))

// Page is the render model of the page.
type Page struct {
	Items        []species.Species
	Count        int
	EmptyVisible bool
	Form         Form
	Flash        []string
	Confirm      *Confirm
}

// Form is the render model of the create/edit form.
type Form struct {
	Visible     bool
	Mode        controller.FormMode
	Title       string
	EditingID   int64
	Name        string
	Description string
}

// Confirm is a pending yes/no question about deleting a species.
type Confirm struct {
	ID      int64
	Message string
}

type labels struct {
	ListTitle     string
	Empty         string
	NoDescription string
	Edit          string
	Delete        string
	Save          string
	Cancel        string
	New           string
	FieldName     string
	FieldDesc     string
	Yes           string
	No            string
}

// HTMLView renders the page as HTML. It implements controller.View.
// All values are escaped by html/template, including quotes in names.
type HTMLView struct {
	mu      sync.Mutex
	printer *message.Printer
	lang    string
	page    Page
}

// NewHTMLView creates an HTMLView printing texts in lang.
func NewHTMLView(lang string) *HTMLView {
	if _, err := i18n.ParseLanguage(lang); err != nil {
		lang = i18n.DefaultLanguage
	}
	return &HTMLView{
		printer: i18n.NewPrinter(lang),
		lang:    lang,
		page:    Page{Items: []species.Species{}, EmptyVisible: true},
	}
}

// RenderList replaces the rendered rows.
func (v *HTMLView) RenderList(items []species.Species) {
	v.mu.Lock()
	defer v.mu.Unlock()

	rows := make([]species.Species, len(items))
	copy(rows, items)
	v.page.Items = rows
	v.page.Count = len(rows)
	v.page.EmptyVisible = len(rows) == 0
}

// ShowForm shows the form filled with state.
func (v *HTMLView) ShowForm(mode controller.FormMode, state controller.FormState) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.page.Form = Form{
		Visible:     true,
		Mode:        mode,
		Title:       formTitle(v.printer, mode),
		EditingID:   state.EditingID,
		Name:        state.Name,
		Description: state.Description,
	}
}

// HideForm hides the form.
func (v *HTMLView) HideForm() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.page.Form.Visible = false
}

// AddFlash queues a message shown once on the next render.
func (v *HTMLView) AddFlash(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.page.Flash = append(v.page.Flash, msg)
}

// SetConfirm shows a pending delete confirmation for id.
func (v *HTMLView) SetConfirm(id int64, msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.page.Confirm = &Confirm{ID: id, Message: msg}
}

// ClearConfirm removes the pending confirmation.
func (v *HTMLView) ClearConfirm() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.page.Confirm = nil
}

// Page returns a copy of the current render model.
func (v *HTMLView) Page() Page {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.snapshot()
}

func (v *HTMLView) snapshot() Page {
	p := v.page
	p.Items = append([]species.Species(nil), v.page.Items...)
	p.Flash = append([]string(nil), v.page.Flash...)
	if v.page.Confirm != nil {
		c := *v.page.Confirm
		p.Confirm = &c
	}
	return p
}

// Render writes the page to w. Queued flash messages are written once and
// then dropped.
func (v *HTMLView) Render(w io.Writer) error {
	v.mu.Lock()
	page := v.snapshot()
	v.page.Flash = nil
	v.mu.Unlock()

	data := struct {
		Page
		Lang string
		L    labels
	}{
		Page: page,
		Lang: v.lang,
		L:    v.labels(),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

func (v *HTMLView) labels() labels {
	p := v.printer
	return labels{
		ListTitle:     p.Sprintf(i18n.ListTitle),
		Empty:         p.Sprintf(i18n.EmptyState),
		NoDescription: p.Sprintf(i18n.NoDescription),
		Edit:          p.Sprintf(i18n.ActionEdit),
		Delete:        p.Sprintf(i18n.ActionDelete),
		Save:          p.Sprintf(i18n.ActionSave),
		Cancel:        p.Sprintf(i18n.ActionCancel),
		New:           p.Sprintf(i18n.ActionNew),
		FieldName:     p.Sprintf(i18n.FieldName),
		FieldDesc:     p.Sprintf(i18n.FieldDesc),
		Yes:           p.Sprintf(i18n.Yes),
		No:            p.Sprintf(i18n.No),
	}
}

func formTitle(p *message.Printer, mode controller.FormMode) string {
	if mode == controller.EditMode {
		return p.Sprintf(i18n.EditTitle)
	}
	return p.Sprintf(i18n.NewTitle)
}
