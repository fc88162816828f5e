package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/raizdigital/especies/pkg/cli/internal/output"
	"github.com/raizdigital/especies/pkg/controller"
	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/species"
	"github.com/raizdigital/especies/pkg/tui"
	"github.com/raizdigital/especies/pkg/view"
)

// MutationOutput is the JSON result of add, edit and delete.
type MutationOutput struct {
	Message string            `json:"message"`
	Species []species.Species `json:"species"`
}

// nopView discards rendering; one-shot mutations only print notices.
type nopView struct{}

func (nopView) RenderList([]species.Species)                       {}
func (nopView) ShowForm(controller.FormMode, controller.FormState) {}
func (nopView) HideForm()                                          {}

func (o *rootOptions) newController(v controller.View, d controller.Dialogs) *controller.Controller {
	return controller.New(o.newClient(), v, d,
		controller.WithLogger(o.logger),
		controller.WithPrinter(o.printer),
	)
}

func (o *rootOptions) newDialogs(out io.Writer) *printDialogs {
	return &printDialogs{out: out, quiet: o.cfg.JSON, logger: o.logger}
}

func (o *rootOptions) prompter(out io.Writer) *tui.HuhPrompter {
	return tui.NewHuhPrompter(o.printer, out, false)
}

// printMutation writes the JSON result of a mutation. In text mode the notice
// was already printed.
func (o *rootOptions) printMutation(out io.Writer, ctrl *controller.Controller, d *printDialogs) error {
	if !o.cfg.JSON {
		return nil
	}
	result := MutationOutput{Species: ctrl.Items()}
	if n := len(d.notices); n > 0 {
		result.Message = d.notices[n-1]
	}
	return output.JSON(out, result)
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var htmlFile string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all species",
		Example: `  especies list
  especies list --json
  especies list --html especies.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			var v controller.View
			var page *view.HTMLView
			switch {
			case htmlFile != "":
				page = view.NewHTMLView(opts.cfg.Lang)
				v = page
			case opts.cfg.JSON:
				v = nopView{}
			default:
				v = view.NewTerminalView(out, opts.printer)
			}

			ctrl := opts.newController(v, opts.newDialogs(out))
			if err := ctrl.LoadList(cmd.Context()); err != nil {
				return err
			}

			switch {
			case page != nil:
				return writeHTML(page, htmlFile, out)
			case opts.cfg.JSON:
				return output.JSON(out, ctrl.Items())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlFile, "html", "", "Write the list as an HTML page to FILE ('-' for stdout)")
	return cmd
}

func writeHTML(page *view.HTMLView, path string, stdout io.Writer) error {
	if path == "-" {
		return page.Render(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create html file: %w", err)
	}
	if err := page.Render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new species",
		Long: `Add a new species.

Without --name an interactive form asks for the name and the description.`,
		Example: `  especies add --name "Ipê" --description "Árvore de flores amarelas"
  especies add`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("name") {
				if opts.cfg.JSON {
					return errors.New("--name is required with --json")
				}
				err := opts.prompter(out).EditFields(opts.printer.Sprintf(i18n.NewTitle), &name, &description)
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(name) == "" {
				return errors.New(opts.printer.Sprintf(i18n.NameRequired))
			}

			d := opts.newDialogs(out)
			ctrl := opts.newController(nopView{}, d)
			ctrl.OpenCreateForm()
			ctrl.SetFields(name, description)
			if err := ctrl.SubmitForm(cmd.Context()); err != nil {
				return err
			}
			return opts.printMutation(out, ctrl, d)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Species name")
	cmd.Flags().StringVar(&description, "description", "", "Species description")
	return cmd
}

func newEditCmd(opts *rootOptions) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing species",
		Long: `Edit an existing species.

Values not given as flags keep their current content. With neither --name nor
--description an interactive form is pre-filled with the current values.`,
		Example: `  especies edit 3 --name "Ipê-Amarelo"
  especies edit 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			id, err := species.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid species id %q", args[0])
			}

			d := opts.newDialogs(out)
			ctrl := opts.newController(nopView{}, d)
			if err := ctrl.LoadList(cmd.Context()); err != nil {
				return err
			}
			item, found := ctrl.Find(id)
			if !found {
				return fmt.Errorf("species %d not found", id)
			}

			payload := item.Payload()
			nameSet, descSet := cmd.Flags().Changed("name"), cmd.Flags().Changed("description")
			if nameSet {
				payload.Name = name
			}
			if descSet {
				payload.Description = description
			}
			if !nameSet && !descSet {
				if opts.cfg.JSON {
					return errors.New("--name or --description is required with --json")
				}
				err := opts.prompter(out).EditFields(opts.printer.Sprintf(i18n.EditTitle), &payload.Name, &payload.Description)
				if errors.Is(err, huh.ErrUserAborted) {
					return nil
				}
				if err != nil {
					return err
				}
			}
			if strings.TrimSpace(payload.Name) == "" {
				return errors.New(opts.printer.Sprintf(i18n.NameRequired))
			}

			ctrl.PrepareEdit(item.ID, item.Name, item.Description)
			ctrl.SetFields(payload.Name, payload.Description)
			if err := ctrl.SubmitForm(cmd.Context()); err != nil {
				return err
			}
			return opts.printMutation(out, ctrl, d)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New species name")
	cmd.Flags().StringVar(&description, "description", "", "New species description")
	return cmd
}

func newDeleteCmd(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a species",
		Example: `  especies delete 3
  especies delete 3 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			id, err := species.ParseID(args[0])
			if err != nil {
				return fmt.Errorf("invalid species id %q", args[0])
			}

			d := opts.newDialogs(out)
			d.assumeYes = yes
			d.prompt = opts.prompter(out).Confirm

			ctrl := opts.newController(nopView{}, d)
			if err := ctrl.DeleteEntity(cmd.Context(), id); err != nil {
				return err
			}
			if len(d.notices) == 0 {
				// declined
				return nil
			}
			return opts.printMutation(out, ctrl, d)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newUICmd(opts *rootOptions) *cobra.Command {
	var accessible bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Browse and edit species interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			app := tui.New(opts.newClient(),
				tui.NewHuhPrompter(opts.printer, out, accessible),
				out,
				tui.WithLogger(opts.logger),
				tui.WithPrinter(opts.printer),
			)
			return app.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use plain line-based prompts (screen readers)")
	return cmd
}
