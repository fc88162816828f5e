package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/raizdigital/especies/pkg/cli/internal/output"
	"github.com/raizdigital/especies/pkg/cliconfig"
	"github.com/raizdigital/especies/pkg/i18n"
	"github.com/raizdigital/especies/pkg/logging"
	"github.com/raizdigital/especies/pkg/species"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootOptions holds the persistent flags and what is resolved from them
// before a subcommand runs.
type rootOptions struct {
	apiURL     string
	jsonOutput bool
	lang       string
	logLevel   string
	logFormat  string

	cfg      *cliconfig.CLIConfig
	logger   *slog.Logger
	printer  *message.Printer
	closeLog func() error
}

// NewRootCmd builds the especies command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "especies",
		Short: "especies manages the species catalogue",
		Long: `especies lists, creates, edits and deletes species of a remote catalogue.

It talks to the species API (default http://localhost:8080/api/especies) and offers
one-shot commands, an interactive terminal UI and a small web UI. A local sandbox
backend is included for trying things out.

Configuration can be provided via flags, environment variables (ESPECIES_*), a local
.especiesrc.yaml or ~/.config/especies/config.yaml.`,
		SilenceUsage:  true,
		SilenceErrors: true, // We handle errors in Execute()
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.resolve(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if opts.closeLog != nil {
				return opts.closeLog()
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&opts.apiURL, "api-url", cliconfig.DefaultAPIURL, "Species collection URL")
	pf.BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	pf.StringVar(&opts.lang, "lang", cliconfig.DefaultLang, "Language of messages (pt-BR, en)")
	pf.StringVar(&opts.logLevel, "log-level", cliconfig.DefaultLogLevel, "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", cliconfig.DefaultLogFormat, "Log format (text, json)")

	rootCmd.AddCommand(
		newListCmd(opts),
		newAddCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newUICmd(opts),
		newWebCmd(opts),
		newSandboxCmd(opts),
		newConfigCmd(opts),
		newVersionCmd(opts),
	)
	return rootCmd
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// resolve loads the layered configuration, applies flags and opens the logger.
func (o *rootOptions) resolve(cmd *cobra.Command) error {
	cfg, err := cliconfig.LoadAll()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for _, w := range cfg.Warnings {
		output.Warn(cmd.ErrOrStderr(), "%s", w)
	}

	flags := cmd.Flags()
	applyFlag := func(name, key string, dst *string, value string) {
		if flags.Changed(name) {
			*dst = value
			cfg.Sources[key] = cliconfig.SourceFlag
		}
	}
	applyFlag("api-url", "apiUrl", &cfg.APIURL, o.apiURL)
	applyFlag("lang", "lang", &cfg.Lang, o.lang)
	applyFlag("log-level", "logLevel", &cfg.LogLevel, o.logLevel)
	applyFlag("log-format", "logFormat", &cfg.LogFormat, o.logFormat)
	if flags.Changed("json") {
		cfg.JSON = o.jsonOutput
		cfg.Sources["json"] = cliconfig.SourceFlag
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closeLog, err := logging.Open(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.logger = logger
	o.closeLog = closeLog
	o.printer = i18n.NewPrinter(cfg.Lang)
	return nil
}

func (o *rootOptions) newClient() species.Client {
	return species.NewHTTPClient(o.cfg.APIURL,
		species.WithTimeout(o.cfg.TimeoutDuration()),
		species.WithLogger(o.logger),
	)
}

// printDialogs answers controller dialogs for one-shot commands. Notices are
// printed, or collected in JSON mode; confirmations use the prompt unless
// assumeYes is set.
type printDialogs struct {
	out       io.Writer
	quiet     bool
	assumeYes bool
	prompt    func(msg string) (bool, error)
	logger    *slog.Logger

	notices []string
}

func (d *printDialogs) Confirm(msg string) bool {
	if d.assumeYes {
		return true
	}
	if d.prompt == nil {
		return false
	}
	ok, err := d.prompt(msg)
	if err != nil {
		d.logger.Debug("confirmation not answered", "error", err)
		return false
	}
	return ok
}

func (d *printDialogs) Notify(msg string) {
	d.notices = append(d.notices, msg)
	if !d.quiet {
		fmt.Fprintln(d.out, msg)
	}
}
