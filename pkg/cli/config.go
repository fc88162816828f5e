package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raizdigital/especies/pkg/cli/internal/output"
	"github.com/raizdigital/especies/pkg/cliconfig"
)

// ConfigEntry is one resolved configuration value.
type ConfigEntry struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration",
		Long: `Show the effective configuration and where each value came from
(default, global, local, env or flag).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg := opts.cfg

			entries := make([]ConfigEntry, 0, len(cliconfig.Keys))
			for _, key := range cliconfig.Keys {
				source := cfg.Sources[key]
				if source == "" {
					source = cliconfig.SourceDefault
				}
				entries = append(entries, ConfigEntry{Key: key, Value: cfg.Value(key), Source: source})
			}

			if cfg.JSON {
				return output.JSON(out, entries)
			}

			w := output.Table(out)
			fmt.Fprintln(w, "KEY\tVALUE\tSOURCE")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", e.Key, e.Value, e.Source)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if paths := cliconfig.GetGlobalConfigSearchPaths(); len(paths) > 0 {
				fmt.Fprintf(out, "\nGlobal config: %s\n", paths[0])
			}
			fmt.Fprintf(out, "Local config:  ./%s\n", cliconfig.LocalConfigFileNames[0])
			return nil
		},
	}
}
