package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/config"
)

func newConfigCmd(a *app) *cobra.Command {
	var example bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show effective configuration and where each value came from",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if example {
				fmt.Fprint(out, config.ExampleConfig())
				return nil
			}

			cws, err := config.LoadWithSources(cmd.Flags())
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			cfg := cws.Config
			if a.todoFile != "" {
				cfg.TodoFile = a.todoFile
			}

			fmt.Fprintf(out, "todo_file  = %s (fixed)\n", cfg.TodoFile)
			fmt.Fprintf(out, "log_level  = %s (%s)\n", cfg.LogLevel, cws.Sources["log_level"])
			fmt.Fprintf(out, "log_format = %s (%s)\n", cfg.LogFormat, cws.Sources["log_format"])
			fmt.Fprintf(out, "color      = %s (%s)\n", cfg.Color, cws.Sources["color"])
			if len(cws.Files) == 0 {
				fmt.Fprintln(out, "config files: none")
			} else {
				fmt.Fprintf(out, "config files: %s\n", strings.Join(cws.Files, ", "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&example, "example", false, "Print an example config file")
	return cmd
}
