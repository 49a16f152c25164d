// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/todo"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	root := newRootCmd(&app{})
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// app carries per-invocation state shared by the subcommands.
type app struct {
	// todoFile overrides the configured list file; used by tests.
	todoFile string

	cfg    *config.Config
	logger *log.Logger
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "todo [method] [params...]",
		Short: "Manage a local todo list",
		Long: `todo keeps an ordered todo list in ./1.json.

Items are addressed by the 1-based numbers shown by "todo list".
With no method, or an unrecognized one, the list is printed.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				a.logger.Debug("unknown method, listing", "method", args[0])
			}
			return a.runList(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true

	flags := root.PersistentFlags()
	flags.String(config.FlagConfig, "", "Path to a TOML config file")
	flags.String(config.FlagLogLevel, config.DefaultLogLevel, "Log level (debug|info|warn|error)")
	flags.String(config.FlagLogFormat, config.DefaultLogFormat, "Log format (text|json|logfmt)")
	flags.String(config.FlagColor, config.DefaultColor, "Strike through finished items (auto|always|never)")

	root.AddCommand(
		newListCmd(a),
		newAddCmd(a),
		newDoneCmd(a),
		newRemoveCmd(a),
		newTUICmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.todoFile != "" {
		cfg.TodoFile = a.todoFile
	}
	a.cfg = cfg
	a.logger = logging.NewFromConfig(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	return nil
}

// open loads the list from the configured file.
func (a *app) open() (*todo.List, error) {
	store := todo.NewStore(a.cfg.TodoFile, todo.WithLogger(a.logger))
	return todo.Open(store)
}

func (a *app) printer(w io.Writer) (*todo.Printer, error) {
	mode, err := todo.ParseColorMode(a.cfg.Color)
	if err != nil {
		return nil, err
	}
	return todo.NewPrinter(w, mode), nil
}

func (a *app) runList(cmd *cobra.Command) error {
	list, err := a.open()
	if err != nil {
		return err
	}
	p, err := a.printer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return p.Print(list.Items())
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the numbered list",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runList(cmd)
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text> [<text>...]",
		Short: "Append one item per argument",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.open()
			if err != nil {
				return err
			}
			if err := list.Add(args); err != nil {
				return fmt.Errorf("add: %w", err)
			}
			a.logger.Info("added items", "count", len(args), "total", list.Len())
			return nil
		},
	}
}

func newDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done <n> [<n>...]",
		Short: "Mark items finished by number",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.open()
			if err != nil {
				return err
			}
			if err := list.Done(args); err != nil {
				return fmt.Errorf("done: %w", err)
			}
			a.logger.Info("marked items done", "indices", args)
			return nil
		},
	}
}

func newRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <n> [<n>...]",
		Aliases: []string{"remove"},
		Short:   "Remove items by number",
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.open()
			if err != nil {
				return err
			}
			if err := list.Remove(args); err != nil {
				return fmt.Errorf("rm: %w", err)
			}
			a.logger.Info("removed items", "indices", args, "total", list.Len())
			return nil
		},
	}
}

func newTUICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse and edit the list interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := a.open()
			if err != nil {
				return err
			}
			p, err := a.printer(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return ui.RunTUI(cmd.Context(), list, p)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "todo version %s\n", Version)
			return nil
		},
	}
}
