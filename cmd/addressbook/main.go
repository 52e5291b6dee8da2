// Package main provides the addressbook binary entry point.
// Addressbook is a local contact and task manager driven by typed commands.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/addressbook/config"
	"github.com/c360studio/addressbook/storage"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "addressbook"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	dataPath   string
	logLevel   string
	logFormat  string
}

func rootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Contact and task manager",
		Long: `Addressbook keeps a list of contacts and the tasks you track for them.

Type commands at the prompt, for example:
  add n/John Doe p/98765432 e/johnd@example.com a/311, Clementi Ave 2
  add-task 1 d/Buy medication
  list-incomplete

Type "help" at the prompt for the full command list.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	flags.StringVar(&opts.dataPath, "data", "", "Address book data file (overrides config)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")

	cmd.AddCommand(execCmd(&opts))
	cmd.AddCommand(checkCmd(&opts))
	cmd.AddCommand(watchCmd(&opts))
	cmd.AddCommand(configCmd(&opts))

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	return cmd
}

func execCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run a single address book command and exit",
		Example: `  addressbook exec list
  addressbook exec "priority 2 pr/high"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, *opts)
			if err != nil {
				return err
			}
			defer shutdown(app)

			if err := app.Start(); err != nil {
				return err
			}
			result, err := app.Execute(strings.Join(args, " "))
			if err != nil {
				return err
			}
			app.printResult(result)
			return nil
		},
	}
}

func checkCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check [patterns...]",
		Short: "Validate data files without modifying them",
		Long: `Check loads each data file the way the application does and reports
the records that would be ignored. Patterns may use ** to match nested
directories. Without arguments the configured data file is checked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, *opts)
			if err != nil {
				return err
			}
			defer shutdown(app)

			paths := []string{app.cfg.Data.Path}
			if len(args) > 0 {
				paths, err = storage.Glob(args)
				if err != nil {
					return err
				}
				if len(paths) == 0 {
					return fmt.Errorf("no data files match %s", strings.Join(args, " "))
				}
			}

			reports, err := app.Check(paths)
			if err != nil {
				return err
			}
			for _, r := range reports {
				if len(r.Invalid()) > 0 {
					return errors.New("invalid records found")
				}
			}
			return nil
		},
	}
}

func watchCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-check the data file every time it changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := setup(cmd, *opts)
			if err != nil {
				return err
			}
			defer shutdown(app)

			ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return app.Watch(ctx)
		},
	}
}

func configCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the user config file with defaults if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd.ErrOrStderr(), levelOr(opts.logLevel, "warn"), "text")
			path, err := config.NewLoader(logger).EnsureUserConfig()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	})
	return cmd
}

func runREPL(cmd *cobra.Command, opts globalOptions) error {
	app, err := setup(cmd, opts)
	if err != nil {
		return err
	}
	defer shutdown(app)

	printBanner(cmd.OutOrStdout())
	if err := app.Start(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return app.RunREPL(ctx, cmd.InOrStdin())
}

// setup loads configuration, applies flag overrides and builds the App.
func setup(cmd *cobra.Command, opts globalOptions) (*App, error) {
	// Bootstrap logger for config loading
	bootstrap := newLogger(cmd.ErrOrStderr(), levelOr(opts.logLevel, "warn"), "text")

	cfg, err := config.NewLoader(bootstrap).Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.dataPath != "" {
		cfg.Data.Path = opts.dataPath
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.logFormat != "" {
		cfg.Log.Format = opts.logFormat
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(logger)

	return NewApp(cfg, logger, cmd.OutOrStdout())
}

func shutdown(app *App) {
	if err := app.Shutdown(); err != nil {
		app.logger.Error("Shutdown failed", "error", err)
	}
}

// newLogger builds a slog logger writing to w.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	lvl := slog.LevelWarn
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	}

	handlerOpts := &slog.HandlerOptions{Level: lvl}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, handlerOpts))
	}
	return slog.New(slog.NewTextHandler(w, handlerOpts))
}

func levelOr(level, fallback string) string {
	if level == "" {
		return fallback
	}
	return level
}

func printBanner(w io.Writer) {
	fmt.Fprintln(w, "╔═══════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║           Addressbook v"+Version+"                  ║")
	fmt.Fprintln(w, "║      Contacts and tasks, one line at a time   ║")
	fmt.Fprintln(w, "╚═══════════════════════════════════════════════╝")
}
