package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/addressbook/commands"
	"github.com/c360studio/addressbook/config"
	"github.com/c360studio/addressbook/metrics"
	"github.com/c360studio/addressbook/storage"
)

// App is the main application that wires together all components.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer

	// Metrics
	registry *prometheus.Registry
	metrics  *metrics.Recorder

	// Storage
	reconciler *storage.Reconciler
	store      *storage.FileStore

	// Commands
	parser  *commands.Parser
	session *commands.Session
}

// NewApp creates a new application instance. User-facing output goes to out.
func NewApp(cfg *config.Config, logger *slog.Logger, out io.Writer) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()
	rec, err := metrics.NewRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("create metrics: %w", err)
	}

	reconciler := storage.NewReconciler(logger, rec)
	app := &App{
		cfg:        cfg,
		logger:     logger,
		out:        out,
		registry:   registry,
		metrics:    rec,
		reconciler: reconciler,
		store:      storage.NewFileStore(cfg.Data.Path, reconciler, logger),
		parser:     commands.NewParser(logger, rec),
	}
	return app, nil
}

// Start loads the address book from the data file.
func (a *App) Start() error {
	book, report, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("load address book: %w", err)
	}
	a.session = commands.NewSession(book)

	if dropped := len(report.Invalid()); dropped > 0 {
		fmt.Fprintf(a.out, "%d invalid record(s) in %s were ignored\n", dropped, a.store.Path())
	}
	a.logger.Info("Address book ready",
		"path", a.store.Path(),
		"persons", len(book.Persons()),
		"tasks", len(book.Tasks()),
		"fresh", report.Fresh)
	return nil
}

// Execute parses and runs one command line. The address book is saved after
// every command that changes it.
func (a *App) Execute(line string) (commands.Result, error) {
	cmd, err := a.parser.Parse(line)
	if err != nil {
		return commands.Result{}, err
	}

	result, err := cmd.Execute(a.session)
	if err != nil {
		return commands.Result{}, err
	}
	a.logger.Debug("Executed command", "kind", cmd.Kind(), "result_id", result.ID)

	if result.Mutated {
		if err := a.store.Save(a.session.Book); err != nil {
			return result, fmt.Errorf("save address book: %w", err)
		}
	}
	return result, nil
}

// RunREPL runs the interactive REPL loop until exit, EOF or ctx is done.
func (a *App) RunREPL(ctx context.Context, in io.Reader) error {
	// Lines are read whole, with no length limit
	reader := bufio.NewReader(in)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.out, "addressbook> ")

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		if err != nil && line == "" {
			// EOF (Ctrl+D)
			fmt.Fprintln(a.out)
			return nil
		}

		input := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(input) == "" {
			continue
		}

		result, err := a.Execute(input)
		if err != nil {
			if !isUserError(err) {
				a.logger.Error("Command failed", "error", err)
			}
			fmt.Fprintln(a.out, err.Error())
			continue
		}

		a.printResult(result)
		if result.Exit {
			return nil
		}
	}
}

func (a *App) printResult(r commands.Result) {
	fmt.Fprintln(a.out, r.Feedback)
	if r.View != "" {
		fmt.Fprintln(a.out, r.View)
	}
}

// Shutdown writes the metrics textfile when one is configured.
func (a *App) Shutdown() error {
	if a.cfg.Metrics.File == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.cfg.Metrics.File, a.registry); err != nil {
		return err
	}
	a.logger.Debug("Wrote metrics", "path", a.cfg.Metrics.File)
	return nil
}

// Check loads each data file without modifying it and reports what was kept
// and dropped.
func (a *App) Check(paths []string) ([]*storage.Report, error) {
	var reports []*storage.Report
	var errs []error
	for _, path := range paths {
		_, report, err := storage.NewFileStore(path, a.reconciler, a.logger).Load()
		if err != nil {
			fmt.Fprintf(a.out, "%s: %v\n", path, err)
			errs = append(errs, err)
			continue
		}
		a.printReport(report)
		reports = append(reports, report)
	}
	return reports, errors.Join(errs...)
}

func (a *App) printReport(r *storage.Report) {
	if r.Fresh {
		fmt.Fprintf(a.out, "%s: not found\n", r.Source)
		return
	}
	fmt.Fprintf(a.out, "%s: %d persons, %d tasks loaded; %d invalid, %d duplicate records ignored\n",
		r.Source,
		r.Count(storage.KindPerson, storage.StatusAccepted),
		r.Count(storage.KindTask, storage.StatusAccepted),
		len(r.Invalid()),
		r.Count(storage.KindPerson, storage.StatusDuplicate)+r.Count(storage.KindTask, storage.StatusDuplicate))
	for _, o := range r.Invalid() {
		fmt.Fprintf(a.out, "  %s #%d: %v\n", o.Kind, o.Index+1, o.Err)
	}
}

// Watch re-checks the data file after every change until ctx is done.
func (a *App) Watch(ctx context.Context) error {
	w, err := storage.NewWatcher(a.store.Path(), a.cfg.Data.WatchDebounce, a.logger)
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Fprintf(a.out, "Watching %s\n", a.store.Path())
	return w.Run(ctx, func() {
		if _, err := a.Check([]string{a.store.Path()}); err != nil {
			a.logger.Warn("Data file check failed", "path", a.store.Path(), "error", err)
		}
	})
}

// isUserError reports whether err is a recoverable parse or execution error
// that should be shown to the user.
func isUserError(err error) bool {
	var pe *commands.ParseError
	var ee *commands.ExecError
	return errors.As(err, &pe) || errors.As(err, &ee)
}
