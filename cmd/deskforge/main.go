// Package main provides the CLI entry point for deskforge.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AntoineGS/deskforge/internal/config"
	"github.com/AntoineGS/deskforge/internal/desktop"
	"github.com/AntoineGS/deskforge/internal/form"
	"github.com/AntoineGS/deskforge/internal/platform"
	"github.com/AntoineGS/deskforge/internal/state"
	"github.com/AntoineGS/deskforge/internal/tui"
)

var version = "dev"

var (
	appsDir     string // Override from --dir flag
	verbose     bool
	newLauncher bool
	editName    string
	listAll     bool
	removeName  string
	showHistory bool
	logFile     *os.File
)

// Swapped in tests.
var (
	runSession           = tui.Run
	isTerminal           = tui.IsTerminal
	stdout     io.Writer = os.Stdout
	stderr     io.Writer = os.Stderr
)

var (
	errFileExists  = errors.New("File name already exists!") //nolint:staticcheck // printed verbatim
	errFileMissing = errors.New("File doesn't exist!")       //nolint:staticcheck // printed verbatim
	errNoCommand   = errors.New("no command given")
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errNoCommand) {
			fmt.Fprintf(os.Stderr, "[ERROR]: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "deskforge [name]",
		Version: version,
		Short:   "Create and edit desktop launchers",
		Long: `deskforge builds freedesktop .desktop launcher files through an
interactive form.

Launchers are written to <data dir>/applications, or to the directory set by
--dir or applications_dir in ~/.config/deskforge/config.yaml.

Run 'deskforge --new [name]' to create a launcher.
Run 'deskforge --edit <name>' to change an existing one.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runRoot,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if verbose {
				logWriter := stderr
				// The form owns the terminal, so logs go to a file while it runs
				if isTerminal() {
					logPath := filepath.Join(os.TempDir(), "deskforge.log")
					f, err := os.Create(logPath) //nolint:gosec // fixed file name in the temp dir
					if err == nil {
						logFile = f
						logWriter = f
						fmt.Fprintf(stderr, "Verbose logs: %s\n", logPath)
					}
				}
				slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				})))
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if logFile != nil {
				_ = logFile.Close()
				logFile = nil
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&appsDir, "dir", "d", "", "Override the applications directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().BoolVarP(&newLauncher, "new", "n", false, "Create a new launcher, optionally named by the argument")
	rootCmd.Flags().StringVarP(&editName, "edit", "e", "", "Edit an existing launcher")
	rootCmd.Flags().BoolVarP(&listAll, "list", "l", false, "List all existing launchers")
	rootCmd.Flags().StringVarP(&removeName, "remove", "r", "", "Remove an existing launcher")
	rootCmd.Flags().BoolVar(&showHistory, "history", false, "Show recent launcher changes, optionally for the named launcher")

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default app configuration",
		Long: `Write the default app configuration to ~/.config/deskforge/config.yaml.

Edit the file afterwards to set applications_dir, exec_prefix or the accepted
icon extensions.`,
		Args: cobra.NoArgs,
		RunE: runInit,
	}

	rootCmd.AddCommand(initCmd)

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	var name string
	if len(args) > 0 {
		name = args[0]
	}

	switch {
	case listAll:
		return runList()
	case removeName != "":
		return runRemove(removeName)
	case newLauncher:
		return runNew(name)
	case editName != "":
		return runEdit(editName)
	case showHistory:
		return runHistory(name)
	}

	fmt.Fprintln(stderr, "[WARNING]: Wrong command!")
	_ = cmd.Help()

	return errNoCommand
}

func runInit(_ *cobra.Command, _ []string) error {
	if err := config.SaveAppConfig(config.DefaultAppConfig()); err != nil {
		return fmt.Errorf("saving app config: %w", err)
	}

	fmt.Fprintf(stdout, "App configuration saved to %s\n", config.AppConfigPath())

	return nil
}

// env is what every command needs: the loaded config, the platform and the
// launcher store.
type env struct {
	cfg   *config.AppConfig
	plat  *platform.Platform
	store *desktop.Store
}

func loadEnv() (*env, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}

	override := cfg.ApplicationsDir
	if appsDir != "" {
		abs, err := filepath.Abs(config.ExpandPath(appsDir))
		if err != nil {
			return nil, fmt.Errorf("invalid applications directory: %w", err)
		}
		override = abs
	}

	plat := platform.Detect()

	dir, err := plat.ApplicationsDir(override)
	if err != nil {
		return nil, err
	}

	slog.Debug("environment loaded",
		slog.String("os", plat.OS),
		slog.String("applications", dir),
		slog.Bool("display", plat.HasDisplay))

	return &env{cfg: cfg, plat: plat, store: desktop.NewStore(dir)}, nil
}

func (e *env) formOptions() form.Options {
	return form.Options{
		Probe:          platform.FS{},
		Store:          e.store,
		ExecPrefix:     e.cfg.ExecPrefix,
		SearchPath:     platform.SearchPath(),
		IconExtensions: e.cfg.IconExtensions,
	}
}

func runNew(name string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	if name != "" && e.store.Exists(desktop.NormalizeName(name)) {
		return errFileExists
	}

	opts := e.formOptions()
	opts.Name = name

	return e.session(tui.Options{Form: opts, NoColor: e.cfg.NoColor})
}

func runEdit(name string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	fileName := desktop.NormalizeName(name)
	if !e.store.Exists(fileName) {
		return errFileMissing
	}

	entry, before, err := e.store.Load(fileName)
	if err != nil {
		return err
	}

	opts := e.formOptions()
	opts.Entry = &entry
	opts.FileName = fileName
	opts.Editing = true

	return e.session(tui.Options{Before: before, Form: opts, NoColor: e.cfg.NoColor})
}

// session runs the form and reports and records what it saved.
func (e *env) session(opts tui.Options) error {
	if !isTerminal() {
		return errors.New("the launcher form requires a terminal")
	}

	if !e.plat.HasDisplay {
		slog.Debug("no graphical session detected; launchers will apply on next login")
	}

	res, err := runSession(opts)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, tui.Summary(res))

	if !res.Saved {
		return nil
	}

	action := state.ActionCreated
	if res.Edited {
		action = state.ActionUpdated
	}
	e.record(res.FileName, action, res.Record.Bytes())

	return nil
}

func runList() error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	names, err := e.store.List()
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "[DESKFORGE]")
	for i, name := range names {
		fmt.Fprintf(stdout, "%d. %s\n", i+1, name)
	}
	fmt.Fprintf(stdout, "Total: %d\n", len(names))

	return nil
}

func runRemove(name string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	fileName := desktop.NormalizeName(name)
	if !e.store.Exists(fileName) {
		return errFileMissing
	}

	_, before, err := e.store.Load(fileName)
	if err != nil {
		slog.Debug("could not read launcher before removal", slog.String("error", err.Error()))
	}

	if err := e.store.Remove(fileName); err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Removed %s\n", fileName)
	e.record(fileName, state.ActionRemoved, before)

	return nil
}

func runHistory(name string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	hist, err := e.openHistory()
	if err != nil {
		return err
	}
	defer hist.Close() //nolint:errcheck // best-effort cleanup

	var events []state.Event
	if name != "" {
		events, err = hist.ForFile(desktop.NormalizeName(name), e.cfg.HistoryLimit)
	} else {
		events, err = hist.Recent(e.cfg.HistoryLimit)
	}
	if err != nil {
		return err
	}

	if len(events) == 0 {
		fmt.Fprintln(stdout, "No history recorded.")
		return nil
	}

	for _, ev := range events {
		fmt.Fprintf(stdout, "%s  %-7s  %s",
			ev.RecordedAt.Local().Format("2006-01-02 15:04:05"), ev.Action, ev.FileName)
		if ev.Host != "" {
			fmt.Fprintf(stdout, "  (%s)", ev.Host)
		}
		fmt.Fprintln(stdout)
	}

	return nil
}

func (e *env) openHistory() (*state.Store, error) {
	dir, err := e.plat.StateDir()
	if err != nil {
		return nil, err
	}

	return state.Open(filepath.Join(dir, state.DBFile))
}

// record appends an event to the history database. History is best-effort:
// failures are reported as warnings and never fail the command.
func (e *env) record(fileName string, action state.Action, content []byte) {
	hist, err := e.openHistory()
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not open history: %v\n", err)
		return
	}
	defer hist.Close() //nolint:errcheck // best-effort cleanup

	if prev, err := hist.Latest(fileName); err == nil && prev != nil {
		slog.Debug("previous change",
			slog.String("file", fileName),
			slog.String("action", string(prev.Action)),
			slog.Time("at", prev.RecordedAt))
	}

	err = hist.Record(state.Event{
		FileName: fileName,
		Action:   action,
		Host:     e.plat.Hostname,
		Content:  content,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Warning: could not record history: %v\n", err)
		return
	}

	if err := hist.Prune(fileName, e.cfg.HistoryLimit); err != nil {
		fmt.Fprintf(stderr, "Warning: %v\n", err)
	}
}
