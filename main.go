package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nissyi-gh/taskdeck/internal/auth"
	"github.com/nissyi-gh/taskdeck/internal/config"
	"github.com/nissyi-gh/taskdeck/internal/filter"
	"github.com/nissyi-gh/taskdeck/internal/notify"
	"github.com/nissyi-gh/taskdeck/internal/storage"
	"github.com/nissyi-gh/taskdeck/internal/store"
	"github.com/nissyi-gh/taskdeck/internal/ui"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "taskdeck",
	Short:         "taskdeck - personal task manager for the terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/taskdeck/config.toml)")
	rootCmd.AddCommand(newListCmd(), newStatsCmd(), newImportCmd(), newExportCmd(), newRemindCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds what every command opens: the config and the persistent task
// collection.
type app struct {
	cfg   config.Config
	local *storage.Store
	store *store.TaskStore
	logs  *os.File
}

func openApp() (*app, error) {
	path := configPath
	if path == "" {
		path = config.ResolveConfigPath()
	}
	cfg, err := config.LoadOrCreate(path)
	if err != nil {
		return nil, err
	}

	// Everything logs to the file so store chatter never mixes with command
	// output or the TUI.
	logPath := cfg.ResolveLogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	logs, err := tea.LogToFile(logPath, "")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	local, err := storage.Open(cfg.DBPath)
	if err != nil {
		log.SetOutput(os.Stderr)
		logs.Close()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return &app{cfg: cfg, local: local, store: store.NewTaskStore(local), logs: logs}, nil
}

func (a *app) Close() {
	a.local.Close()
	log.SetOutput(os.Stderr)
	a.logs.Close()
}

func runTUI(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	session, err := storage.OpenSession()
	if err != nil {
		return fmt.Errorf("opening session storage: %w", err)
	}
	defer session.Close()

	interval, err := a.cfg.Interval()
	if err != nil {
		return err
	}
	debounce, err := a.cfg.Debounce()
	if err != nil {
		return err
	}
	status, err := filter.ParseStatus(a.cfg.DefaultStatus)
	if err != nil {
		return fmt.Errorf("default_status: %w", err)
	}
	priority, err := filter.ParsePriority(a.cfg.DefaultPriority)
	if err != nil {
		return fmt.Errorf("default_priority: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return ui.Run(ctx, ui.Deps{
		Gate:            auth.NewGate(session),
		Store:           a.store,
		Notifier:        notify.New(a.store, interval),
		Prefs:           a.local,
		Debounce:        debounce,
		DefaultStatus:   status,
		DefaultPriority: priority,
	})
}
