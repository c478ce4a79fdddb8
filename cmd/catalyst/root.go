package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"catalyst/internal/config"
	"catalyst/internal/eventbus"
	"catalyst/internal/executor"
	"catalyst/internal/finder"
	"catalyst/internal/process"
	"catalyst/internal/registry"
	"catalyst/internal/ui"
)

type rootFlags struct {
	configPath string
	logFile    string
}

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "catalyst",
		Short:         "Keystroke-driven command launcher",
		Long:          "catalyst runs configured source commands as you type and executes the action of the candidate you pick.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLauncher(cmd.Context(), flags)
		},
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default "+config.UserConfigPath()+")")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "log file (default "+defaultLogPath()+")")

	root.AddCommand(newInitCommand(flags), newCheckCommand(flags), newVersionCommand())
	return root
}

func newInitCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := flags.service()
			if err := svc.Init(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", svc.Path())
			return nil
		},
	}
}

func newCheckCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration and list its sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			where := cfg.Path
			if where == "" {
				where = "built-in defaults"
			}
			fmt.Fprintf(out, "Configuration OK (%s)\n", where)
			for _, src := range cfg.Sources {
				key := src.Key
				if key == "" {
					key = "-"
				}
				fmt.Fprintf(out, "  %-12s key=%-3s %-14s timeout=%dms unfiltered=%t\n",
					src.Name, key, src.ActionKind, src.TimeoutMs, src.Unfiltered)
			}
			for _, dup := range cfg.DuplicateKeys() {
				fmt.Fprintf(out, "warning: %s; routing uses the first\n", dup)
			}
			return nil
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "catalyst %s\n", version)
		},
	}
}

func (f *rootFlags) service() config.ConfigService {
	if f.configPath != "" {
		return config.NewConfigServiceForPath(f.configPath)
	}
	return config.NewConfigService()
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	svc := flags.service()
	if flags.configPath != "" {
		// an explicit path must exist
		return svc.LoadFromPath(flags.configPath)
	}
	return svc.Load()
}

func defaultLogPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "catalyst", "catalyst.log")
}

// setupLogging sends the standard logger to a file; the TUI owns the terminal
func setupLogging(path string) (func(), error) {
	if path == "" {
		path = defaultLogPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(logFile)
	return func() { logFile.Close() }, nil
}

func runLauncher(ctx context.Context, flags *rootFlags) error {
	// Configuration errors are fatal and go to the terminal
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	closeLog, err := setupLogging(flags.logFile)
	if err != nil {
		return err
	}
	defer closeLog()
	log.Printf("Starting catalyst %s with %d sources", version, len(cfg.Sources))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer cancel()

	bus := eventbus.New()
	defer bus.Close()
	subscribeLogging(bus)

	runner := process.NewExecRunner()
	f := finder.New(registry.FromConfig(cfg), runner, bus)
	exec := executor.New(runner, bus)

	model := ui.NewModel(bus, cfg, f, exec)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	model.SetProgram(p)

	if cfg.Path != "" {
		watchConfig(ctx, cfg.Path, bus, p)
	}

	_, runErr := p.Run()

	// Let actions started just before the launcher hid itself finish starting
	model.Wait()

	if runErr != nil && ctx.Err() == nil {
		return fmt.Errorf("error running program: %w", runErr)
	}
	return nil
}

// watchConfig reloads the configuration whenever the file changes and hands
// the result to the running program
func watchConfig(ctx context.Context, path string, bus eventbus.EventBus, p *tea.Program) {
	w, err := config.NewWatcher(path, bus)
	if err != nil {
		log.Printf("Config reload disabled: %v", err)
		return
	}
	go w.Run(ctx)

	svc := config.NewConfigServiceForPath(path)
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		cfg, err := svc.LoadFromPath(path)
		if err != nil {
			log.Printf("Config reload failed: %v", err)
		}
		p.Send(ui.ConfigReloadedMsg{Config: cfg, Err: err})
	})
}

func subscribeLogging(bus eventbus.EventBus) {
	bus.Subscribe(eventbus.EventQueryStarted, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.QueryStartedEvent); ok {
			log.Printf("Query %q -> %q on %v", event.Query, event.EffectiveQuery, event.Sources)
		}
	})
	bus.Subscribe(eventbus.EventCandidatesFound, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.CandidatesFoundEvent); ok {
			log.Printf("Query %q found %d candidates in %s", event.Query, event.Count, event.Duration)
		}
	})
}
