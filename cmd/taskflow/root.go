package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"taskflow/internal/config"
	"taskflow/internal/logging"
	"taskflow/internal/storage"
	"taskflow/internal/task"
	"taskflow/internal/theme"
	"taskflow/internal/ui"
)

var version = "dev"

type rootOptions struct {
	configPath string
	ephemeral  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "taskflow",
		Short:         "A keyboard-driven task list for the terminal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts)
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&opts.ephemeral, "ephemeral", false, "keep tasks in memory only")
	cmd.AddCommand(newExportCmd(opts))
	return cmd
}

// session holds everything opened from the config for one run.
type session struct {
	cfg     config.Config
	logger  *log.Logger
	adapter *storage.Adapter
	store   *task.Store
	closers []func() error
}

func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openSession(opts *rootOptions) (*session, error) {
	configPath := opts.configPath
	if configPath == "" {
		configPath = config.ResolveConfigPath()
	}
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, closeLog, err := logging.Setup(cfg.LogPath, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	s := &session{cfg: cfg, logger: logger, closers: []func() error{closeLog}}
	logger.Info("starting taskflow", "config", configPath, "first_launch", firstLaunch, "ephemeral", opts.ephemeral)

	var kv storage.KV
	if opts.ephemeral {
		kv = storage.NewMemoryKV()
	} else {
		db, err := storage.Open(cfg.DBPath)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("opening database: %w", err)
		}
		s.closers = append(s.closers, db.Close)
		kv = db
	}

	s.adapter = storage.NewAdapter(kv, logger)
	s.store = task.NewStore(s.adapter.LoadTasks(), s.adapter)
	logger.Debug("loaded tasks", "count", s.store.Len())
	return s, nil
}

// osPrefersDark lets the config pin the default theme; otherwise the
// terminal background decides.
func osPrefersDark(cfg config.Config, logger *log.Logger) bool {
	if cfg.Theme != "" {
		if t, ok := theme.Parse(cfg.Theme); ok {
			return t.IsDark()
		}
		logger.Warn("ignoring unknown theme in config", "theme", cfg.Theme)
	}
	return lipgloss.HasDarkBackground()
}

func runTUI(opts *rootOptions) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "closing session: %v\n", cerr)
		}
	}()

	err = ui.Run(ui.Options{
		Store:         s.store,
		Themes:        s.adapter,
		Config:        s.cfg,
		OSPrefersDark: osPrefersDark(s.cfg, s.logger),
		Logger:        s.logger,
	})
	if err != nil {
		s.logger.Error("program exited", "err", err)
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
