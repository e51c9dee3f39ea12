package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nao1215/sentinel/internal/config"
	"github.com/nao1215/sentinel/internal/history"
	"github.com/nao1215/sentinel/internal/session"
	"github.com/nao1215/sentinel/internal/tui"
	"github.com/spf13/cobra"
)

// NewPhoneCmd creates the phone command.
func NewPhoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phone",
		Short: "Start the interactive phone simulator",
		Long: `Phone starts a simulated phone in the terminal.

Switch between the simulated apps, scan what each app shows, and watch the
security agent's verdict slide up from the bottom of the screen.

Keys:
  1-6, tab      switch app
  s             scan the current app
  o             open the agent sheet
  c, esc        close the sheet
  d             dismiss the verdict
  a             take the protective action
  p             pause or resume protection
  m             manual risk check
  q, ctrl+c     quit

The terminal is owned by the simulator, so logs are written to the
sentinel.log file in the XDG state directory (or --log-file).`,
		Args: cobra.NoArgs,
		RunE: runPhoneCmd,
	}

	addClassifierFlags(cmd)
	cmd.Flags().String("log-file", "",
		"Log file path (default: sentinel.log in the XDG state directory)")
	cmd.Flags().Int("history", history.DefaultCapacity,
		"Number of finished scans kept as recent activity")

	return cmd
}

// runPhoneCmd executes the phone command.
func runPhoneCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyClassifierFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logPath, err := cmd.Flags().GetString("log-file")
	if err != nil {
		return err
	}
	if logPath == "" {
		logPath = config.LogFilePath()
	}
	capacity, err := cmd.Flags().GetInt("history")
	if err != nil {
		return err
	}

	logFile, err := openLogFile(logPath)
	if err != nil {
		return err
	}
	defer logFile.Close()

	logger := setupLogger(cfg, logFile)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	cls, err := newClassifier(ctx, cfg, catalog, logger)
	if err != nil {
		return err
	}

	recent := history.NewLog(capacity)
	ctrl := session.NewController(cls,
		session.WithTimings(sessionTimings(cfg)),
		session.WithLogger(logger),
		session.WithRecorder(recent),
	)
	defer ctrl.Shutdown()

	m := tui.New(ctrl,
		tui.WithContext(ctx),
		tui.WithCatalog(catalog),
		tui.WithHistory(recent),
	)

	logger.Info("starting phone simulator",
		"classifier", cls.Name(),
		"scenarios", catalog.Len(),
	)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("phone simulator failed: %w", err)
	}

	logger.Info("phone simulator stopped", "scans", recent.Len())
	return nil
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600) //nolint:gosec // User-provided log path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}
