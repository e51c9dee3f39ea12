package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/nao1215/sentinel/internal/classifier"
	"github.com/nao1215/sentinel/internal/config"
	sentinellog "github.com/nao1215/sentinel/internal/log"
	"github.com/nao1215/sentinel/internal/scenario"
	"github.com/nao1215/sentinel/internal/session"
	"github.com/nao1215/sentinel/internal/transport"
	"github.com/spf13/cobra"
)

// getBoolFlag retrieves a bool flag from the command or the root's
// persistent flags. Missing flags read as false.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	v, err := cmd.Flags().GetBool(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return v
}

// getStringFlag is the string counterpart of getBoolFlag.
func getStringFlag(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		v, err = cmd.Root().PersistentFlags().GetString(name)
		if err != nil {
			return ""
		}
	}
	return v
}

// buildConfig creates a Config from defaults, the environment and the
// config file. Command specific flags are applied by the caller.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	if err := config.LoadEnvFile(config.DefaultEnvFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.DefaultEnvFile, err)
	}
	cfg.APIKey = config.APIKeyFromEnv()

	cfg.Verbose = getBoolFlag(cmd, "verbose")
	cfg.LogJSON = getBoolFlag(cmd, "log-json")
	cfg.ConfigFilePath = getStringFlag(cmd, "config")

	// If the user explicitly specified a config file path, error if not found.
	// If no path was specified, silently run on defaults.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	switch {
	case configPath != "":
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cf.Apply(cfg)
	case explicitConfigPath:
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// addClassifierFlags registers the flags shared by every command that
// talks to a classifier.
func addClassifierFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("offline", false,
		"Replay recorded verdicts instead of calling Gemini")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy for classifier traffic (e.g., 127.0.0.1:1080)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for one classification request")
	cmd.Flags().String("model", config.DefaultModel,
		"Gemini model name")
}

// applyClassifierFlags copies classifier flags onto cfg.
// Only flags set on the command line override the config file.
func applyClassifierFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	var err error

	if flags.Changed("offline") {
		if cfg.Offline, err = flags.GetBool("offline"); err != nil {
			return err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyAddress, err = flags.GetString("proxy"); err != nil {
			return err
		}
	}
	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return err
		}
	}
	if flags.Changed("model") {
		if cfg.Model, err = flags.GetString("model"); err != nil {
			return err
		}
	}
	return nil
}

// setupLogger creates a secret-masking structured logger writing to w.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	return sentinellog.New(w,
		sentinellog.WithVerbose(cfg.Verbose),
		sentinellog.WithJSON(cfg.LogJSON),
	)
}

// loadCatalog returns the built-in scenarios with the config file entries
// applied on top.
func loadCatalog(cfg *config.Config) (*scenario.Catalog, error) {
	catalog := scenario.Builtin()
	if err := catalog.Apply(cfg.Scenarios); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return catalog, nil
}

// newClassifier selects the classifier for cfg.
// Without an API key, or in offline mode, the catalogue's recorded verdicts
// are replayed. Otherwise Gemini is called through the transport client,
// after verifying the SOCKS5 proxy when one is configured.
func newClassifier(ctx context.Context, cfg *config.Config, catalog *scenario.Catalog, logger *slog.Logger) (classifier.Classifier, error) {
	if cfg.UseReplay() {
		replay := classifier.NewReplay(catalog.Recordings(), classifier.WithReplayLogger(logger))
		logger.Info("using offline replay classifier",
			"recordings", replay.Len(),
			"offline", cfg.Offline,
		)
		return replay, nil
	}

	opts := []transport.Option{
		transport.WithTimeout(cfg.Timeout),
		transport.WithUserAgent(cfg.UserAgent),
	}
	if cfg.ProxyAddress != "" {
		status := transport.CheckProxy(ctx, cfg.ProxyAddress)
		if status != transport.ProxyStatusOK {
			return nil, fmt.Errorf("proxy check failed: %s (make sure a SOCKS5 proxy is running at %s)",
				status, cfg.ProxyAddress)
		}
		logger.Info("SOCKS5 proxy verified", "address", cfg.ProxyAddress)
		opts = append(opts, transport.WithProxy(cfg.ProxyAddress))
	}

	httpClient, err := transport.NewHTTPClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	gemini, err := classifier.NewGemini(ctx, cfg.APIKey,
		classifier.WithModel(cfg.Model),
		classifier.WithTemperature(cfg.Temperature),
		classifier.WithHTTPClient(httpClient),
		classifier.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini classifier: %w", err)
	}
	logger.Info("using Gemini classifier", "model", cfg.Model)
	return gemini, nil
}

// sessionTimings converts the configured delays.
func sessionTimings(cfg *config.Config) session.Timings {
	return session.Timings{
		Settle:  cfg.SettleDelay,
		Close:   cfg.CloseDelay,
		Dismiss: cfg.DismissDelay,
		Action:  cfg.ActionDelay,
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
