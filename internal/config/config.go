package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "sentinel"

	// DefaultModel is the Gemini model that produces verdicts.
	DefaultModel = "gemini-2.5-flash"

	// DefaultTemperature is kept low so that verdicts for the same input
	// stay close to each other across runs.
	DefaultTemperature float32 = 0.1

	// DefaultTimeout bounds a single classification request. There is no
	// cancellation of in-flight scans, so this is the only upper bound on
	// how long a scan may stay in the scanning state.
	DefaultTimeout = 30 * time.Second

	// DefaultSettleDelay is the pause between a verdict arriving and it being
	// displayed, so the scanning animation is always visible.
	DefaultSettleDelay = 1500 * time.Millisecond

	// DefaultCloseDelay is the delay between collapsing the sheet and the
	// status returning to idle.
	DefaultCloseDelay = 500 * time.Millisecond

	// DefaultDismissDelay is the delay between a dismissal and the result
	// being cleared.
	DefaultDismissDelay = 300 * time.Millisecond

	// DefaultActionDelay is how long the remediation action shows as processing.
	DefaultActionDelay = 1500 * time.Millisecond

	// DefaultBatchSize is the number of concurrent scans for `scan --all`.
	// The free Gemini tier rate limits aggressively, so keep this small.
	DefaultBatchSize = 3

	// DefaultUserAgent identifies sentinel in HTTP requests.
	DefaultUserAgent = "Sentinel/1.0 (+https://github.com/nao1215/sentinel)"
)

// Config holds all configuration options for sentinel.
// This struct is populated from the config file, the environment and CLI
// flags (in that order of increasing precedence) and passed through the
// application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// for simplicity. The YAML file is nested by concern, but File.Apply
// flattens it into this struct so that the rest of the program has a single
// place to look.
type Config struct {
	// APIKey is the Gemini API key. When empty the offline replay classifier
	// is used.
	APIKey string

	// Model is the Gemini model name.
	Model string

	// Temperature is the sampling temperature sent with every request.
	Temperature float32

	// Timeout is the HTTP timeout for one classification request.
	Timeout time.Duration

	// ProxyAddress is an optional SOCKS5 proxy in "host:port" format for
	// classifier traffic. Empty means a direct connection.
	ProxyAddress string

	// UserAgent is the User-Agent header sent with classifier requests.
	UserAgent string

	// Offline forces the replay classifier even if an API key is present.
	Offline bool

	// SettleDelay, CloseDelay, DismissDelay and ActionDelay are the deferred
	// transition durations of the scan session.
	SettleDelay  time.Duration
	CloseDelay   time.Duration
	DismissDelay time.Duration
	ActionDelay  time.Duration

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches the log handler from text to JSON.
	LogJSON bool

	// BatchSize is the number of concurrent scans when scanning every scenario.
	BatchSize int

	// ConfigFilePath is the path to the configuration file.
	// If empty, FindConfigFile searches the default locations.
	ConfigFilePath string

	// Scenarios holds scenario overrides loaded from the config file.
	Scenarios map[string]ScenarioConfig

	// JSONReport enables JSON report output instead of the simple format.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the simple format.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (e.g., delays, temperature).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Model:        DefaultModel,
		Temperature:  DefaultTemperature,
		Timeout:      DefaultTimeout,
		UserAgent:    DefaultUserAgent,
		SettleDelay:  DefaultSettleDelay,
		CloseDelay:   DefaultCloseDelay,
		DismissDelay: DefaultDismissDelay,
		ActionDelay:  DefaultActionDelay,
		BatchSize:    DefaultBatchSize,
	}
}

// UseReplay reports whether the offline replay classifier should be used.
func (c *Config) UseReplay() bool {
	return c.Offline || c.APIKey == ""
}

// XDGConfigDir returns the XDG config directory for sentinel.
// On Linux: ~/.config/sentinel
// On macOS: ~/Library/Application Support/sentinel
// On Windows: %APPDATA%\sentinel
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGStateDir returns the XDG state directory for sentinel.
// The interactive phone simulator writes its log file here because the
// terminal is owned by the UI.
// On Linux: ~/.local/state/sentinel
func XDGStateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// LogFilePath returns the log file used by the interactive simulator.
func LogFilePath() string {
	return filepath.Join(XDGStateDir(), AppName+".log")
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all errors
// because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.Model == "" {
		return ErrEmptyModel
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return ErrInvalidTemperature
	}

	// Timeout must be positive; zero timeout would cause immediate failures
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.SettleDelay < 0 || c.CloseDelay < 0 || c.DismissDelay < 0 || c.ActionDelay < 0 {
		return ErrInvalidDelay
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	return nil
}
