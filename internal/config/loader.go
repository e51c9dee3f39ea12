package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/sentinel/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".sentinel"

// XDGConfigFile is the file name looked up inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// File represents the structure of the sentinel configuration file.
type File struct {
	// Classifier configures the verdict backend.
	Classifier ClassifierConfig `yaml:"classifier,omitempty"`

	// Timings overrides the session delays.
	Timings TimingsConfig `yaml:"timings,omitempty"`

	// Scenarios maps a scenario name to its input. A name that matches a
	// built-in scenario replaces it; other names are added.
	Scenarios map[string]ScenarioConfig `yaml:"scenarios,omitempty"`
}

// ClassifierConfig is the classifier section of the config file.
type ClassifierConfig struct {
	Model string `yaml:"model,omitempty"`

	// Temperature is a pointer so that an explicit 0 is distinguishable
	// from an absent value.
	Temperature *float32 `yaml:"temperature,omitempty"`

	Timeout   time.Duration `yaml:"timeout,omitempty"`
	Proxy     string        `yaml:"proxy,omitempty"`
	UserAgent string        `yaml:"userAgent,omitempty"`
	Offline   bool          `yaml:"offline,omitempty"`
}

// TimingsConfig is the timings section of the config file.
// Values are Go duration strings such as "1500ms".
type TimingsConfig struct {
	Settle  time.Duration `yaml:"settle,omitempty"`
	Close   time.Duration `yaml:"close,omitempty"`
	Dismiss time.Duration `yaml:"dismiss,omitempty"`
	Action  time.Duration `yaml:"action,omitempty"`
}

// ScenarioConfig is one scenario entry of the config file.
type ScenarioConfig struct {
	// Source is the human label, e.g. "SMS Monitor".
	Source string `yaml:"source,omitempty"`

	// Context is the app context name, e.g. "messages".
	Context string `yaml:"context"`

	// Text is the transcript sent to the classifier.
	Text string `yaml:"text"`
}

// Validate checks a scenario entry.
func (s ScenarioConfig) Validate() error {
	if s.Text == "" {
		return fmt.Errorf("%w: empty text", ErrInvalidScenario)
	}
	if _, err := model.ParseAppContext(s.Context); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	return nil
}

// LoadConfigFile loads a configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Scenarios == nil {
		cf.Scenarios = make(map[string]ScenarioConfig)
	}
	for name, sc := range cf.Scenarios {
		if err := sc.Validate(); err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
	}

	return &cf, nil
}

// Apply copies every value set in the file onto cfg.
// Zero values in the file leave cfg unchanged.
func (cf *File) Apply(cfg *Config) {
	c := cf.Classifier
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.Temperature != nil {
		cfg.Temperature = *c.Temperature
	}
	if c.Timeout != 0 {
		cfg.Timeout = c.Timeout
	}
	if c.Proxy != "" {
		cfg.ProxyAddress = c.Proxy
	}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.Offline {
		cfg.Offline = true
	}

	t := cf.Timings
	if t.Settle != 0 {
		cfg.SettleDelay = t.Settle
	}
	if t.Close != 0 {
		cfg.CloseDelay = t.Close
	}
	if t.Dismiss != 0 {
		cfg.DismissDelay = t.Dismiss
	}
	if t.Action != 0 {
		cfg.ActionDelay = t.Action
	}

	if len(cf.Scenarios) > 0 {
		if cfg.Scenarios == nil {
			cfg.Scenarios = make(map[string]ScenarioConfig, len(cf.Scenarios))
		}
		for name, sc := range cf.Scenarios {
			cfg.Scenarios[name] = sc
		}
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .sentinel in the current directory
// 3. Look for config.yaml in the XDG config directory
// 4. Look for .sentinel in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}
