package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/sentinel/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/sentinel.yaml
var configTemplate embed.FS

// templatePath is the embedded template file.
const templatePath = "templates/sentinel.yaml"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new Sentinel configuration file",
		Long: `Initialize creates a new .sentinel configuration file in the current directory.

The generated file includes:
- Classifier settings (model, temperature, timeout, proxy)
- Session timings for the settle, close, dismiss and action delays
- Commented examples for extra scenarios

Examples:
  # Create .sentinel in current directory
  sentinel init

  # Create the config in the XDG config directory
  sentinel init --xdg

  # Create config file at a specific path
  sentinel init -o myconfig.yaml

  # Force overwrite existing file
  sentinel init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().Bool("xdg", false,
		"Write the configuration to the XDG config directory")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	useXDG, err := cmd.Flags().GetBool("xdg")
	if err != nil {
		return err
	}
	if useXDG {
		outputPath = filepath.Join(config.XDGConfigDir(), config.XDGConfigFile)
	}

	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := configTemplate.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to configure:")
	fmt.Fprintln(out, "  - The Gemini model and request timeout")
	fmt.Fprintln(out, "  - Session timings")
	fmt.Fprintln(out, "  - Extra scenarios for the phone simulator")
	fmt.Fprintf(out, "\nSet %s in the environment or in %s to enable live verdicts.\n",
		config.EnvGeminiAPIKey, config.DefaultEnvFile)

	return nil
}
