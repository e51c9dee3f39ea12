package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestAPIKeyFromEnv tests the API key lookup order.
// t.Setenv forbids t.Parallel, so these subtests run sequentially.
func TestAPIKeyFromEnv(t *testing.T) {
	t.Run("prefers GEMINI_API_KEY", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "gemini")
		t.Setenv(EnvAPIKey, "generic")
		if got := APIKeyFromEnv(); got != "gemini" {
			t.Errorf("got %q, expected %q", got, "gemini")
		}
	})

	t.Run("falls back to API_KEY", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "")
		t.Setenv(EnvAPIKey, "generic")
		if got := APIKeyFromEnv(); got != "generic" {
			t.Errorf("got %q, expected %q", got, "generic")
		}
	})

	t.Run("empty when unset", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "")
		t.Setenv(EnvAPIKey, "")
		if got := APIKeyFromEnv(); got != "" {
			t.Errorf("got %q, expected empty string", got)
		}
	})
}

// TestLoadEnvFile tests dotenv loading.
func TestLoadEnvFile(t *testing.T) {
	t.Run("missing file is not an error", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("loads variables", func(t *testing.T) {
		t.Setenv(EnvGeminiAPIKey, "")
		os.Unsetenv(EnvGeminiAPIKey) //nolint:errcheck // restored by t.Setenv cleanup

		path := filepath.Join(t.TempDir(), ".env")
		if err := os.WriteFile(path, []byte("GEMINI_API_KEY=from-dotenv\n"), 0600); err != nil {
			t.Fatalf("failed to write env file: %v", err)
		}
		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := os.Getenv(EnvGeminiAPIKey); got != "from-dotenv" {
			t.Errorf("got %q, expected %q", got, "from-dotenv")
		}
	})
}
