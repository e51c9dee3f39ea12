package main

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/nao1215/sentinel/internal/history"
)

// TestNewPhoneCmd tests the phone command flags.
func TestNewPhoneCmd(t *testing.T) {
	t.Parallel()

	cmd := NewPhoneCmd()

	if cmd.Use != "phone" {
		t.Errorf("expected use 'phone', got %q", cmd.Use)
	}
	for _, name := range []string{"offline", "proxy", "timeout", "model", "log-file", "history"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected %s flag", name)
		}
	}
	if got := cmd.Flags().Lookup("history").DefValue; got != "8" {
		t.Errorf("got history default %q, expected %q", got, "8")
	}
	if history.DefaultCapacity != 8 {
		t.Errorf("got capacity %d, expected 8", history.DefaultCapacity)
	}
}

// TestOpenLogFile tests log file creation.
func TestOpenLogFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "state", "sentinel", "sentinel.log")

	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.WriteString("first\n"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	// A second open appends.
	f, err = openLogFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.WriteString("second\n"); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("failed to close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read: %v", err)
	}
	if string(content) != "first\nsecond\n" {
		t.Errorf("got %q, expected %q", content, "first\nsecond\n")
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("failed to stat: %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0600 {
			t.Errorf("expected permissions 0600, got %o", perm)
		}
	}
}
