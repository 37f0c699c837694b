package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/routinely/internal/models"
	"github.com/julianstephens/routinely/internal/storage"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "plain wrapped error",
			err:      fmt.Errorf("failed to connect: %w", errors.New("connection refused")),
			expected: "Error: failed to connect: connection refused",
		},
		{
			name:     "uninitialized store gets a hint",
			err:      fmt.Errorf("loading store: %w", storage.ErrNotInitialized),
			expected: "Error: loading store: " + storage.ErrNotInitialized.Error() + "\nRun 'routinely init' to create the store.",
		},
		{
			name:     "missing item gets a hint",
			err:      fmt.Errorf("habit h9: %w", models.ErrNotFound),
			expected: "Error: habit h9: models: item not found\nList ids with 'routinely task list' or 'routinely habit list'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	tests := []struct {
		name     string
		format   string
		args     []any
		expected string
	}{
		{
			name:     "simple message",
			format:   "something went wrong",
			args:     nil,
			expected: "Error: something went wrong",
		},
		{
			name:     "formatted message with string",
			format:   "failed to load %s",
			args:     []any{"database"},
			expected: "Error: failed to load database",
		},
		{
			name:     "formatted message with multiple args",
			format:   "connection to %s:%d failed",
			args:     []any{"localhost", 5432},
			expected: "Error: connection to localhost:5432 failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Formatf(tt.format, tt.args...)
			if result != tt.expected {
				t.Errorf("Formatf(%q, %v) = %q, want %q", tt.format, tt.args, result, tt.expected)
			}
		})
	}
}

// TestFatalExits runs each case in a child process since Fatal calls os.Exit.
func TestFatalExits(t *testing.T) {
	cases := map[string]func(){
		"plain":     func() { Fatal(errors.New("test error")) },
		"hinted":    func() { Fatal(fmt.Errorf("toggle h1: %w", models.ErrBeforeStart)) },
		"nil":       func() { Fatal(nil) },
		"formatted": func() { Fatalf("connection to %s:%d failed", "localhost", 5432) },
	}
	if name := os.Getenv("ROUTINELY_FATAL_CASE"); name != "" {
		cases[name]()
		os.Exit(0)
	}

	tests := []struct {
		name     string
		exitCode int
		stderr   []string
	}{
		{"plain", 1, []string{"Error: test error"}},
		{"hinted", 1, []string{"Error: toggle h1:", "on or after their start date"}},
		{"nil", 0, nil},
		{"formatted", 1, []string{"Error: connection to localhost:5432 failed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestFatalExits$")
			cmd.Env = append(os.Environ(), "ROUTINELY_FATAL_CASE="+tt.name)
			var stderr bytes.Buffer
			cmd.Stderr = &stderr

			err := cmd.Run()
			code := 0
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				code = exitErr.ExitCode()
			} else if err != nil {
				t.Fatalf("failed to run child process: %v", err)
			}
			if code != tt.exitCode {
				t.Errorf("exit code = %d, want %d", code, tt.exitCode)
			}
			for _, want := range tt.stderr {
				if !strings.Contains(stderr.String(), want) {
					t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
				}
			}
		})
	}
}
