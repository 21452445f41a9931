package shared

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func TestGenerateID(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id := GenerateID()
		if len(id) != 36 {
			t.Fatalf("expected a 36 character uuid, got %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestParseLogLevel(t *testing.T) {
	tc := []struct {
		name  string
		level string
		want  log.Level
	}{
		{name: "debug", level: "debug", want: log.DebugLevel},
		{name: "upper case", level: "WARN", want: log.WarnLevel},
		{name: "error", level: "error", want: log.ErrorLevel},
		{name: "unknown falls back to info", level: "verbose", want: log.InfoLevel},
		{name: "empty falls back to info", level: "", want: log.InfoLevel},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLogLevel(tt.level); got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Info("hello", "key", "value")

	if !bytes.Contains(buf.Bytes(), []byte("hello")) || !bytes.Contains(buf.Bytes(), []byte("key=value")) {
		t.Errorf("expected structured output, got %q", buf.String())
	}
}

func TestNewDatabase(t *testing.T) {
	ctx := context.Background()

	t.Run("sqlite file", func(t *testing.T) {
		client, err := NewDatabase(ctx, DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "test.db")})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer client.Close()

		if client.Dialect.Name() != "sqlite" {
			t.Errorf("expected sqlite dialect, got %s", client.Dialect.Name())
		}
	})

	t.Run("sqlite memory is pinned to one connection", func(t *testing.T) {
		client, err := NewDatabase(ctx, DatabaseConfig{Driver: "sqlite", Path: ":memory:"})
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer client.Close()

		if got := client.DB.Stats().MaxOpenConnections; got != 1 {
			t.Errorf("expected 1 max open connection, got %d", got)
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, err := NewDatabase(ctx, DatabaseConfig{Driver: "oracle", Path: "x"})
		if !errors.Is(err, ErrUnknownDialect) {
			t.Errorf("expected ErrUnknownDialect, got %v", err)
		}
	})
}
