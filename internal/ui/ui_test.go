package ui

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	t.Run("status lines keep their text", func(t *testing.T) {
		if !strings.Contains(OK("migrated"), "migrated") {
			t.Error("OK dropped its text")
		}
		if !strings.Contains(Err("broken"), "✗ broken") {
			t.Error("Err dropped its marker")
		}
		if !strings.Contains(Warn("careful"), "careful") {
			t.Error("Warn dropped its text")
		}
	})

	t.Run("Table", func(t *testing.T) {
		out := Table([]string{"ID", "Name"}, [][]string{{"p1", "alpha"}, {"p2", "beta"}})

		for _, want := range []string{"ID", "Name", "p1", "alpha", "beta"} {
			if !strings.Contains(out, want) {
				t.Errorf("table missing %q:\n%s", want, out)
			}
		}
		if lines := strings.Split(out, "\n"); len(lines) < 4 {
			t.Errorf("expected bordered rows, got %d lines", len(lines))
		}
	})
}
