package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	cases := []struct {
		level, format string
		debug         bool
		json          bool
	}{
		{level: "debug", format: "json", debug: true, json: true},
		{level: "info", format: "text", debug: false, json: false},
		{level: "", format: "", debug: false, json: true},
		{level: "WARN", format: "TEXT", debug: false, json: false},
	}

	for _, c := range cases {
		var buf bytes.Buffer
		l := New(&buf, c.level, c.format)
		l.Debug("debug message")
		l.Error("error message", "key", "value")

		out := buf.String()
		if strings.Contains(out, "debug message") != c.debug {
			t.Errorf("New(%q, %q): debug output %v want %v", c.level, c.format,
				strings.Contains(out, "debug message"), c.debug)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		last := lines[len(lines)-1]
		var m map[string]any
		isJSON := json.Unmarshal([]byte(last), &m) == nil
		if isJSON != c.json {
			t.Errorf("New(%q, %q): json %v want %v: %s", c.level, c.format, isJSON, c.json, last)
		}
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Errorf("FromContext(): expected the default logger")
	}

	l := New(&bytes.Buffer{}, "info", "json")
	ctx := WithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Errorf("FromContext(): expected the stored logger")
	}
}
