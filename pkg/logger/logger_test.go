package logger

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "warn", "json")

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info line should be filtered at warn level")
	}
	if !strings.Contains(out, `"service":"staff-directory-api"`) || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestNewWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, "debug", "pretty")
	log.Debug().Msg("console line")

	if strings.HasPrefix(strings.TrimSpace(buf.String()), "{") {
		t.Errorf("pretty format should not emit JSON: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "console line") {
		t.Errorf("missing message: %s", buf.String())
	}
}
