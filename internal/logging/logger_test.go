package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ticketflow/internal/logging"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("import terminé", "tickets", 12, "source", "backlog principal.md")
	line := strings.TrimSpace(buf.String())
	if !strings.Contains(line, "INFO import terminé") {
		t.Fatalf("unexpected line: %q", line)
	}
	if !strings.Contains(line, "tickets=12") {
		t.Fatalf("missing int attr: %q", line)
	}
	if !strings.Contains(line, `source="backlog principal.md"`) {
		t.Fatalf("string with spaces should be quoted: %q", line)
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Debug("invisible")
	logger.Info("invisible")
	logger.Warn("visible")
	out := buf.String()
	if strings.Contains(out, "invisible") {
		t.Fatalf("low-level records leaked: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn record missing: %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	logger.Info("export", "sections", 2)

	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if payload["msg"] != "export" {
		t.Fatalf("msg = %v", payload["msg"])
	}
	if payload["level"] != "info" {
		t.Fatalf("level = %v", payload["level"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
