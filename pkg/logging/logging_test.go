package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		{"DEBUG", LevelDebug},
		{"WARNING", LevelWarn},
		{"Error", LevelError},
		{"dEbUg", LevelDebug},

		// Empty and unrecognized default to Info
		{"", LevelInfo},
		{"trace", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"yaml", FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestValidLevel(t *testing.T) {
	for _, s := range []string{"debug", "INFO", "warn", "Warning", "error"} {
		if !ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = false", s)
		}
	}
	for _, s := range []string{"", "trace", "fatal"} {
		if ValidLevel(s) {
			t.Errorf("ValidLevel(%q) = true", s)
		}
	}
}

func TestNew_RespectsLevelAndFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelWarn, Format: FormatJSON, Output: &buf})

	logger.Info("hidden")
	logger.Warn("species request failed", "id", 3)

	out := strings.TrimSpace(buf.String())
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record written at warn level: %s", out)
	}
	var rec map[string]interface{}
	if err := json.Unmarshal([]byte(out), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out)
	}
	if rec["msg"] != "species request failed" {
		t.Errorf("msg = %v", rec["msg"])
	}
}

func TestOpen_WritesToOutputAndFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "especies.log")

	logger, closeFn, err := Open(Config{Level: LevelInfo, Format: FormatText, Output: &buf, File: path})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	logger.Info("species deleted", "id", 4)
	if err := closeFn(); err != nil {
		t.Fatalf("close error = %v", err)
	}

	if !strings.Contains(buf.String(), "species deleted") {
		t.Errorf("stderr output missing record: %q", buf.String())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"species deleted"`) {
		t.Errorf("log file missing JSON record: %q", string(data))
	}
}

func TestOpen_WithoutFile(t *testing.T) {
	logger, closeFn, err := Open(Config{Output: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if logger == nil {
		t.Fatal("Open() returned nil logger")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}

func TestOpen_BadPath(t *testing.T) {
	_, _, err := Open(Config{File: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	if err == nil {
		t.Fatal("Open() should fail for a path in a missing directory")
	}
}

func TestMultiHandler_LevelsPerHandler(t *testing.T) {
	var debugBuf, errorBuf bytes.Buffer
	h := NewMultiHandler(
		New(Config{Level: LevelDebug, Output: &debugBuf}).Handler(),
		New(Config{Level: LevelError, Output: &errorBuf}).Handler(),
	)
	logger := slog.New(h).With("component", "controller")

	logger.Debug("species list rendered")
	logger.Error("failed to load species list")

	if !strings.Contains(debugBuf.String(), "species list rendered") ||
		!strings.Contains(debugBuf.String(), "failed to load species list") {
		t.Errorf("debug handler output = %q", debugBuf.String())
	}
	if strings.Contains(errorBuf.String(), "species list rendered") {
		t.Errorf("error handler received debug record: %q", errorBuf.String())
	}
	if !strings.Contains(errorBuf.String(), "component=controller") {
		t.Errorf("error handler missing attrs: %q", errorBuf.String())
	}
}
