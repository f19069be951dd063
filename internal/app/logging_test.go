package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LogLevelDebug, "DEBUG"},
		{LogLevelInfo, "INFO"},
		{LogLevelWarn, "WARN"},
		{LogLevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.level.String(); got != tt.expected {
			t.Errorf("LogLevel(%d).String() = %q, expected %q", tt.level, got, tt.expected)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected LogLevel
		ok       bool
	}{
		{"debug", LogLevelDebug, true},
		{"DEBUG", LogLevelDebug, true},
		{"Info", LogLevelInfo, true},
		{"warn", LogLevelWarn, true},
		{"warning", LogLevelWarn, true},
		{"ERROR", LogLevelError, true},
		{"verbose", LogLevelInfo, false},
		{"", LogLevelInfo, false},
	}

	for _, tt := range tests {
		got, ok := ParseLogLevel(tt.input)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseLogLevel(%q) = (%s, %v), expected (%s, %v)", tt.input, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestNewLogger_DefaultOutput(t *testing.T) {
	logger := NewLogger(LoggerConfig{})
	if logger.output == nil {
		t.Error("expected default output to be set")
	}
}

func TestLogger_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelDebug,
		Output: &buf,
		Prefix: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	for _, want := range []string{"[DEBUG]", "[INFO]", "[WARN]", "[ERROR]", "test: "} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
	if n := strings.Count(output, "\n"); n != 4 {
		t.Errorf("expected 4 lines, got %d", n)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{
		Level:  LogLevelWarn,
		Output: &buf,
	})

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	output := buf.String()
	if strings.Contains(output, "[DEBUG]") || strings.Contains(output, "[INFO]") {
		t.Errorf("expected DEBUG and INFO to be filtered out:\n%s", output)
	}
	if !strings.Contains(output, "[WARN]") || !strings.Contains(output, "[ERROR]") {
		t.Errorf("expected WARN and ERROR in output:\n%s", output)
	}

	if logger.Enabled(LogLevelInfo) {
		t.Error("info should not be enabled at warn level")
	}
	if !logger.Enabled(LogLevelError) {
		t.Error("error should be enabled at warn level")
	}
}

func TestLogger_Format(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.Info("formatted %s %d", "test", 42)

	if !strings.Contains(buf.String(), "formatted test 42") {
		t.Errorf("expected formatted message, got: %s", buf.String())
	}
}

func TestLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithFields(map[string]any{"zeta": 1, "alpha": "a"}).WithField("mid", true).Info("test")

	if !strings.Contains(buf.String(), "{alpha=a, mid=true, zeta=1}") {
		t.Errorf("expected sorted fields, got: %s", buf.String())
	}
}

func TestLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.WithComponent("editor").Info("test")

	if !strings.Contains(buf.String(), "component=editor") {
		t.Errorf("expected component in output, got: %s", buf.String())
	}
}

func TestLogger_DerivedInheritsLevel(t *testing.T) {
	var buf bytes.Buffer
	parent := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})
	child := parent.WithField("k", "v")

	child.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output at error level, got: %s", buf.String())
	}

	child.SetLevel(LogLevelInfo)
	child.Info("shown")
	if buf.Len() == 0 {
		t.Error("expected output after SetLevel")
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	logger.Debug("test")
	logger.Error("test %d", 1)
	logger.WithField("a", 1).Warn("test")

	if logger.Enabled(LogLevelError) {
		t.Error("nop logger should report every level disabled")
	}
}

func TestOpenLogFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyview.log")
	if err := os.WriteFile(path, []byte("earlier\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := openLogFile(path)
	if err != nil {
		t.Fatalf("openLogFile failed: %v", err)
	}
	logger := NewLogger(LoggerConfig{Level: LogLevelInfo, Output: f})
	logger.Info("later")
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "earlier\n") || !strings.Contains(string(data), "later") {
		t.Errorf("log file not appended to: %q", data)
	}
}

func TestOpenLogFileError(t *testing.T) {
	_, err := openLogFile(filepath.Join(t.TempDir(), "missing", "dir", "x.log"))

	var initErr *InitError
	if !errors.As(err, &initErr) || initErr.Component != "log file" {
		t.Errorf("expected InitError for log file, got %v", err)
	}
}
