package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     DEBUG,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "test",
	})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 log lines, got %d", len(lines))
	}

	wantLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, line := range lines {
		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Errorf("Line %d is not valid JSON: %v", i+1, err)
			continue
		}
		if entry.Level != wantLevels[i] {
			t.Errorf("Line %d: expected level %s, got %s", i+1, wantLevels[i], entry.Level)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{Level: WARN, Format: JSONFormat, Output: &buf})

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("Expected 2 log lines with WARN level, got %d", len(lines))
	}
	if logger.Enabled(INFO) {
		t.Error("Expected INFO to be disabled at WARN level")
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{
		Level:     INFO,
		Format:    JSONFormat,
		Output:    &buf,
		Component: "fetcher",
	})

	logger.Error("request failed", errors.New("connection refused"), Fields{
		"endpoint": "/locations",
		"status":   502,
	})

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}

	if entry.Message != "request failed" {
		t.Errorf("Expected message 'request failed', got '%s'", entry.Message)
	}
	if entry.Component != "fetcher" {
		t.Errorf("Expected component 'fetcher', got '%s'", entry.Component)
	}
	if entry.Error != "connection refused" {
		t.Errorf("Expected error 'connection refused', got '%s'", entry.Error)
	}
	if entry.Fields["endpoint"] != "/locations" {
		t.Errorf("Expected endpoint field, got %v", entry.Fields["endpoint"])
	}
	if entry.Fields["status"] != float64(502) {
		t.Errorf("Expected status 502, got %v", entry.Fields["status"])
	}
	if !strings.HasPrefix(entry.Caller, "logger_test.go:") {
		t.Errorf("Expected caller in logger_test.go, got %q", entry.Caller)
	}
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := New(Config{Level: INFO, Format: TextFormat, Output: &buf, Component: "session"})
	logger.Info("catalog refreshed", Fields{"observatories": 3, "dropped": 1})

	output := buf.String()
	if !strings.Contains(output, "INFO [session] catalog refreshed") {
		t.Errorf("Expected level, component and message, got %q", output)
	}
	if !strings.Contains(output, "fields={dropped=1, observatories=3}") {
		t.Errorf("Expected fields in key order, got %q", output)
	}
}

func TestWithComponentSharesOutput(t *testing.T) {
	var buf bytes.Buffer

	parent := New(Config{Level: INFO, Format: JSONFormat, Output: &buf, Component: "root"})
	child := parent.WithComponent("child")
	child.Infof("hello %s", "world")

	var entry LogEntry
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse JSON log: %v", err)
	}
	if entry.Component != "child" || entry.Message != "hello world" {
		t.Errorf("Unexpected entry %+v", entry)
	}
}

func TestParseLevelAndFormat(t *testing.T) {
	levels := map[string]LogLevel{"debug": DEBUG, "INFO": INFO, "warning": WARN, " error ": ERROR}
	for input, want := range levels {
		got, ok := ParseLevel(input)
		if !ok || got != want {
			t.Errorf("ParseLevel(%q): expected %s, got %s (ok=%v)", input, want, got, ok)
		}
	}
	if _, ok := ParseLevel("loud"); ok {
		t.Error("Expected unknown level to be rejected")
	}

	if f, ok := ParseFormat("JSON"); !ok || f != JSONFormat {
		t.Errorf("Expected JSON format, got %v (ok=%v)", f, ok)
	}
	if _, ok := ParseFormat("xml"); ok {
		t.Error("Expected unknown format to be rejected")
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetGlobalLogger()
	defer SetGlobalLogger(original)

	var buf bytes.Buffer
	SetGlobalLogger(New(Config{Level: INFO, Format: TextFormat, Output: &buf}))

	Configure("warn", "json")
	Info("dropped")
	Warn("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line after raising level, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "{") {
		t.Errorf("Expected JSON output after Configure, got %q", lines[0])
	}
}
