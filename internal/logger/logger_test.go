package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown level defaults to info", "unknown", slog.LevelInfo},
		{"empty string defaults to info", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseLevel(tt.input)
			if got != tt.expected {
				t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevelTag(t *testing.T) {
	tests := []struct {
		name     string
		level    slog.Level
		expected string
	}{
		{"error", slog.LevelError, "ERROR"},
		{"warn", slog.LevelWarn, "WARN "},
		{"info", slog.LevelInfo, "INFO "},
		{"debug", slog.LevelDebug, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := levelTag(tt.level)
			if got != tt.expected {
				t.Errorf("levelTag(%v) = %q, want %q", tt.level, got, tt.expected)
			}
		})
	}
}

func TestFormatAttr(t *testing.T) {
	tests := []struct {
		name     string
		group    string
		attr     slog.Attr
		expected string
	}{
		{
			name:     "no group",
			group:    "",
			attr:     slog.String("key", "value"),
			expected: "  key=value",
		},
		{
			name:     "with group",
			group:    "group",
			attr:     slog.String("key", "value"),
			expected: "  group.key=value",
		},
		{
			name:     "integer value",
			group:    "",
			attr:     slog.Int("port", 25565),
			expected: "  port=25565",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatAttr(tt.group, tt.attr)
			if got != tt.expected {
				t.Errorf("formatAttr(%q, %v) = %q, want %q", tt.group, tt.attr, got, tt.expected)
			}
		})
	}
}

func TestConsoleHandlerEnabled(t *testing.T) {
	h := &consoleHandler{level: slog.LevelInfo}

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Info level should be enabled")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("Error level should be enabled")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("Debug level should not be enabled")
	}
}

func TestConsoleHandlerHandle(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test message", 0)
	record.AddAttrs(slog.String("key", "value"))

	err := h.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() returned an error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "12:00:00") {
		t.Errorf("output should contain the timestamp, got: %q", output)
	}
	if !strings.Contains(output, "INFO") {
		t.Errorf("output should contain the level tag, got: %q", output)
	}
	if !strings.Contains(output, "test message") {
		t.Errorf("output should contain the message, got: %q", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("output should contain the attr, got: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Errorf("output should end with a newline, got: %q", output)
	}
}

func TestConsoleHandlerWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithAttrs([]slog.Attr{slog.String("component", "proxy")})

	
	if len(h.attrs) != 0 {
		t.Error("the original handler's attrs must not be mutated")
	}

	
	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	err := h2.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() returned an error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "component=proxy") {
		t.Errorf("output should contain the preset attr, got: %q", output)
	}
}

func TestConsoleHandlerWithGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithGroup("server")

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	record.AddAttrs(slog.String("addr", "127.0.0.1"))
	err := h2.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() returned an error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "server.addr=127.0.0.1") {
		t.Errorf("output should contain the group prefix, got: %q", output)
	}
}

func TestConsoleHandlerWithNestedGroup(t *testing.T) {
	var buf bytes.Buffer
	h := &consoleHandler{w: &buf, level: slog.LevelDebug}

	h2 := h.WithGroup("server").WithGroup("config")

	record := slog.NewRecord(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), slog.LevelInfo, "test", 0)
	record.AddAttrs(slog.String("port", "25565"))
	err := h2.Handle(context.Background(), record)
	if err != nil {
		t.Fatalf("Handle() returned an error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "server.config.port=25565") {
		t.Errorf("output should contain the nested group prefix, got: %q", output)
	}
}

func TestInitWithFormats(t *testing.T) {
	formats := []string{"json", "text", "console", ""}

	for _, format := range formats {
		t.Run("format_"+format, func(t *testing.T) {
			
			
			var buf bytes.Buffer
			cfg := Config{Level: "debug", Format: format, Output: &buf}

			var handler slog.Handler
			switch cfg.Format {
			case "json":
				handler = slog.NewJSONHandler(cfg.Output, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
			case "text":
				handler = slog.NewTextHandler(cfg.Output, &slog.HandlerOptions{Level: parseLevel(cfg.Level)})
			default:
				handler = &consoleHandler{w: cfg.Output, level: parseLevel(cfg.Level)}
			}

			if handler == nil {
				t.Error("handler must not be nil")
			}
		})
	}
}
