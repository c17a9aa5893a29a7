package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wonny/grq-validation/pkg/config"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()

	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse log output: %v (%q)", err, buf.String())
	}
	return logEntry
}

func TestNewWithWriter(t *testing.T) {
	tests := []struct {
		name      string
		cfg       *config.Config
		wantLevel zerolog.Level
	}{
		{
			name:      "debug level",
			cfg:       &config.Config{Env: "development", LogLevel: "debug", LogFormat: "json"},
			wantLevel: zerolog.DebugLevel,
		},
		{
			name:      "info level",
			cfg:       &config.Config{Env: "production", LogLevel: "info", LogFormat: "json"},
			wantLevel: zerolog.InfoLevel,
		},
		{
			name:      "warn level",
			cfg:       &config.Config{Env: "staging", LogLevel: "warn", LogFormat: "json"},
			wantLevel: zerolog.WarnLevel,
		},
		{
			name:      "error level",
			cfg:       &config.Config{Env: "production", LogLevel: "error", LogFormat: "json"},
			wantLevel: zerolog.ErrorLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(tt.cfg, &buf)
			if logger == nil {
				t.Fatal("Expected logger to be created")
			}

			if zerolog.GlobalLevel() != tt.wantLevel {
				t.Errorf("Expected global level %v, got %v", tt.wantLevel, zerolog.GlobalLevel())
			}
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"invalid", zerolog.InfoLevel}, // Default
		{"", zerolog.InfoLevel},        // Default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := parseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("parseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestServiceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&config.Config{Env: "test", LogLevel: "info", LogFormat: "json"}, &buf)

	logger.Info("evaluation complete")

	logEntry := decode(t, &buf)
	if logEntry["service"] != "grq" {
		t.Errorf("Expected service grq, got %v", logEntry["service"])
	}
	if logEntry["env"] != "test" {
		t.Errorf("Expected env test, got %v", logEntry["env"])
	}
	if logEntry["message"] != "evaluation complete" {
		t.Errorf("Expected message, got %v", logEntry["message"])
	}
}

func TestLoggerMethods(t *testing.T) {
	var buf bytes.Buffer

	// Set global level to debug to capture all logs
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := &Logger{zlog: zerolog.New(&buf).With().Timestamp().Logger()}

	tests := []struct {
		name      string
		logFunc   func()
		wantMsg   string
		wantLevel string
	}{
		{name: "debug", logFunc: func() { logger.Debug("debug message") }, wantMsg: "debug message", wantLevel: "debug"},
		{name: "info", logFunc: func() { logger.Info("info message") }, wantMsg: "info message", wantLevel: "info"},
		{name: "warn", logFunc: func() { logger.Warn("warn message") }, wantMsg: "warn message", wantLevel: "warn"},
		{name: "error", logFunc: func() { logger.Error("error message") }, wantMsg: "error message", wantLevel: "error"},
		{name: "infof", logFunc: func() { logger.Infof("evaluated %d batches", 3) }, wantMsg: "evaluated 3 batches", wantLevel: "info"},
		{name: "warnf", logFunc: func() { logger.Warnf("retry attempt: %d", 3) }, wantMsg: "retry attempt: 3", wantLevel: "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc()

			logEntry := decode(t, &buf)
			if logEntry["level"] != tt.wantLevel {
				t.Errorf("Expected level %q, got %q", tt.wantLevel, logEntry["level"])
			}
			if logEntry["message"] != tt.wantMsg {
				t.Errorf("Expected message %q, got %q", tt.wantMsg, logEntry["message"])
			}
		})
	}
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := &Logger{zlog: zerolog.New(&buf).With().Timestamp().Logger()}

	logger.WithField("score_date", "2025-02-14").
		WithFields(map[string]interface{}{
			"symbol":      "NYSE:SEM",
			"instruments": 12,
		}).
		Info("batch loaded")

	logEntry := decode(t, &buf)
	if logEntry["score_date"] != "2025-02-14" {
		t.Errorf("Expected score_date, got %v", logEntry["score_date"])
	}
	if logEntry["symbol"] != "NYSE:SEM" {
		t.Errorf("Expected symbol NYSE:SEM, got %v", logEntry["symbol"])
	}
	if logEntry["instruments"] != float64(12) {
		t.Errorf("Expected instruments 12, got %v", logEntry["instruments"])
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	logger := &Logger{zlog: zerolog.New(&buf).With().Timestamp().Logger()}

	logger.WithError(errors.New("database connection failed")).Error("operation failed")

	logEntry := decode(t, &buf)
	if logEntry["error"] != "database connection failed" {
		t.Errorf("Expected error to be 'database connection failed', got %v", logEntry["error"])
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer

	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	logger := &Logger{zlog: zerolog.New(&buf)}

	zlog := logger.Component("performance.evaluator")
	zlog.Info().Str("run_id", "abc").Msg("evaluation complete")

	logEntry := decode(t, &buf)
	if logEntry["component"] != "performance.evaluator" {
		t.Errorf("Expected component, got %v", logEntry["component"])
	}
	if logEntry["run_id"] != "abc" {
		t.Errorf("Expected run_id abc, got %v", logEntry["run_id"])
	}
}

func TestLogFormats(t *testing.T) {
	tests := []struct {
		name   string
		format string
	}{
		{"json format", "json"},
		{"console format", "console"},
		{"pretty format", "pretty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewWithWriter(&config.Config{Env: "test", LogLevel: "info", LogFormat: tt.format}, &buf)
			logger.Info("test message")

			if !strings.Contains(buf.String(), "test message") {
				t.Errorf("Expected output to contain 'test message', got: %s", buf.String())
			}
		})
	}
}
