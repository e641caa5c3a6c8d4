package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if i := strings.LastIndex(line, "\n"); i >= 0 {
		line = line[i+1:]
	}
	var m map[string]interface{}
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		t.Fatalf("log line is not JSON: %q: %v", line, err)
	}
	return m
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewWithWriter_Fields(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "debug", "labauth").WithComponent("auth")

	l.Info("user registered", Fields("username", "alice"))

	m := decodeLine(t, &buf)
	if m["message"] != "user registered" {
		t.Errorf("message = %v", m["message"])
	}
	if m[FieldComponent] != "auth" || m[FieldService] != "labauth" || m["username"] != "alice" {
		t.Errorf("unexpected fields: %v", m)
	}
}

func TestNewWithWriter_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn", "svc")
	l.Info("hidden")
	if buf.Len() != 0 {
		t.Errorf("info should be filtered at warn level, got %q", buf.String())
	}
	l.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn missing: %q", buf.String())
	}
}

func TestWithContext_RequestID(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&buf, "info", "svc")

	ctx := ContextWithRequestID(context.Background(), "req-42")
	l.WithContext(ctx).Info("handled")

	if m := decodeLine(t, &buf); m[FieldRequestID] != "req-42" {
		t.Errorf("request_id = %v", m[FieldRequestID])
	}
	if RequestIDFromContext(context.Background()) != "" {
		t.Error("empty context should carry no request id")
	}
}

func TestWithError(t *testing.T) {
	var buf bytes.Buffer
	NewWithWriter(&buf, "info", "svc").WithError(errors.New("boom")).Error("failed")
	if m := decodeLine(t, &buf); m["error"] != "boom" {
		t.Errorf("error = %v", m["error"])
	}
}

func TestNewNop(t *testing.T) {
	NewNop().Info("discarded", Fields("k", "v"))
}

func TestConfigApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != FormatConsole || cfg.Output != "stdout" || !cfg.Timestamp {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "debug", Format: "json"}, false},
		{"bad level", Config{Level: "loud", Format: "json"}, true},
		{"bad format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFields(t *testing.T) {
	m := Fields("a", 1, "b", "two", 3, "ignored", "dangling")
	if len(m) != 2 || m["a"] != 1 || m["b"] != "two" {
		t.Errorf("Fields = %v", m)
	}
}

func TestErrorAndDurationFields(t *testing.T) {
	ef := ErrorFields("insert", errors.New("dup"))
	if ef[FieldOperation] != "insert" || ef[FieldError] != "dup" {
		t.Errorf("ErrorFields = %v", ef)
	}
	df := DurationFields("hash", 1500*time.Millisecond)
	if df[FieldDuration] != int64(1500) {
		t.Errorf("DurationFields = %v", df)
	}
}
