package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newTestLogger(buf *bytes.Buffer, warnStack bool) *Logger {
	return New(Options{
		ServiceName: "test",
		Level:       zerolog.DebugLevel,
		WarnStack:   warnStack,
		Output:      buf,
	})
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a log line")
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	return entry
}

func TestInfoIncludesServiceAndMessage(t *testing.T) {
	var buf bytes.Buffer
	logg := newTestLogger(&buf, false)

	logg.Info(context.Background(), "cart.saved")

	entry := decodeLine(t, &buf)
	if entry["service"] != "test" {
		t.Fatalf("expected service field, got %v", entry["service"])
	}
	if entry["message"] != "cart.saved" {
		t.Fatalf("expected message, got %v", entry["message"])
	}
}

func TestWithFieldsCarriesContext(t *testing.T) {
	var buf bytes.Buffer
	logg := newTestLogger(&buf, false)

	ctx := logg.WithFields(context.Background(), map[string]any{
		"collection": "cart",
		"line_id":    int64(7),
	})
	logg.Info(ctx, "line.updated")

	entry := decodeLine(t, &buf)
	if entry["collection"] != "cart" {
		t.Fatalf("expected collection field, got %v", entry["collection"])
	}
	if entry["line_id"] != float64(7) {
		t.Fatalf("expected line_id field, got %v", entry["line_id"])
	}
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	logg := newTestLogger(&buf, false)

	ctx := logg.WithRequestID(context.Background(), "req-123")
	logg.Info(ctx, "request.start")

	entry := decodeLine(t, &buf)
	if entry["request_id"] != "req-123" {
		t.Fatalf("expected request id, got %v", entry["request_id"])
	}
}

func TestErrorIncludesStackAndError(t *testing.T) {
	var buf bytes.Buffer
	logg := newTestLogger(&buf, false)

	logg.Error(context.Background(), "save.failed", errors.New("disk full"))

	entry := decodeLine(t, &buf)
	if entry["error"] != "disk full" {
		t.Fatalf("expected error field, got %v", entry["error"])
	}
	if stack, ok := entry["stack"].(string); !ok || stack == "" {
		t.Fatal("expected stack field on error logs")
	}
}

func TestWarnStackOptional(t *testing.T) {
	var buf bytes.Buffer
	logg := newTestLogger(&buf, true)

	logg.Warn(context.Background(), "seed.skipped")

	entry := decodeLine(t, &buf)
	if stack, ok := entry["stack"].(string); !ok || stack == "" {
		t.Fatal("expected stack field when warn stack enabled")
	}
}

func TestParseLevel(t *testing.T) {
	if ParseLevel("") != zerolog.InfoLevel {
		t.Fatal("empty level should default to info")
	}
	if ParseLevel("debug") != zerolog.DebugLevel {
		t.Fatal("expected debug level")
	}
	if ParseLevel("nonsense") != zerolog.InfoLevel {
		t.Fatal("unknown level should default to info")
	}
}
