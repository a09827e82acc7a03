package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

// captureLogger swaps the default logger for a JSON handler writing to a
// buffer, restored when the test ends.
func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func logEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("decode log entry: %v (raw %q)", err, buf.String())
	}
	return entry
}

func TestFromContextCarriesRequestID(t *testing.T) {
	buf := captureLogger(t)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	FromContext(ctx).Error("request error", "status", 500)

	entry := logEntry(t, buf)
	if entry["request_id"] != "req-42" {
		t.Errorf("request_id = %v, want req-42", entry["request_id"])
	}
	if entry["status"] != float64(500) {
		t.Errorf("status = %v", entry["status"])
	}
}

func TestFromContextWithoutRequestID(t *testing.T) {
	buf := captureLogger(t)

	FromContext(context.Background()).Info("hello")

	entry := logEntry(t, buf)
	if _, ok := entry["request_id"]; ok {
		t.Errorf("bare context carried request_id: %v", entry["request_id"])
	}
}

func TestWithFields(t *testing.T) {
	buf := captureLogger(t)
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-7")

	WithFields(ctx, "document_id", "3", "type", "expenses").Info("document uploaded")

	entry := logEntry(t, buf)
	if entry["request_id"] != "req-7" {
		t.Errorf("request_id = %v, want req-7", entry["request_id"])
	}
	if entry["document_id"] != "3" || entry["type"] != "expenses" {
		t.Errorf("fields = %v", entry)
	}
}
