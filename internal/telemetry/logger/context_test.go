package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestFromContext_Default(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("FromContext() returned nil without a logger in context")
	}
}

func TestWithLogger(t *testing.T) {
	l := Discard()
	ctx := WithLogger(context.Background(), l)
	if got := FromContext(ctx); got != l {
		t.Error("FromContext() did not return the stored logger")
	}
}

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}

	ctx = WithRequestID(ctx, "01HZX3")
	if got := RequestIDFromContext(ctx); got != "01HZX3" {
		t.Errorf("RequestIDFromContext() = %q, want 01HZX3", got)
	}
}

func TestCommand(t *testing.T) {
	ctx := WithCommand(context.Background(), "bookings list")
	if got := CommandFromContext(ctx); got != "bookings list" {
		t.Errorf("CommandFromContext() = %q", got)
	}
}

func TestL_EnrichesFields(t *testing.T) {
	var buf bytes.Buffer
	base, _ := New(Config{Level: "info", Format: "json", Output: &buf})

	ctx := WithLogger(context.Background(), base)
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithCommand(ctx, "dashboard")

	L(ctx).Info("fetched")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid JSON log: %v", err)
	}
	if entry["request_id"] != "req-1" {
		t.Errorf("request_id = %v", entry["request_id"])
	}
	if entry["command"] != "dashboard" {
		t.Errorf("command = %v", entry["command"])
	}
}
