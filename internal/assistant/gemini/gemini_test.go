package gemini

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(context.Background(), "", "", slog.Default()); err == nil {
		t.Fatal("expected an error without an API key")
	}
}

func TestNewModelSelection(t *testing.T) {
	c, err := New(context.Background(), "test-key", "", slog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.model != defaultModel {
		t.Fatalf("got model %q, want default %q", c.model, defaultModel)
	}

	c, err = New(context.Background(), "test-key", "gemini-2.5-pro", slog.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c.model != "gemini-2.5-pro" {
		t.Fatalf("got model %q", c.model)
	}
}
