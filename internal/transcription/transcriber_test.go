package transcription

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestPlaceholder_Transcribe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voice.ogg")
	if err := os.WriteFile(path, []byte("OggS"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var tr Transcriber = NewPlaceholder()
	res, err := tr.Transcribe(context.Background(), path)
	if err != nil {
		t.Fatalf("Transcribe failed: %v", err)
	}
	if res.Text != PlaceholderText {
		t.Errorf("Text = %q, want placeholder", res.Text)
	}
	if tr.Name() != "placeholder" {
		t.Errorf("Name() = %q", tr.Name())
	}
}

func TestPlaceholder_MissingFile(t *testing.T) {
	if _, err := NewPlaceholder().Transcribe(context.Background(), filepath.Join(t.TempDir(), "gone.ogg")); err == nil {
		t.Error("expected error for missing audio file")
	}
}

func TestPlaceholder_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewPlaceholder().Transcribe(ctx, "unused"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
