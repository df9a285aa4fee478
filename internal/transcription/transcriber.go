// Package transcription turns downloaded voice notes into text.
//
// Real speech-to-text is not implemented; the only backend is a placeholder
// that returns a fixed transcript so the rest of the voice flow can run.
package transcription

import (
	"context"
	"fmt"
	"os"
)

// PlaceholderText is the transcript returned for every voice note.
const PlaceholderText = "[Mock transcription] User said something via voice."

// Result represents the result of a transcription
type Result struct {
	Text string // Transcribed text
}

// Transcriber is the interface for speech-to-text backends
type Transcriber interface {
	// Transcribe converts the audio file at audioPath to text
	Transcribe(ctx context.Context, audioPath string) (*Result, error)

	// Name returns the name of the transcriber
	Name() string
}

// Placeholder is a Transcriber that ignores the audio content.
type Placeholder struct{}

// NewPlaceholder creates the placeholder transcriber
func NewPlaceholder() *Placeholder {
	return &Placeholder{}
}

// Name returns the transcriber name
func (p *Placeholder) Name() string {
	return "placeholder"
}

// Transcribe checks that the audio was actually downloaded and returns
// PlaceholderText.
func (p *Placeholder) Transcribe(ctx context.Context, audioPath string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, err := os.Stat(audioPath); err != nil {
		return nil, fmt.Errorf("audio file not available: %w", err)
	}
	return &Result{Text: PlaceholderText}, nil
}
