package responder

import (
	"context"
	"log/slog"
	"time"

	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/logging"
)

// Result is the outcome of one generation. Exactly one of Text or Err is
// meaningful.
type Result struct {
	Text     string
	Err      error
	Provider string
	Elapsed  time.Duration
}

// OK reports whether the generation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Reply returns the generated text, or fallback when generation failed.
func (r Result) Reply(fallback string) string {
	if r.Err != nil {
		return fallback
	}
	return r.Text
}

// Generator wraps a Provider with a per-call timeout and turns every
// failure into a Result instead of an error.
type Generator struct {
	provider Provider
	timeout  time.Duration
}

// NewGenerator creates a generator. A non-positive timeout disables the
// deadline.
func NewGenerator(provider Provider, timeout time.Duration) *Generator {
	return &Generator{provider: provider, timeout: timeout}
}

// FromConfig builds the generator for cfg.
func FromConfig(cfg *config.Config) *Generator {
	timeout := config.DefaultSettings().RequestTimeout
	if cfg.Settings != nil {
		timeout = cfg.Settings.RequestTimeout
	}
	return NewGenerator(NewProvider(cfg), timeout)
}

// ProviderName returns the name of the selected provider.
func (g *Generator) ProviderName() string {
	return g.provider.Name()
}

// Respond generates a reply for text.
func (g *Generator) Respond(ctx context.Context, text string) Result {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := g.provider.Complete(ctx, text)
	res := Result{
		Text:     out,
		Err:      err,
		Provider: g.provider.Name(),
		Elapsed:  time.Since(start),
	}

	log := logging.WithContext(ctx).With(
		slog.String("component", "responder"),
		slog.String("provider", res.Provider),
		slog.Duration("elapsed", res.Elapsed))
	if err != nil {
		log.Warn("Response generation failed", slog.Any("error", err))
		return res
	}
	log.Debug("Response generated", slog.Int("length", len(res.Text)))
	return res
}
