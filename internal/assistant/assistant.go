// Package assistant wires configuration, the response generator and the
// Telegram adapter into a running bot.
package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/alekspetrov/tgassistant/internal/adapters/telegram"
	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/health"
	"github.com/alekspetrov/tgassistant/internal/logging"
	"github.com/alekspetrov/tgassistant/internal/responder"
	"github.com/alekspetrov/tgassistant/internal/scratch"
	"github.com/alekspetrov/tgassistant/internal/transcription"
)

// Assistant is the main application
type Assistant struct {
	config    *config.Config
	messenger telegram.Messenger
	source    telegram.UpdateSource
	botName   string
	generator *responder.Generator
	handler   *telegram.Handler
	transport *telegram.Transport
	sweeper   *scratch.Sweeper

	mu      sync.Mutex
	started bool
}

// Option configures an Assistant
type Option func(*Assistant)

// WithBot injects the bot endpoints instead of connecting to Telegram.
func WithBot(messenger telegram.Messenger, source telegram.UpdateSource) Option {
	return func(a *Assistant) {
		a.messenger = messenger
		a.source = source
	}
}

// WithGenerator replaces the generator selected from the configuration.
func WithGenerator(g *responder.Generator) Option {
	return func(a *Assistant) {
		a.generator = g
	}
}

// New creates the assistant. It fails with config.ErrMissingBotToken before
// touching the network when no bot token is configured.
func New(cfg *config.Config, opts ...Option) (*Assistant, error) {
	if err := cfg.RequireBotToken(); err != nil {
		return nil, err
	}
	if cfg.Settings == nil {
		cfg.Settings = config.DefaultSettings()
	}
	settings := cfg.Settings

	a := &Assistant{config: cfg}
	for _, opt := range opts {
		opt(a)
	}

	if a.messenger == nil || a.source == nil {
		tg := settings.Telegram
		if tg == nil {
			tg = config.DefaultSettings().Telegram
		}
		client, err := telegram.NewClient(telegram.ClientConfig{
			BotToken:    cfg.Credentials.TelegramBotToken,
			APIEndpoint: tg.APIEndpoint,
			PollTimeout: tg.PollTimeout,
			Debug:       tg.Debug,
		})
		if err != nil {
			return nil, err
		}
		a.messenger = client
		a.source = client
		a.botName = client.BotName()
	}

	if a.generator == nil {
		a.generator = responder.FromConfig(cfg)
	}

	scratchCfg := settings.Scratch
	if scratchCfg == nil {
		scratchCfg = config.DefaultSettings().Scratch
	}
	dir, err := scratch.NewDir(scratchCfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare scratch directory: %w", err)
	}
	a.sweeper = scratch.NewSweeper(dir, scratchCfg.SweepSchedule, scratchCfg.MaxAge)

	a.handler = telegram.NewHandler(telegram.HandlerConfig{
		Messenger:     a.messenger,
		Generator:     a.generator,
		Transcriber:   transcription.NewPlaceholder(),
		Scratch:       dir,
		FallbackReply: settings.FallbackReply,
	})
	a.transport = telegram.NewTransport(a.source, a.handler)

	return a, nil
}

// BotName returns the bot username, empty when the bot was injected.
func (a *Assistant) BotName() string {
	return a.botName
}

// ProviderName returns the name of the response provider in use.
func (a *Assistant) ProviderName() string {
	return a.generator.ProviderName()
}

// Health returns the health report for the running configuration.
func (a *Assistant) Health() *health.HealthReport {
	return health.RunChecks(a.config)
}

// Start starts the scratch sweeper and the update loop.
func (a *Assistant) Start(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.started {
		return nil
	}
	if err := a.sweeper.Start(); err != nil {
		return fmt.Errorf("failed to start scratch sweeper: %w", err)
	}
	a.transport.Start(ctx)
	a.started = true

	logging.WithComponent("assistant").Info("Telegram AI Assistant is running",
		slog.String("provider", a.ProviderName()),
		slog.Bool("mock", a.config.Mock()))
	return nil
}

// Stop stops receiving updates and waits for in-flight handling to finish.
func (a *Assistant) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.started {
		return
	}
	a.transport.Stop()
	a.sweeper.Stop()
	a.started = false

	logging.WithComponent("assistant").Info("Telegram AI Assistant stopped")
}

// Run starts the assistant and blocks until ctx is cancelled.
func (a *Assistant) Run(ctx context.Context) error {
	if err := a.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	a.Stop()
	return nil
}
