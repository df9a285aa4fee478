package main

import (
	"context"
	"errors"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alekspetrov/tgassistant/internal/assistant"
	"github.com/alekspetrov/tgassistant/internal/banner"
	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/logging"
)

func newStartCmd() *cobra.Command {
	var opts configOptions

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the bot and poll Telegram for updates",
		Long: `Start the assistant in the foreground.

Credentials are read from the environment and an optional .env file:
  TELEGRAM_BOT_TOKEN, OPENAI_API_KEY, GMAIL_API_KEY,
  GOOGLE_CALENDAR_API_KEY, BASEROW_API_KEY

Only TELEGRAM_BOT_TOKEN is required. Missing any other credential
switches replies to mock mode.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			defer func() { _ = logging.Close() }()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return runStart(ctx, cmd.OutOrStdout(), cfg)
		},
	}

	opts.addFlags(cmd)
	return cmd
}

// runStart runs the assistant until ctx is cancelled. A missing bot token is
// logged and returned as config.ErrMissingBotToken before anything starts.
func runStart(ctx context.Context, out io.Writer, cfg *config.Config, opts ...assistant.Option) error {
	a, err := assistant.New(cfg, opts...)
	if errors.Is(err, config.ErrMissingBotToken) {
		logging.Error("Missing TELEGRAM_BOT_TOKEN in environment. Exiting.")
		return err
	}
	if err != nil {
		return err
	}

	banner.Startup(out, version, a.BotName(), a.Health())

	if err := a.Run(ctx); err != nil {
		return err
	}
	logging.Info("Shutdown complete")
	return nil
}
