package telegram

import (
	"context"
	"io"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Messenger is the outbound side of the bot used by the handlers.
type Messenger interface {
	// SendText sends a plain text message, as a reply when replyTo is non-zero
	SendText(ctx context.Context, chatID int64, replyTo int, text string) error

	// Download writes the file referenced by fileID to w and returns its remote path
	Download(ctx context.Context, fileID string, w io.Writer) (string, error)
}

// UpdateSource is the inbound side of the bot.
type UpdateSource interface {
	// Updates returns the stream of incoming updates
	Updates() <-chan tgbotapi.Update

	// StopUpdates stops receiving; the Updates channel is closed afterwards
	StopUpdates()
}

var (
	_ Messenger    = (*Client)(nil)
	_ UpdateSource = (*Client)(nil)
)
