package telegram

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/logging"
	"github.com/alekspetrov/tgassistant/internal/responder"
	"github.com/alekspetrov/tgassistant/internal/scratch"
	"github.com/alekspetrov/tgassistant/internal/transcription"
)

// Fixed replies.
const (
	GreetingText    = "👋 Hi! I’m your AI Assistant. Send me a message or voice note to get started."
	EmptyTextPrompt = "I didn’t receive any text. Try sending a message or voice."
)

const startCommand = "start"

// Handler processes incoming Telegram updates. Each update produces at most
// one reply and no state is kept between updates.
type Handler struct {
	messenger     Messenger
	generator     *responder.Generator
	transcriber   transcription.Transcriber
	scratch       *scratch.Dir
	fallbackReply string
}

// HandlerConfig holds the dependencies of the Telegram handler
type HandlerConfig struct {
	Messenger     Messenger
	Generator     *responder.Generator
	Transcriber   transcription.Transcriber // nil uses the placeholder
	Scratch       *scratch.Dir              // where voice notes are downloaded
	FallbackReply string                    // sent when generation fails
}

// NewHandler creates a new Telegram update handler
func NewHandler(cfg HandlerConfig) *Handler {
	tr := cfg.Transcriber
	if tr == nil {
		tr = transcription.NewPlaceholder()
	}
	fallback := cfg.FallbackReply
	if fallback == "" {
		fallback = config.DefaultFallbackReply
	}
	return &Handler{
		messenger:     cfg.Messenger,
		generator:     cfg.Generator,
		transcriber:   tr,
		scratch:       cfg.Scratch,
		fallbackReply: fallback,
	}
}

// HandleUpdate routes one update to the start, voice or text handler.
func (h *Handler) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil {
		return
	}

	ctx = logging.ContextWithCorrelationID(ctx, uuid.NewString())
	ctx = logging.ContextWithUpdate(ctx, update.UpdateID, msg.Chat.ID)

	switch {
	case msg.IsCommand():
		if msg.Command() == startCommand {
			h.handleStart(ctx, msg)
			return
		}
		logging.WithContext(ctx).Debug("Ignoring unknown command",
			slog.String("component", "telegram"), slog.String("command", msg.Command()))
	case msg.Voice != nil:
		h.handleVoice(ctx, msg)
	default:
		h.handleText(ctx, msg)
	}
}

// handleStart replies with the welcome message.
func (h *Handler) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	h.reply(ctx, msg, GreetingText)
}

// handleText forwards non-empty text to the generator unchanged.
func (h *Handler) handleText(ctx context.Context, msg *tgbotapi.Message) {
	text := msg.Text
	if text == "" {
		h.reply(ctx, msg, EmptyTextPrompt)
		return
	}

	logging.WithContext(ctx).Info(fmt.Sprintf("Message from @%s: %s", senderName(msg.From), text),
		slog.String("component", "telegram"))

	res := h.generator.Respond(ctx, text)
	h.reply(ctx, msg, res.Reply(h.fallbackReply))
}

// handleVoice downloads the voice note into a scratch file, transcribes it
// and answers the transcript. The scratch file is released on every path.
func (h *Handler) handleVoice(ctx context.Context, msg *tgbotapi.Message) {
	log := logging.WithContext(ctx).With(slog.String("component", "telegram"))
	log.Info("Received voice message from " + senderName(msg.From))

	transcript, err := h.transcribeVoice(ctx, log, msg)
	if err != nil {
		log.Warn("Voice message could not be processed", slog.Any("error", err))
		h.reply(ctx, msg, h.fallbackReply)
		return
	}

	res := h.generator.Respond(ctx, transcript)
	h.reply(ctx, msg, res.Reply(h.fallbackReply))
}

func (h *Handler) transcribeVoice(ctx context.Context, log *slog.Logger, msg *tgbotapi.Message) (string, error) {
	file, err := h.scratch.Create(fmt.Sprintf("voice_%d_*.ogg", senderID(msg.From)))
	if err != nil {
		return "", err
	}
	defer func() {
		if err := file.Release(); err != nil {
			log.Warn("Failed to remove voice file", slog.String("path", file.Name()), slog.Any("error", err))
		}
	}()

	if _, err := h.messenger.Download(ctx, msg.Voice.FileID, file); err != nil {
		return "", fmt.Errorf("failed to download voice: %w", err)
	}
	if err := file.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush voice file: %w", err)
	}
	log.Info("Downloaded voice note to "+file.Name(), slog.Int("duration", msg.Voice.Duration))

	result, err := h.transcriber.Transcribe(ctx, file.Name())
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	log.Info("Transcript: " + result.Text)

	return result.Text, nil
}

func (h *Handler) reply(ctx context.Context, msg *tgbotapi.Message, text string) {
	if err := h.messenger.SendText(ctx, msg.Chat.ID, msg.MessageID, text); err != nil {
		logging.WithContext(ctx).Warn("Failed to send reply",
			slog.String("component", "telegram"), slog.Any("error", err))
	}
}

func senderName(u *tgbotapi.User) string {
	if u == nil {
		return "unknown"
	}
	if u.UserName != "" {
		return u.UserName
	}
	return fmt.Sprintf("%d", u.ID)
}

func senderID(u *tgbotapi.User) int64 {
	if u == nil {
		return 0
	}
	return u.ID
}
