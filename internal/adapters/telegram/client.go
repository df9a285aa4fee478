package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alekspetrov/tgassistant/internal/logging"
)

// ClientConfig configures the Bot API client.
type ClientConfig struct {
	BotToken     string
	APIEndpoint  string       // format with token and method verbs; empty uses tgbotapi.APIEndpoint
	FileEndpoint string       // format with token and file path verbs; empty uses tgbotapi.FileEndpoint
	PollTimeout  int          // long-poll timeout in seconds
	Debug        bool         // log raw Bot API traffic
	HTTPClient   *http.Client // nil uses a client with a timeout above PollTimeout
}

// Client wraps the bot framework and implements Messenger and UpdateSource.
type Client struct {
	bot          *tgbotapi.BotAPI
	httpClient   *http.Client
	fileEndpoint string
	pollTimeout  int
}

// NewClient creates a Telegram client. It calls getMe, so the token is
// verified before any handler is registered.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	apiEndpoint := cfg.APIEndpoint
	if apiEndpoint == "" {
		apiEndpoint = tgbotapi.APIEndpoint
	}
	fileEndpoint := cfg.FileEndpoint
	if fileEndpoint == "" {
		fileEndpoint = tgbotapi.FileEndpoint
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: time.Duration(cfg.PollTimeout+30) * time.Second}
	}

	_ = tgbotapi.SetLogger(botLogger{logger: logging.WithComponent("telegram-bot-api")})

	bot, err := tgbotapi.NewBotAPIWithClient(cfg.BotToken, apiEndpoint, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	bot.Debug = cfg.Debug

	return &Client{
		bot:          bot,
		httpClient:   httpClient,
		fileEndpoint: fileEndpoint,
		pollTimeout:  cfg.PollTimeout,
	}, nil
}

// BotName returns the bot's username as reported by getMe.
func (c *Client) BotName() string {
	return c.bot.Self.UserName
}

// SendText sends text to chatID, replying to message replyTo when non-zero.
func (c *Client) SendText(ctx context.Context, chatID int64, replyTo int, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyToMessageID = replyTo

	if _, err := c.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Download resolves fileID with getFile and streams the file into w.
// It returns the remote file path.
func (c *Client) Download(ctx context.Context, fileID string, w io.Writer) (string, error) {
	file, err := c.bot.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return "", fmt.Errorf("getFile failed: %w", err)
	}
	if file.FilePath == "" {
		return "", fmt.Errorf("file path not available")
	}

	url := fmt.Sprintf(c.fileEndpoint, c.bot.Token, file.FilePath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed: status %d", resp.StatusCode)
	}

	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return file.FilePath, nil
}

// Updates starts long polling and returns the update stream. The channel
// is closed after StopUpdates.
func (c *Client) Updates() <-chan tgbotapi.Update {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = c.pollTimeout
	return c.bot.GetUpdatesChan(u)
}

// StopUpdates stops long polling.
func (c *Client) StopUpdates() {
	c.bot.StopReceivingUpdates()
}

// botLogger routes the framework's log output through slog.
type botLogger struct {
	logger *slog.Logger
}

func (l botLogger) Println(v ...interface{}) {
	l.logger.Warn(fmt.Sprint(v...))
}

func (l botLogger) Printf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}
