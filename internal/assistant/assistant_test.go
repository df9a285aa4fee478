package assistant

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/alekspetrov/tgassistant/internal/config"
	"github.com/alekspetrov/tgassistant/internal/testutil"
)

type sentMessage struct {
	chatID int64
	text   string
}

type recordingBot struct {
	mu      sync.Mutex
	sent    []sentMessage
	updates chan tgbotapi.Update
	polled  bool
	stopped bool
}

func newRecordingBot() *recordingBot {
	return &recordingBot{updates: make(chan tgbotapi.Update, 4)}
}

func (b *recordingBot) SendText(_ context.Context, chatID int64, _ int, text string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, sentMessage{chatID: chatID, text: text})
	return nil
}

func (b *recordingBot) Download(context.Context, string, io.Writer) (string, error) {
	return "", errors.New("no files")
}

func (b *recordingBot) Updates() <-chan tgbotapi.Update {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.polled = true
	return b.updates
}

func (b *recordingBot) StopUpdates() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped = true
}

func (b *recordingBot) wasPolled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.polled
}

func (b *recordingBot) wasStopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped
}

func (b *recordingBot) messages() []sentMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]sentMessage(nil), b.sent...)
}

func testConfig(t *testing.T, creds config.Credentials) *config.Config {
	t.Helper()
	s := config.DefaultSettings()
	s.Scratch.Dir = filepath.Join(t.TempDir(), "scratch")
	s.Scratch.SweepSchedule = ""
	return &config.Config{Credentials: creds, Settings: s}
}

func TestNew_MissingBotToken(t *testing.T) {
	bot := newRecordingBot()

	a, err := New(testConfig(t, config.Credentials{OpenAIAPIKey: testutil.FakeOpenAIKey}), WithBot(bot, bot))

	if !errors.Is(err, config.ErrMissingBotToken) {
		t.Fatalf("expected ErrMissingBotToken, got %v", err)
	}
	if a != nil {
		t.Error("no assistant should be returned")
	}
	if bot.wasPolled() {
		t.Error("update loop started without a token")
	}
	if n := len(bot.messages()); n != 0 {
		t.Errorf("sent %d message(s) without a token", n)
	}
}

func TestNew_NilConfig(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, config.ErrMissingBotToken) {
		t.Errorf("expected ErrMissingBotToken, got %v", err)
	}
}

func TestNew_MockProviderWhenCredentialsIncomplete(t *testing.T) {
	bot := newRecordingBot()

	a, err := New(testConfig(t, config.Credentials{TelegramBotToken: testutil.FakeTelegramBotToken}), WithBot(bot, bot))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if a.ProviderName() != "mock" {
		t.Errorf("ProviderName() = %q, want mock", a.ProviderName())
	}
	if a.BotName() != "" {
		t.Errorf("BotName() = %q, want empty for an injected bot", a.BotName())
	}
	if mode := a.Health().Mode; mode != "mock" {
		t.Errorf("Health().Mode = %q, want mock", mode)
	}
}

func TestAssistant_RunHandlesUpdates(t *testing.T) {
	bot := newRecordingBot()
	a, err := New(testConfig(t, config.Credentials{TelegramBotToken: testutil.FakeTelegramBotToken}), WithBot(bot, bot))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	bot.updates <- tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			MessageID: 10,
			Chat:      &tgbotapi.Chat{ID: 42},
			From:      &tgbotapi.User{ID: 7, UserName: "alice"},
			Text:      "hello",
		},
	}

	deadline := time.Now().Add(2 * time.Second)
	for len(bot.messages()) != 1 {
		if time.Now().After(deadline) {
			t.Fatal("no reply sent")
		}
		time.Sleep(10 * time.Millisecond)
	}
	msg := bot.messages()[0]
	if msg.chatID != 42 {
		t.Errorf("reply chat = %d, want 42", msg.chatID)
	}
	if !strings.Contains(msg.text, "You said: 'hello'") {
		t.Errorf("reply = %q", msg.text)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("assistant did not stop")
	}

	if !bot.wasStopped() {
		t.Error("updates were not stopped")
	}
}

func TestAssistant_StopWithoutStart(t *testing.T) {
	bot := newRecordingBot()
	a, err := New(testConfig(t, config.Credentials{TelegramBotToken: testutil.FakeTelegramBotToken}), WithBot(bot, bot))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	a.Stop()
	if bot.wasStopped() {
		t.Error("Stop before Start should not touch the bot")
	}
}

func TestAssistant_InvalidSweepSchedule(t *testing.T) {
	bot := newRecordingBot()
	cfg := testConfig(t, config.Credentials{TelegramBotToken: testutil.FakeTelegramBotToken})
	cfg.Settings.Scratch.SweepSchedule = "not a schedule"

	a, err := New(cfg, WithBot(bot, bot))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if err := a.Start(context.Background()); err == nil {
		t.Error("expected error for invalid sweep schedule")
	}
	if bot.wasPolled() {
		t.Error("update loop started after a failed start")
	}
}
