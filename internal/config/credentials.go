package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variable names for the credentials.
const (
	EnvTelegramBotToken     = "TELEGRAM_BOT_TOKEN"
	EnvOpenAIAPIKey         = "OPENAI_API_KEY"
	EnvGmailAPIKey          = "GMAIL_API_KEY"
	EnvGoogleCalendarAPIKey = "GOOGLE_CALENDAR_API_KEY"
	EnvBaserowAPIKey        = "BASEROW_API_KEY"
)

// DefaultEnvFile is loaded on startup when present.
const DefaultEnvFile = ".env"

// ErrMissingBotToken is returned when TELEGRAM_BOT_TOKEN is not set.
var ErrMissingBotToken = errors.New("missing " + EnvTelegramBotToken + " in environment")

// Credentials holds the secrets read from the environment.
// The value is immutable once loaded; pass it by value.
type Credentials struct {
	TelegramBotToken     string
	OpenAIAPIKey         string
	GmailAPIKey          string
	GoogleCalendarAPIKey string
	BaserowAPIKey        string
}

// LoadCredentials reads the five credentials using getenv.
// Absent values are left empty and are not an error.
func LoadCredentials(getenv func(string) string) Credentials {
	if getenv == nil {
		getenv = os.Getenv
	}
	return Credentials{
		TelegramBotToken:     getenv(EnvTelegramBotToken),
		OpenAIAPIKey:         getenv(EnvOpenAIAPIKey),
		GmailAPIKey:          getenv(EnvGmailAPIKey),
		GoogleCalendarAPIKey: getenv(EnvGoogleCalendarAPIKey),
		BaserowAPIKey:        getenv(EnvBaserowAPIKey),
	}
}

// Mock reports whether mock mode is active: true unless all five
// credentials are non-empty.
func (c Credentials) Mock() bool {
	return c.TelegramBotToken == "" ||
		c.OpenAIAPIKey == "" ||
		c.GmailAPIKey == "" ||
		c.GoogleCalendarAPIKey == "" ||
		c.BaserowAPIKey == ""
}

// Missing returns the names of the unset credential variables.
func (c Credentials) Missing() []string {
	var missing []string
	for _, kv := range []struct{ name, value string }{
		{EnvTelegramBotToken, c.TelegramBotToken},
		{EnvOpenAIAPIKey, c.OpenAIAPIKey},
		{EnvGmailAPIKey, c.GmailAPIKey},
		{EnvGoogleCalendarAPIKey, c.GoogleCalendarAPIKey},
		{EnvBaserowAPIKey, c.BaserowAPIKey},
	} {
		if kv.value == "" {
			missing = append(missing, kv.name)
		}
	}
	return missing
}

// String masks the secrets so credentials can be logged safely.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{telegram:%s openai:%s gmail:%s calendar:%s baserow:%s}",
		mask(c.TelegramBotToken), mask(c.OpenAIAPIKey), mask(c.GmailAPIKey),
		mask(c.GoogleCalendarAPIKey), mask(c.BaserowAPIKey))
}

func mask(s string) string {
	if s == "" {
		return "unset"
	}
	return "set"
}

// LoadDotEnv loads environment files into the process environment.
// Variables already present in the environment win.
// With no paths, DefaultEnvFile is loaded if it exists.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		if _, err := os.Stat(DefaultEnvFile); err != nil {
			return nil
		}
		paths = []string{DefaultEnvFile}
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}
