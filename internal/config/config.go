package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"github.com/alekspetrov/tgassistant/internal/logging"
)

// Model defaults.
const (
	DefaultModel         = "gpt-4o-mini"
	DefaultSystemPrompt  = "You are a helpful assistant integrated with Telegram."
	DefaultFallbackReply = "⚠️ Sorry, I couldn't come up with a reply right now. Please try again in a moment."
)

// Config is the full runtime configuration: secrets from the environment
// plus non-secret settings from the YAML file.
type Config struct {
	Credentials Credentials
	Settings    *Settings
}

// Settings holds the non-secret knobs read from the YAML settings file.
type Settings struct {
	Model          string            `yaml:"model"`
	SystemPrompt   string            `yaml:"system_prompt"`
	BaseURL        string            `yaml:"base_url"`        // OpenAI-compatible endpoint override
	RequestTimeout time.Duration     `yaml:"request_timeout"` // per model call
	FallbackReply  string            `yaml:"fallback_reply"`
	Telegram       *TelegramSettings `yaml:"telegram"`
	Scratch        *ScratchSettings  `yaml:"scratch"`
	Logging        *logging.Config   `yaml:"logging"`
}

// TelegramSettings configures the bot framework.
type TelegramSettings struct {
	PollTimeout int    `yaml:"poll_timeout"` // long-poll timeout in seconds
	Debug       bool   `yaml:"debug"`
	APIEndpoint string `yaml:"api_endpoint"` // format string with token and method verbs
}

// ScratchSettings configures where voice notes are downloaded and how
// leftovers are swept.
type ScratchSettings struct {
	Dir           string        `yaml:"dir"`
	SweepSchedule string        `yaml:"sweep_schedule"` // cron expression, empty disables
	MaxAge        time.Duration `yaml:"max_age"`
}

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() *Settings {
	return &Settings{
		Model:          DefaultModel,
		SystemPrompt:   DefaultSystemPrompt,
		RequestTimeout: 60 * time.Second,
		FallbackReply:  DefaultFallbackReply,
		Telegram: &TelegramSettings{
			PollTimeout: 60,
		},
		Scratch: &ScratchSettings{
			Dir:           filepath.Join(os.TempDir(), "tgassistant"),
			SweepSchedule: "@every 15m",
			MaxAge:        time.Hour,
		},
		Logging: logging.DefaultConfig(),
	}
}

// LoadSettings loads settings from a YAML file. A missing file yields defaults.
func LoadSettings(path string) (*Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	if settings.Scratch != nil {
		settings.Scratch.Dir = expandPath(settings.Scratch.Dir)
	}
	if settings.Logging != nil && settings.Logging.Output != "stdout" && settings.Logging.Output != "stderr" {
		settings.Logging.Output = expandPath(settings.Logging.Output)
	}

	return settings, nil
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.Model) == "" {
		return fmt.Errorf("model is required")
	}
	if s.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request_timeout: %s", s.RequestTimeout)
	}
	if s.Telegram != nil && s.Telegram.PollTimeout < 0 {
		return fmt.Errorf("invalid telegram.poll_timeout: %d", s.Telegram.PollTimeout)
	}
	if s.Scratch != nil {
		if s.Scratch.Dir == "" {
			return fmt.Errorf("scratch.dir is required")
		}
		if s.Scratch.SweepSchedule != "" {
			if _, err := cron.ParseStandard(s.Scratch.SweepSchedule); err != nil {
				return fmt.Errorf("invalid scratch.sweep_schedule %q: %w", s.Scratch.SweepSchedule, err)
			}
			if s.Scratch.MaxAge <= 0 {
				return fmt.Errorf("scratch.max_age must be positive when sweeping is enabled")
			}
		}
	}
	return nil
}

// Load builds the full configuration from the settings file at path and
// the environment read through getenv.
func Load(path string, getenv func(string) string) (*Config, error) {
	settings, err := LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &Config{
		Credentials: LoadCredentials(getenv),
		Settings:    settings,
	}, nil
}

// RequireBotToken returns ErrMissingBotToken when the bot cannot start.
func (c *Config) RequireBotToken() error {
	if c == nil || c.Credentials.TelegramBotToken == "" {
		return ErrMissingBotToken
	}
	return nil
}

// Mock reports whether the assistant runs in mock mode.
func (c *Config) Mock() bool {
	return c.Credentials.Mock()
}

// DefaultConfigPath returns the default settings path
func DefaultConfigPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".tgassistant", "config.yaml")
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
