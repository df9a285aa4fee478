// Package testutil provides testing utilities for the assistant.
package testutil

// Safe test credentials that won't trigger secret scanning.
// Keep them simple and obviously fake.
const (
	// FakeTelegramBotToken is a safe test token for the Telegram Bot API.
	FakeTelegramBotToken = "test-telegram-bot-token"

	// FakeOpenAIKey is a safe test API key for OpenAI.
	FakeOpenAIKey = "test-openai-api-key"

	// FakeGmailAPIKey is a safe test API key for Gmail.
	FakeGmailAPIKey = "test-gmail-api-key"

	// FakeGoogleCalendarAPIKey is a safe test API key for Google Calendar.
	FakeGoogleCalendarAPIKey = "test-google-calendar-api-key"

	// FakeBaserowAPIKey is a safe test API key for Baserow.
	FakeBaserowAPIKey = "test-baserow-api-key"
)
