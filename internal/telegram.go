package internal

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageSender delivers a finished digest to a chat transport.
type MessageSender interface {
	Send(text string) error
}

// TelegramReporter sends digests through a Telegram bot.
type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramReporter creates a reporter for the given bot token and chat.
func NewTelegramReporter(token string, chatID int64) (*TelegramReporter, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token is required - set it in config.toml or TELEGRAM_BOT_TOKEN environment variable")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat ID is required - set it in config.toml or TELEGRAM_CHAT_ID environment variable")
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &TelegramReporter{bot: bot, chatID: chatID}, nil
}

// telegramMessageLimit is Telegram's maximum message length.
const telegramMessageLimit = 4096

// Send delivers the digest, splitting it when it exceeds the message limit.
func (t *TelegramReporter) Send(text string) error {
	for _, part := range splitMessage(text, telegramMessageLimit) {
		msg := tgbotapi.NewMessage(t.chatID, part)
		if _, err := t.bot.Send(msg); err != nil {
			return fmt.Errorf("sending telegram message: %w", err)
		}
	}
	return nil
}

// splitMessage cuts text into rune-safe pieces of at most limit characters,
// preferring to break at newlines.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i
				break
			}
		}
		parts = append(parts, string(runes[:cut]))
		runes = runes[cut:]
	}
	if len(runes) > 0 {
		parts = append(parts, string(runes))
	}
	return parts
}
