package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"habitsync/internal/model"
)

// Telegram delivers reminders to users who linked a Telegram chat.
type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Telegram{api: api}, nil
}

func (t *Telegram) Send(_ context.Context, user model.User, text string) error {
	if user.TelegramChatID == nil {
		// Nothing to deliver to; the user never linked a chat.
		return nil
	}
	msg := tgbotapi.NewMessage(*user.TelegramChatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
