// Package notify is the delivery primitive: text plus action buttons to one
// recipient. The scheduler fans a reminder out by calling Send once per
// active user.
package notify

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Action is an inline button carrying a callback payload.
type Action struct {
	Label string
	Data  string
}

// Messenger sends a message to a single recipient. Implementations other
// than Telegram exist only in tests.
type Messenger interface {
	Send(chatID int64, text string, actions []Action) error
}

type Telegram struct {
	api *tgbotapi.BotAPI
}

func NewTelegram(api *tgbotapi.BotAPI) *Telegram {
	return &Telegram{api: api}
}

func (t *Telegram) Send(chatID int64, text string, actions []Action) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"

	if len(actions) > 0 {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(actions))
		for _, action := range actions {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(action.Label, action.Data))
		}
		msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(buttons...))
	}

	_, err := t.api.Send(msg)
	return err
}
