// Package telegram binds the dialogue controller to the Telegram Bot API.
package telegram

import (
	"context"
	"fmt"

	"github.com/aretw0/animefmt/pkg/domain"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// API is the subset of *tgbotapi.BotAPI used by this package.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Messenger implements ports.Messenger.
type Messenger struct {
	api API
}

// NewMessenger creates a Messenger on top of api.
func NewMessenger(api API) *Messenger {
	return &Messenger{api: api}
}

// Send delivers a new text message.
func (m *Messenger) Send(ctx context.Context, chatID int64, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := tgbotapi.NewMessage(chatID, msg.Text)
	cfg.DisableWebPagePreview = msg.DisablePreview
	if msg.HTML {
		cfg.ParseMode = tgbotapi.ModeHTML
	}
	if len(msg.Keyboard) > 0 {
		cfg.ReplyMarkup = inlineKeyboard(msg.Keyboard)
	}
	if _, err := m.api.Send(cfg); err != nil {
		return fmt.Errorf("sending message to chat %d: %w", chatID, err)
	}
	return nil
}

// SendPhoto delivers a photo by URL; Telegram fetches it.
func (m *Messenger) SendPhoto(ctx context.Context, chatID int64, photoURL string, caption domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := tgbotapi.NewPhoto(chatID, tgbotapi.FileURL(photoURL))
	cfg.Caption = caption.Text
	if caption.HTML {
		cfg.ParseMode = tgbotapi.ModeHTML
	}
	if len(caption.Keyboard) > 0 {
		cfg.ReplyMarkup = inlineKeyboard(caption.Keyboard)
	}
	if _, err := m.api.Send(cfg); err != nil {
		return fmt.Errorf("sending photo to chat %d: %w", chatID, err)
	}
	return nil
}

// Edit replaces the text of an existing message. A message edited without a
// keyboard loses its buttons.
func (m *Messenger) Edit(ctx context.Context, chatID int64, messageID int, msg domain.Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	cfg := tgbotapi.NewEditMessageText(chatID, messageID, msg.Text)
	cfg.DisableWebPagePreview = msg.DisablePreview
	if msg.HTML {
		cfg.ParseMode = tgbotapi.ModeHTML
	}
	if len(msg.Keyboard) > 0 {
		kb := inlineKeyboard(msg.Keyboard)
		cfg.ReplyMarkup = &kb
	}
	if _, err := m.api.Send(cfg); err != nil {
		return fmt.Errorf("editing message %d in chat %d: %w", messageID, chatID, err)
	}
	return nil
}

func inlineKeyboard(kb domain.Keyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb))
	for _, row := range kb {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Token))
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(buttons...))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
