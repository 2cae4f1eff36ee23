package common

import (
	"context"
	"strings"
	"time"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// AnswerCallback acknowledges a callback query with an optional toast
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert acknowledges a callback query with a modal alert
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback returns the message the button belongs to, nil if inaccessible
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseDateFromCallback extracts the date of "prefix:YYYY-MM-DD"
func ParseDateFromCallback(data, prefix string) (string, error) {
	raw, ok := strings.CutPrefix(data, prefix)
	if !ok {
		return "", ErrInvalidFormat
	}
	if _, err := time.Parse(model.DateLayout, raw); err != nil {
		return "", ErrInvalidFormat
	}
	return raw, nil
}

// ChatIDOf returns the chat an update came from, 0 if none
func ChatIDOf(update *models.Update) int64 {
	switch {
	case update.Message != nil:
		return update.Message.Chat.ID
	case update.CallbackQuery != nil:
		if msg := GetMessageFromCallback(update.CallbackQuery); msg != nil {
			return msg.Chat.ID
		}
	}
	return 0
}
