package handlers

import (
	"context"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// AdminOnly drops updates that do not come from the admin chat
func AdminOnly(adminChatID int64, logger *zap.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			chatID := common.ChatIDOf(update)
			if chatID == 0 || chatID != adminChatID {
				logger.Warn("Ignoring update from foreign chat", zap.Int64("chat_id", chatID))
				return
			}
			next(ctx, b, update)
		}
	}
}

// sendError sends an error reply and logs if that fails too
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, markup models.ReplyMarkup) {
	params := &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	}
	if markup != nil {
		params.ReplyMarkup = markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
