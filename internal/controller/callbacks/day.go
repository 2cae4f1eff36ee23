package callbacks

import (
	"context"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleDay redraws the day screen in place for day:YYYY-MM-DD
func HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	date, err := common.ParseDateFromCallback(callback.Data, keyboard.DayPrefix)
	if err != nil {
		h.Logger.Error("Failed to parse day callback", zap.String("data", callback.Data), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	msg := common.GetMessageFromCallback(callback)
	if msg == nil {
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(common.ErrNoMessage))
		return
	}

	summary, err := h.Days.Day(ctx, date)
	if err != nil {
		h.Logger.Error("Failed to load day", zap.String("date", date), zap.Error(err))
		common.AnswerCallbackAlert(ctx, b, callback.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildDayScreen(summary, h.Days.Today())

	_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: kb,
	})
	if err != nil {
		h.Logger.Error("Failed to edit day screen", zap.String("date", date), zap.Error(err))
	}

	common.AnswerCallback(ctx, b, callback.ID, "")
}
