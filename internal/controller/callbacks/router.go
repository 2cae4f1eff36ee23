package callbacks

import (
	"context"
	"strings"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route dispatches a callback query by its data
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *Handler) {
	data := callback.Data

	h.Logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID))

	switch {
	case data == keyboard.NoopData:
		common.AnswerCallback(ctx, b, callback.ID, "")

	case strings.HasPrefix(data, keyboard.DayPrefix):
		HandleDay(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown action")
	}
}
