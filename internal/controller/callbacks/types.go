package callbacks

import (
	"context"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Handler holds the dependencies of the inline button handlers
type Handler struct {
	Days   common.DayService
	Logger *zap.Logger
}

func NewHandler(days common.DayService, logger *zap.Logger) *Handler {
	return &Handler{
		Days:   days,
		Logger: logger,
	}
}

// HandleCallbackQuery is the go-telegram entry point for button presses
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.CallbackQuery == nil {
		return
	}
	Route(ctx, b, update.CallbackQuery, h)
}
