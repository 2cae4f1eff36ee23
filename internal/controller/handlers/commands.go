package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📋 <b>Consultation desk</b>\n\n" +
	"/today - Today's consultations\n" +
	"/tomorrow - Tomorrow's consultations\n" +
	"/day YYYY-MM-DD - Consultations of a date\n" +
	"/help - Show this help\n\n" +
	"New bookings and quote requests are posted here as they arrive."

// HandleStart handles /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 Hi! "+helpText, nil)
}

// HandleHelp handles /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleToday handles /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showDay(ctx, b, update.Message.Chat.ID, h.days.Today())
}

// HandleTomorrow handles /tomorrow
func (h *Handlers) HandleTomorrow(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.showDay(ctx, b, update.Message.Chat.ID, shiftDate(h.days.Today(), 1))
}

// HandleDay handles /day YYYY-MM-DD
func (h *Handlers) HandleDay(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	date, ok := parseDayArgument(update.Message.Text)
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Usage: /day YYYY-MM-DD")
		return
	}
	h.showDay(ctx, b, update.Message.Chat.ID, date)
}

func (h *Handlers) showDay(ctx context.Context, b *bot.Bot, chatID int64, date string) {
	summary, err := h.days.Day(ctx, date)
	if err != nil {
		h.logger.Error("Failed to load day", zap.String("date", date), zap.Error(err))
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	text, kb := common.BuildDayScreen(summary, h.days.Today())
	if kb == nil {
		h.sendMessage(ctx, b, chatID, text, nil)
		return
	}
	h.sendMessage(ctx, b, chatID, text, kb)
}

// parseDayArgument extracts the date of "/day 2026-03-03" (also "/day@botname 2026-03-03")
func parseDayArgument(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "/day") {
		return "", false
	}
	if _, err := time.Parse(model.DateLayout, fields[1]); err != nil {
		return "", false
	}
	return fields[1], true
}

func shiftDate(date string, days int) string {
	t, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, days).Format(model.DateLayout)
}
