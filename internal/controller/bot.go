package controller

import (
	"context"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks"
	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/creativeflow/leads_backend/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// BotController is the admin desk bot
type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	adminOnly       bot.Middleware
	logger          *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	days common.DayService,
	adminChatID int64,
	logger *zap.Logger,
) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(days, logger),
		callbackHandler: callbacks.NewHandler(days, logger),
		adminOnly:       handlers.AdminOnly(adminChatID, logger),
		logger:          logger,
	}
}

// RegisterHandlers registers the admin commands and the button handler
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart, c.adminOnly)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp, c.adminOnly)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday, c.adminOnly)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tomorrow", bot.MatchTypeExact, c.handlers.HandleTomorrow, c.adminOnly)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/day", bot.MatchTypePrefix, c.handlers.HandleDay, c.adminOnly)

	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery, c.adminOnly)

	return c.setCommands(ctx)
}

// setCommands publishes the command menu
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "today", Description: "📅 Today's consultations"},
		{Command: "tomorrow", Description: "🗓 Tomorrow's consultations"},
		{Command: "day", Description: "🔎 Consultations of a date (YYYY-MM-DD)"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands menu set")
	return nil
}

// Start polls for updates until ctx is cancelled
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot")
	c.bot.Start(ctx)
}
