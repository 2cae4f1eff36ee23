package controller

import (
	"context"
	"sync"
	"time"

	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common"
	"github.com/creativeflow/leads_backend/internal/controller/callbacks/common/formatting"
	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const sendTimeout = 10 * time.Second

// MessageSender is the part of *bot.Bot the notifier uses
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Notifier posts new leads and the daily digest to the admin chat
type Notifier struct {
	sender MessageSender
	chatID int64
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewNotifier(sender MessageSender, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		sender: sender,
		chatID: chatID,
		logger: logger,
	}
}

// ConsultationBooked posts the booking in the background
func (n *Notifier) ConsultationBooked(ctx context.Context, c *model.Consultation) {
	n.sendAsync(ctx, formatting.ConsultationNotice(c), zap.Int64("consultation_id", c.ID))
}

// QuoteSubmitted posts the quote request in the background
func (n *Notifier) QuoteSubmitted(ctx context.Context, q *model.Quote) {
	n.sendAsync(ctx, formatting.QuoteNotice(q), zap.String("quote_id", q.ID.String()))
}

// SendDigest posts the summary of a day and waits for delivery
func (n *Notifier) SendDigest(ctx context.Context, summary *service.DaySummary) error {
	return n.send(ctx, "🌙 <b>Tomorrow</b>\n\n"+common.DayText(summary))
}

// Wait blocks until background sends have finished
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) sendAsync(ctx context.Context, text string, field zap.Field) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		// the request that triggered the notice may already be finished
		if err := n.send(context.WithoutCancel(ctx), text); err != nil {
			n.logger.Error("Failed to notify admin chat", field, zap.Error(err))
		}
	}()
}

func (n *Notifier) send(ctx context.Context, text string) error {
	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	_, err := n.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    n.chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	return err
}
