package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/creativeflow/leads_backend/internal/model"
	"github.com/creativeflow/leads_backend/internal/service"
	"go.uber.org/zap"
)

// DayLoader resolves the admin view of a date
type DayLoader interface {
	Day(ctx context.Context, date string) (*service.DaySummary, error)
}

// DigestSender delivers the daily summary
type DigestSender interface {
	SendDigest(ctx context.Context, summary *service.DaySummary) error
}

// Scheduler sends the next day's digest once a day
type Scheduler struct {
	days     DayLoader
	sender   DigestSender
	hour     int
	location *time.Location
	now      func() time.Time
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewScheduler(days DayLoader, sender DigestSender, hour int, location *time.Location, logger *zap.Logger) *Scheduler {
	if location == nil {
		location = time.UTC
	}
	return &Scheduler{
		days:     days,
		sender:   sender,
		hour:     hour,
		location: location,
		now:      time.Now,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start runs the digest task in the background
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("digest_hour", s.hour))
	go s.runDigestTask(ctx)
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
}

func (s *Scheduler) runDigestTask(ctx context.Context) {
	for {
		wait := nextRun(s.now(), s.hour, s.location).Sub(s.now())
		timer := time.NewTimer(wait)

		select {
		case <-timer.C:
			s.SendDigest(ctx)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Digest task stopped")
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Digest task cancelled")
			return
		}
	}
}

// SendDigest posts tomorrow's reservations
func (s *Scheduler) SendDigest(ctx context.Context) {
	date := s.now().In(s.location).AddDate(0, 0, 1).Format(model.DateLayout)

	summary, err := s.days.Day(ctx, date)
	if err != nil {
		if errors.Is(err, service.ErrNotConfigured) {
			s.logger.Warn("Skipping digest, booking not configured", zap.String("date", date))
			return
		}
		s.logger.Error("Failed to load digest", zap.String("date", date), zap.Error(err))
		return
	}

	if err := s.sender.SendDigest(ctx, summary); err != nil {
		s.logger.Error("Failed to send digest", zap.String("date", date), zap.Error(err))
		return
	}

	s.logger.Info("Digest sent",
		zap.String("date", date),
		zap.Int("consultations", len(summary.Consultations)),
	)
}

// nextRun returns the first hour:00 in loc strictly after now
func nextRun(now time.Time, hour int, loc *time.Location) time.Time {
	local := now.In(loc)
	run := time.Date(local.Year(), local.Month(), local.Day(), hour, 0, 0, 0, loc)
	if !run.After(local) {
		run = time.Date(local.Year(), local.Month(), local.Day()+1, hour, 0, 0, 0, loc)
	}
	return run
}
