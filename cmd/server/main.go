package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/creativeflow/leads_backend/internal/app"
	"github.com/creativeflow/leads_backend/internal/config"
	"github.com/creativeflow/leads_backend/internal/controller"
	"github.com/creativeflow/leads_backend/internal/controller/httpapi"
	"github.com/creativeflow/leads_backend/internal/repository"
	"github.com/creativeflow/leads_backend/internal/service"
	"github.com/creativeflow/leads_backend/migrations"
	"github.com/gin-gonic/gin"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting leads backend",
		"environment", cfg.Environment,
		"http_addr", cfg.HTTPAddr,
		"timezone", cfg.Location.String(),
		"bot_enabled", cfg.BotEnabled())

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := app.NewPool(ctx, cfg.GetDBDSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, migrations.FS, logger)
	if err != nil {
		return err
	}
	if err := migrator.Run(ctx); err != nil {
		migrator.Close()
		return err
	}
	migrator.Close()

	settingsRepo := repository.NewSettingsRepository(pool)
	blockedRepo := repository.NewBlockedDateRepository(pool)
	consultationRepo := repository.NewConsultationRepository(pool)
	quoteRepo := repository.NewQuoteRepository(pool)

	consultationService := service.NewConsultationService(
		settingsRepo,
		blockedRepo,
		consultationRepo,
		nil,
		service.CalendarConfig{
			Location:       cfg.Location,
			ClosedWeekdays: cfg.ClosedWeekdays,
			HorizonDays:    cfg.CalendarHorizonDays,
			PhoneRegion:    cfg.PhoneRegion,
		},
		logger.Named("consultations"),
	)
	quoteService := service.NewQuoteService(quoteRepo, nil, cfg.PhoneRegion, logger.Named("quotes"))

	if cfg.BotEnabled() {
		notifier, err := startBot(ctx, cfg, consultationService, logger.Named("bot"))
		if err != nil {
			return err
		}
		defer notifier.Wait()

		consultationService.SetNotifier(notifier)
		quoteService.SetNotifier(notifier)

		scheduler := app.NewScheduler(consultationService, notifier, cfg.DigestHour, cfg.Location, logger.Named("scheduler"))
		scheduler.Start(ctx)
		defer scheduler.Stop()
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	handlers := httpapi.NewHandlers(consultationService, quoteService, pool, logger.Named("http"))
	router, err := httpapi.NewRouter(handlers, httpapi.RouterConfig{
		CORSOrigins:        cfg.CORSOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		TrustedProxies:     cfg.TrustedProxies,
	}, logger.Named("http"))
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// startBot registers the admin bot, starts polling and returns the lead notifier
func startBot(ctx context.Context, cfg *config.Config, consultations *service.ConsultationService, logger *zap.Logger) (*controller.Notifier, error) {
	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}

	botController := controller.NewBotController(b, consultations, cfg.TelegramAdminChatID, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Continuing without command menu", zap.Error(err))
	}
	go botController.Start(ctx)

	return controller.NewNotifier(b, cfg.TelegramAdminChatID, logger), nil
}
