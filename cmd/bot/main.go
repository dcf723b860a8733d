package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/velostudio/booking_bot/internal/app"
	"github.com/velostudio/booking_bot/internal/config"
	"github.com/velostudio/booking_bot/internal/controller"
	"github.com/velostudio/booking_bot/internal/repository"
	"github.com/velostudio/booking_bot/internal/service"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Применяем миграции до старта бота
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	slotRepo := repository.NewSlotRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	clientRepo := repository.NewClientRepository(pool)

	// Сервисы
	clientService := service.NewClientService(clientRepo, logger)
	bookingService := service.NewBookingService(
		slotRepo,
		reservationRepo,
		cfg.BookingCutoff,
		cfg.HorizonDays,
		logger,
	)
	notificationService := service.NewNotificationService(notificationRepo, logger)

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		b,
		clientService,
		bookingService,
		notificationService,
		cfg.AdminChatID,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// HTTP-листенер метрик, если настроен адрес
	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			srv := &http.Server{
				Addr:              cfg.MetricsAddr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}
			logger.Info("Metrics listener started", zap.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("Metrics listener failed", zap.Error(err))
			}
		}()
	}

	logger.Info("Starting booking bot",
		zap.String("environment", cfg.Environment),
		zap.Duration("booking_cutoff", cfg.BookingCutoff),
		zap.Int("horizon_days", cfg.HorizonDays),
	)

	b.Start(ctx)

	logger.Info("Bot stopped")
}
