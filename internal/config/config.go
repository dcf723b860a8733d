package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string
	DBDSN          string
	Environment    string
	BookingCutoff  time.Duration // минимальное время до начала слота для записи
	HorizonDays    int           // на сколько дней вперёд показывать расписание
	AdminChatID    int64         // чат для уведомлений студии, 0 - отключено
	MetricsAddr    string        // адрес HTTP-листенера метрик, пусто - отключено
	MigrationsPath string
}

func LoadConfig() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		Environment:    os.Getenv("ENV"),
		MetricsAddr:    os.Getenv("METRICS_ADDR"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		HorizonDays:    21,
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	if raw := os.Getenv("BOOKING_CUTOFF"); raw != "" {
		cutoff, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse BOOKING_CUTOFF: %w", err)
		}
		if cutoff < 0 {
			return nil, fmt.Errorf("BOOKING_CUTOFF must be non-negative, got %s", cutoff)
		}
		cfg.BookingCutoff = cutoff
	}

	if raw := os.Getenv("HORIZON_DAYS"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days <= 0 {
			return nil, fmt.Errorf("HORIZON_DAYS must be a positive integer, got %q", raw)
		}
		cfg.HorizonDays = days
	}

	if raw := os.Getenv("ADMIN_CHAT_ID"); raw != "" {
		chatID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse ADMIN_CHAT_ID: %w", err)
		}
		cfg.AdminChatID = chatID
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
