// Загрузчик инвентаря: читает CSV с расписанием и создаёт слоты
// вместе с их местами.
//
// Формат строки: date;start_time;end_time;label;kind;instructor;places;bikes
//   2024-03-01;19:00;20:00;Вечерняя;instructor_led;Анна;4;B1|B2|B3|B4
// Пустые end_time/instructor/bikes допустимы. Число станков в bikes
// может быть меньше places, лишние места остаются без закрепления.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velostudio/booking_bot/internal/app"
	"github.com/velostudio/booking_bot/internal/config"
	"github.com/velostudio/booking_bot/internal/model"
	"github.com/velostudio/booking_bot/internal/repository"
	"go.uber.org/zap"
)

func main() {
	path := flag.String("file", "", "путь к CSV с расписанием")
	flag.Parse()

	if *path == "" {
		log.Fatal("usage: importcsv -file schedule.csv")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	slotRepo := repository.NewSlotRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)

	file, err := os.Open(*path)
	if err != nil {
		logger.Fatal("Failed to open CSV", zap.Error(err))
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = ';'
	reader.FieldsPerRecord = 8

	imported := 0
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			logger.Fatal("Failed to read CSV", zap.Error(err), zap.Int("line", line))
		}

		slot, bikes, err := parseRecord(record)
		if err != nil {
			logger.Fatal("Bad CSV record", zap.Error(err), zap.Int("line", line))
		}

		if err := slotRepo.Create(ctx, slot); err != nil {
			logger.Fatal("Failed to create slot", zap.Error(err), zap.Int("line", line))
		}

		for i := 0; i < slot.TotalPlaces; i++ {
			res := &model.Reservation{
				SlotID: slot.ID,
				Status: model.ReservationStatusAvailable,
			}
			if i < len(bikes) {
				bike := bikes[i]
				res.BikeLabel = &bike
			}
			if err := reservationRepo.Create(ctx, res); err != nil {
				logger.Fatal("Failed to create reservation", zap.Error(err), zap.Int64("slot_id", slot.ID))
			}
		}

		imported++
	}

	logger.Info("Import finished", zap.Int("slots", imported))
}

func parseRecord(record []string) (*model.Slot, []string, error) {
	date, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(record[0]), time.Local)
	if err != nil {
		return nil, nil, fmt.Errorf("parse date: %w", err)
	}

	places, err := strconv.Atoi(strings.TrimSpace(record[6]))
	if err != nil || places <= 0 {
		return nil, nil, fmt.Errorf("places must be a positive integer, got %q", record[6])
	}

	slot := &model.Slot{
		Date:        date,
		StartTime:   strings.TrimSpace(record[1]),
		Label:       strings.TrimSpace(record[3]),
		Kind:        parseKind(record[4]),
		TotalPlaces: places,
	}
	if slot.StartTime == "" {
		return nil, nil, fmt.Errorf("start_time is required")
	}

	if end := strings.TrimSpace(record[2]); end != "" {
		slot.EndTime = &end
	}
	if instructor := strings.TrimSpace(record[5]); instructor != "" {
		slot.Instructor = &instructor
	}

	var bikes []string
	if raw := strings.TrimSpace(record[7]); raw != "" {
		for _, bike := range strings.Split(raw, "|") {
			if bike = strings.TrimSpace(bike); bike != "" {
				bikes = append(bikes, bike)
			}
		}
	}

	return slot, bikes, nil
}

func parseKind(raw string) model.SessionKind {
	switch model.SessionKind(strings.TrimSpace(strings.ToLower(raw))) {
	case model.SessionKindSelf:
		return model.SessionKindSelf
	case model.SessionKindInstructor:
		return model.SessionKindInstructor
	default:
		return model.SessionKindOther
	}
}
