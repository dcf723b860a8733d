package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velostudio/booking_bot/internal/model"
)

type SlotRepository struct {
	pool *pgxpool.Pool
}

func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

// Create создаёт новый слот
func (r *SlotRepository) Create(ctx context.Context, slot *model.Slot) error {
	query := `
		INSERT INTO slots (date, start_time, end_time, label, kind, instructor, total_places)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		slot.Date,
		slot.StartTime,
		slot.EndTime,
		slot.Label,
		slot.Kind,
		slot.Instructor,
		slot.TotalPlaces,
	).Scan(&slot.ID, &slot.CreatedAt)

	if err != nil {
		return fmt.Errorf("create slot: %w", err)
	}

	return nil
}

// ListAvailable получает слоты в заданном диапазоне дат вместе с числом
// свободных мест. Свободные места считаются по статусам записей, а не
// хранятся отдельным счётчиком.
func (r *SlotRepository) ListAvailable(ctx context.Context, from, to time.Time) ([]*model.Slot, error) {
	query := `
		SELECT s.id, s.date, s.start_time, s.end_time, s.label, s.kind, s.instructor,
		       s.total_places,
		       COUNT(res.id) FILTER (WHERE res.status = 'available') AS free_places,
		       s.created_at
		FROM slots s
		LEFT JOIN reservations res ON res.slot_id = s.id
		WHERE s.date >= $1::date
		  AND s.date <= $2::date
		GROUP BY s.id
		ORDER BY s.date, s.start_time, s.id
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list available slots: %w", err)
	}
	defer rows.Close()

	var slots []*model.Slot
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// GetWithReservations получает слот по ID вместе со всеми его местами.
// Возвращает nil, nil, nil если слот не найден.
func (r *SlotRepository) GetWithReservations(ctx context.Context, id int64) (*model.Slot, []*model.Reservation, error) {
	query := `
		SELECT s.id, s.date, s.start_time, s.end_time, s.label, s.kind, s.instructor,
		       s.total_places,
		       COUNT(res.id) FILTER (WHERE res.status = 'available') AS free_places,
		       s.created_at
		FROM slots s
		LEFT JOIN reservations res ON res.slot_id = s.id
		WHERE s.id = $1
		GROUP BY s.id
	`

	row := r.pool.QueryRow(ctx, query, id)
	slot, err := scanSlot(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("get slot by id: %w", err)
	}

	seatsQuery := `
		SELECT id, slot_id, status, client_id, client_name, source, notes, bike_label,
		       created_at, updated_at
		FROM reservations
		WHERE slot_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, seatsQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get slot reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*model.Reservation
	for rows.Next() {
		var res model.Reservation
		err := rows.Scan(
			&res.ID,
			&res.SlotID,
			&res.Status,
			&res.ClientID,
			&res.ClientName,
			&res.Source,
			&res.Notes,
			&res.BikeLabel,
			&res.CreatedAt,
			&res.UpdatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return slot, reservations, rows.Err()
}

func scanSlot(row pgx.Row) (*model.Slot, error) {
	var slot model.Slot
	var free int
	err := row.Scan(
		&slot.ID,
		&slot.Date,
		&slot.StartTime,
		&slot.EndTime,
		&slot.Label,
		&slot.Kind,
		&slot.Instructor,
		&slot.TotalPlaces,
		&free,
		&slot.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	slot.FreePlaces = &free
	return &slot, nil
}
