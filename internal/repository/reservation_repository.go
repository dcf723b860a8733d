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

type ReservationRepository struct {
	pool *pgxpool.Pool
}

func NewReservationRepository(pool *pgxpool.Pool) *ReservationRepository {
	return &ReservationRepository{pool: pool}
}

const reservationColumns = `id, slot_id, status, client_id, client_name, source, notes, bike_label, created_at, updated_at`

// Create создаёт место в слоте (используется загрузчиком инвентаря)
func (r *ReservationRepository) Create(ctx context.Context, res *model.Reservation) error {
	query := `
		INSERT INTO reservations (slot_id, status, notes, bike_label)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		res.SlotID,
		res.Status,
		res.Notes,
		res.BikeLabel,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)

	if err != nil {
		return fmt.Errorf("create reservation: %w", err)
	}

	return nil
}

// GetByID получает место по ID. Возвращает nil, nil если место не найдено.
func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*model.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE id = $1
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation by id: %w", err)
	}

	return res, nil
}

// ListFutureByClient получает записи клиента на сегодняшний день и позже.
// Дата и время слота приходят из JOIN для отображения в списках.
func (r *ReservationRepository) ListFutureByClient(ctx context.Context, clientID int64, now time.Time) ([]*model.Reservation, error) {
	query := `
		SELECT res.id, res.slot_id, res.status, res.client_id, res.client_name,
		       res.source, res.notes, res.bike_label, res.created_at, res.updated_at,
		       s.date, s.start_time, s.label
		FROM reservations res
		JOIN slots s ON s.id = res.slot_id
		WHERE res.client_id = $1
		  AND s.date >= $2::date
		ORDER BY s.date, s.start_time, res.id
	`

	rows, err := r.pool.Query(ctx, query, clientID, now)
	if err != nil {
		return nil, fmt.Errorf("list future reservations by client: %w", err)
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
			&res.SlotDate,
			&res.SlotStartTime,
			&res.SlotLabel,
		)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		reservations = append(reservations, &res)
	}

	return reservations, rows.Err()
}

// Claim атомарно занимает место: переводит available -> booked, только если
// место всё ещё свободно. Возвращает nil, nil если место успел занять другой
// клиент (условие WHERE не совпало).
func (r *ReservationRepository) Claim(ctx context.Context, id, clientID int64, clientName, source string) (*model.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'booked', client_id = $2, client_name = $3, source = $4, updated_at = now()
		WHERE id = $1 AND status = 'available'
		RETURNING ` + reservationColumns + `
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id, clientID, clientName, source))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("claim reservation: %w", err)
	}

	return res, nil
}

// Release освобождает занятое место: переводит booked -> available и чистит
// данные клиента. Место возвращается в продажу, запись не удаляется.
// Возвращает nil, nil если место не было в статусе booked.
func (r *ReservationRepository) Release(ctx context.Context, id int64, note string) (*model.Reservation, error) {
	query := `
		UPDATE reservations
		SET status = 'available', client_id = NULL, client_name = NULL, notes = $2, updated_at = now()
		WHERE id = $1 AND status = 'booked'
		RETURNING ` + reservationColumns + `
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id, note))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("release reservation: %w", err)
	}

	return res, nil
}

// UpdateNotes обновляет заметки и/или закреплённый станок. nil-поля не трогаются.
// Возвращает nil, nil если место не найдено.
func (r *ReservationRepository) UpdateNotes(ctx context.Context, id int64, notes, bikeLabel *string) (*model.Reservation, error) {
	query := `
		UPDATE reservations
		SET notes = COALESCE($2, notes), bike_label = COALESCE($3, bike_label), updated_at = now()
		WHERE id = $1
		RETURNING ` + reservationColumns + `
	`

	res, err := scanReservation(r.pool.QueryRow(ctx, query, id, notes, bikeLabel))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update reservation: %w", err)
	}

	return res, nil
}

func scanReservation(row pgx.Row) (*model.Reservation, error) {
	var res model.Reservation
	err := row.Scan(
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
		return nil, err
	}
	return &res, nil
}
