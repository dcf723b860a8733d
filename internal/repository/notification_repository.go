package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/velostudio/booking_bot/internal/model"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

// Insert сохраняет запись об уведомлении. Записи никогда не изменяются
// и не удаляются, это журнал событий.
func (r *NotificationRepository) Insert(ctx context.Context, n *model.Notification) error {
	payload, err := json.Marshal(n.Payload)
	if err != nil {
		return fmt.Errorf("marshal notification payload: %w", err)
	}

	query := `
		INSERT INTO notifications (
			public_id, event, client_id, client_name,
			slot_date, slot_time, slot_label, seat_label, equipment_label, instructor,
			message, payload, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at
	`

	err = r.pool.QueryRow(
		ctx, query,
		n.PublicID,
		n.Event,
		n.ClientID,
		n.ClientName,
		n.SlotDate,
		n.SlotTime,
		n.SlotLabel,
		n.SeatLabel,
		n.EquipmentLabel,
		n.Instructor,
		n.Message,
		payload,
		n.Source,
	).Scan(&n.ID, &n.CreatedAt)

	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	return nil
}

// ListRecent получает последние уведомления (для админки)
func (r *NotificationRepository) ListRecent(ctx context.Context, limit int) ([]*model.Notification, error) {
	query := `
		SELECT id, public_id, event, client_id, client_name,
		       slot_date, slot_time, slot_label, seat_label, equipment_label, instructor,
		       message, payload, source, created_at
		FROM notifications
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list recent notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		var payload []byte
		err := rows.Scan(
			&n.ID,
			&n.PublicID,
			&n.Event,
			&n.ClientID,
			&n.ClientName,
			&n.SlotDate,
			&n.SlotTime,
			&n.SlotLabel,
			&n.SeatLabel,
			&n.EquipmentLabel,
			&n.Instructor,
			&n.Message,
			&payload,
			&n.Source,
			&n.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &n.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal notification payload: %w", err)
			}
		}
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}
