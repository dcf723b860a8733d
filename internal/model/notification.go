package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationEvent string

const (
	NotificationEventBookingCreated   NotificationEvent = "booking_created"
	NotificationEventBookingCancelled NotificationEvent = "booking_cancelled"
	NotificationEventClientCreated    NotificationEvent = "client_created"
)

// Notification - долговечная запись о событии. Создаётся один раз,
// никогда не изменяется и не удаляется.
type Notification struct {
	ID             int64             `json:"id"`
	PublicID       uuid.UUID         `json:"public_id"`
	Event          NotificationEvent `json:"event"`
	ClientID       *int64            `json:"client_id"`
	ClientName     *string           `json:"client_name"`
	SlotDate       *time.Time        `json:"slot_date"`
	SlotTime       *string           `json:"slot_time"`
	SlotLabel      *string           `json:"slot_label"`
	SeatLabel      *string           `json:"seat_label"`
	EquipmentLabel *string           `json:"equipment_label"`
	Instructor     *string           `json:"instructor"`
	Message        string            `json:"message"` // готовый текст для рассылки
	Payload        map[string]any    `json:"payload"` // произвольный контекст события
	Source         *string           `json:"source"`
	CreatedAt      time.Time         `json:"created_at"`
}
