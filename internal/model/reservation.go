package model

import (
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationStatusAvailable ReservationStatus = "available"
	ReservationStatusBooked    ReservationStatus = "booked"
	ReservationStatusCancelled ReservationStatus = "cancelled"
	ReservationStatusLegacy    ReservationStatus = "legacy"  // историческая запись, не занимает место
	ReservationStatusBlocked   ReservationStatus = "blocked" // место выведено из продажи
)

type Reservation struct {
	ID         int64             `json:"id"`
	SlotID     int64             `json:"slot_id"`
	Status     ReservationStatus `json:"status"`
	ClientID   *int64            `json:"client_id"`   // указатель - может быть nil
	ClientName *string           `json:"client_name"` // снимок имени на момент записи
	Source     *string           `json:"source"`      // какой фронтенд создал запись
	Notes      *string           `json:"notes"`
	BikeLabel  *string           `json:"bike_label"` // закреплённый станок
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Дополнительные поля из JOIN со слотом (не из таблицы reservations)
	SlotDate      *time.Time `json:"slot_date,omitempty"`
	SlotStartTime *string    `json:"slot_start_time,omitempty"`
	SlotLabel     *string    `json:"slot_label,omitempty"`
}

// Active сообщает, занимает ли запись место в слоте.
// Статусы cancelled/legacy/blocked сравниваются без учёта регистра.
func (r *Reservation) Active() bool {
	switch ReservationStatus(strings.ToLower(strings.TrimSpace(string(r.Status)))) {
	case ReservationStatusCancelled, ReservationStatusLegacy, ReservationStatusBlocked:
		return false
	}
	return true
}

// Available сообщает, можно ли занять это место.
func (r *Reservation) Available() bool {
	return strings.EqualFold(strings.TrimSpace(string(r.Status)), string(ReservationStatusAvailable))
}
