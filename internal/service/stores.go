package service

import (
	"context"
	"time"

	"github.com/velostudio/booking_bot/internal/model"
)

// SlotStore - хранилище слотов. Реализуется repository.SlotRepository.
type SlotStore interface {
	ListAvailable(ctx context.Context, from, to time.Time) ([]*model.Slot, error)
	// GetWithReservations возвращает nil, nil, nil если слот не найден.
	GetWithReservations(ctx context.Context, id int64) (*model.Slot, []*model.Reservation, error)
}

// ReservationStore - хранилище мест. Реализуется repository.ReservationRepository.
type ReservationStore interface {
	// GetByID возвращает nil, nil если место не найдено.
	GetByID(ctx context.Context, id int64) (*model.Reservation, error)
	ListFutureByClient(ctx context.Context, clientID int64, now time.Time) ([]*model.Reservation, error)
	// Claim возвращает nil, nil если место успел занять другой клиент.
	Claim(ctx context.Context, id, clientID int64, clientName, source string) (*model.Reservation, error)
	// Release возвращает nil, nil если место не было занято.
	Release(ctx context.Context, id int64, note string) (*model.Reservation, error)
	// UpdateNotes возвращает nil, nil если место не найдено.
	UpdateNotes(ctx context.Context, id int64, notes, bikeLabel *string) (*model.Reservation, error)
}

// NotificationStore - журнал уведомлений. Реализуется repository.NotificationRepository.
type NotificationStore interface {
	Insert(ctx context.Context, n *model.Notification) error
	ListRecent(ctx context.Context, limit int) ([]*model.Notification, error)
}
