package service

import "errors"

// Типизированные исходы операций бронирования. Отказы политики
// (ErrAlreadyBooked, ErrNoFreePlace, ErrNotOwner) - ожидаемые ответы
// пользователю, а не сбои, и не логируются как ошибки.
var (
	ErrSlotNotFound        = errors.New("slot not found")
	ErrAlreadyBooked       = errors.New("client already has an active booking for this slot")
	ErrNoFreePlace         = errors.New("no free place in slot")
	ErrBookingFailed       = errors.New("booking failed")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrNotOwner            = errors.New("reservation belongs to another client")
	ErrCancelFailed        = errors.New("cancellation failed")
	ErrStoreUnavailable    = errors.New("store unavailable")
)
