package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostudio/booking_bot/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func TestSlotBookableCutoffBoundary(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	slot := &model.Slot{Date: day(2024, 1, 1), StartTime: "10:00", FreePlaces: intPtr(3)}

	// Слот, начинающийся ровно в now + cutoff, ещё доступен
	assert.True(t, SlotBookable(slot, now, 0))

	// Секундой позже по часам "сейчас" - уже нет
	assert.False(t, SlotBookable(slot, now.Add(time.Second), 0))

	// С двухчасовой отсечкой: начало ровно через два часа - доступен
	evening := &model.Slot{Date: day(2024, 1, 1), StartTime: "12:00", FreePlaces: intPtr(1)}
	assert.True(t, SlotBookable(evening, now, 2*time.Hour))
	assert.False(t, SlotBookable(evening, now.Add(time.Second), 2*time.Hour))
}

func TestSlotBookableFreePlaces(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	full := &model.Slot{Date: day(2024, 1, 2), StartTime: "10:00", FreePlaces: intPtr(0)}
	assert.False(t, SlotBookable(full, now, 0))

	// Неизвестное число мест не блокирует запись
	unknown := &model.Slot{Date: day(2024, 1, 2), StartTime: "10:00"}
	assert.True(t, SlotBookable(unknown, now, 0))
}

func TestSlotBookableUnparsableStart(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	slot := &model.Slot{Date: day(2024, 1, 2), StartTime: "утро", FreePlaces: intPtr(3)}

	assert.False(t, SlotBookable(slot, now, 0))
}

func TestFilterBookableDropsSilently(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	slots := []*model.Slot{
		{ID: 1, Date: day(2024, 1, 2), StartTime: "09:00", FreePlaces: intPtr(2)},
		{ID: 2, Date: day(2023, 12, 31), StartTime: "09:00", FreePlaces: intPtr(2)}, // в прошлом
		{ID: 3, Date: day(2024, 1, 2), StartTime: "10:00", FreePlaces: intPtr(0)},   // мест нет
	}

	bookable := FilterBookable(slots, now, 0)
	require.Len(t, bookable, 1)
	assert.Equal(t, int64(1), bookable[0].ID)
}

func TestGroupSlotsByDay(t *testing.T) {
	slots := []*model.Slot{
		{ID: 10, Date: day(2024, 3, 2), StartTime: "10:00"},
		{ID: 11, Date: day(2024, 3, 2), StartTime: "09:00"},
		{ID: 12, Date: day(2024, 3, 1), StartTime: "18:00"},
	}

	grouped := GroupSlotsByDay(slots)
	require.Len(t, grouped, 2)

	assert.Equal(t, day(2024, 3, 1), grouped[0].Day)
	require.Len(t, grouped[0].Slots, 1)
	assert.Equal(t, "18:00", grouped[0].Slots[0].StartTime)

	assert.Equal(t, day(2024, 3, 2), grouped[1].Day)
	require.Len(t, grouped[1].Slots, 2)
	assert.Equal(t, "09:00", grouped[1].Slots[0].StartTime)
	assert.Equal(t, "10:00", grouped[1].Slots[1].StartTime)
}

func TestGroupSlotsByDayTieBreakByID(t *testing.T) {
	slots := []*model.Slot{
		{ID: 5, Date: day(2024, 3, 2), StartTime: "09:00"},
		{ID: 3, Date: day(2024, 3, 2), StartTime: "09:00"},
	}

	grouped := GroupSlotsByDay(slots)
	require.Len(t, grouped, 1)
	assert.Equal(t, int64(3), grouped[0].Slots[0].ID)
	assert.Equal(t, int64(5), grouped[0].Slots[1].ID)
}

func TestHasActiveBooking(t *testing.T) {
	clientID := int64(1)

	// Отменённая запись на слот не мешает повторной записи
	history := []*model.Reservation{
		{ID: 1, SlotID: 100, Status: "cancelled", ClientID: &clientID},
		{ID: 2, SlotID: 200, Status: "booked", ClientID: &clientID},
	}
	assert.False(t, HasActiveBooking(history, 100))
	assert.True(t, HasActiveBooking(history, 200))

	// Клиент перезаписался после отмены: активная запись среди исторических
	rebooked := []*model.Reservation{
		{ID: 1, SlotID: 100, Status: "cancelled", ClientID: &clientID},
		{ID: 3, SlotID: 100, Status: "BOOKED", ClientID: &clientID},
	}
	assert.True(t, HasActiveBooking(rebooked, 100))
}

func TestSelectSeatFirstAvailable(t *testing.T) {
	seats := []*model.Reservation{
		{ID: 1, Status: "booked"},
		{ID: 2, Status: "blocked"},
		{ID: 3, Status: "available"},
		{ID: 4, Status: "available"},
	}

	seat, ok := SelectSeat(seats)
	require.True(t, ok)
	assert.Equal(t, int64(3), seat.ID)
}

func TestSelectSeatNoneAvailable(t *testing.T) {
	seats := []*model.Reservation{
		{ID: 1, Status: "booked"},
		{ID: 2, Status: "legacy"},
	}

	_, ok := SelectSeat(seats)
	assert.False(t, ok)
}
