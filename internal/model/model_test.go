package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSlotStartAt(t *testing.T) {
	slot := &Slot{Date: date(2024, 3, 1), StartTime: "19:00"}

	start, ok := slot.StartAt()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 19, 0, 0, 0, time.UTC), start)
}

func TestSlotStartAtWithSeconds(t *testing.T) {
	slot := &Slot{Date: date(2024, 3, 1), StartTime: "09:30:00"}

	start, ok := slot.StartAt()
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), start)
}

func TestSlotStartAtInvalid(t *testing.T) {
	for _, raw := range []string{"", "  ", "вечер", "25:99"} {
		slot := &Slot{Date: date(2024, 3, 1), StartTime: raw}
		_, ok := slot.StartAt()
		assert.False(t, ok, "start time %q should not parse", raw)
	}
}

func TestReservationActive(t *testing.T) {
	clientID := int64(7)

	active := &Reservation{Status: ReservationStatusBooked, ClientID: &clientID}
	assert.True(t, active.Active())

	available := &Reservation{Status: ReservationStatusAvailable}
	assert.True(t, available.Active())

	for _, status := range []ReservationStatus{"cancelled", "CANCELLED", "Legacy", "BLOCKED", " blocked "} {
		res := &Reservation{Status: status}
		assert.False(t, res.Active(), "status %q should be inactive", status)
	}
}

func TestReservationAvailable(t *testing.T) {
	assert.True(t, (&Reservation{Status: "available"}).Available())
	assert.True(t, (&Reservation{Status: "AVAILABLE"}).Available())
	assert.False(t, (&Reservation{Status: "booked"}).Available())
}

func TestClientDisplayName(t *testing.T) {
	assert.Equal(t, "Анна Петрова", (&Client{FirstName: "Анна", LastName: "Петрова"}).DisplayName())
	assert.Equal(t, "Анна", (&Client{FirstName: "Анна"}).DisplayName())
	assert.Equal(t, "@anna", (&Client{Username: "anna"}).DisplayName())
	assert.Equal(t, "клиент", (&Client{}).DisplayName())
}
