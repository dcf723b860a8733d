package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManagerStateRoundTrip(t *testing.T) {
	m := NewManager(time.Minute)

	assert.Equal(t, StateNone, m.GetState(1))

	m.SetState(1, StateAwaitingPhone)
	assert.Equal(t, StateAwaitingPhone, m.GetState(1))

	m.Clear(1)
	assert.Equal(t, StateNone, m.GetState(1))
}

func TestManagerDataRoundTrip(t *testing.T) {
	m := NewManager(time.Minute)

	_, ok := m.GetData(1, "day")
	assert.False(t, ok)

	m.SetData(1, "day", "2024-03-01")
	value, ok := m.GetData(1, "day")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-01", value)
}

func TestManagerSessionExpires(t *testing.T) {
	m := NewManager(10 * time.Millisecond)

	m.SetState(1, StateAwaitingPhone)
	m.SetData(1, "day", "2024-03-01")

	time.Sleep(25 * time.Millisecond)

	// Просроченный диалог исчезает целиком: и состояние, и данные
	assert.Equal(t, StateNone, m.GetState(1))
	_, ok := m.GetData(1, "day")
	assert.False(t, ok)
}

func TestManagerSetStateNoneDropsSession(t *testing.T) {
	m := NewManager(time.Minute)

	m.SetState(1, StateAwaitingPhone)
	m.SetState(1, StateNone)

	assert.Equal(t, StateNone, m.GetState(1))
	_, ok := m.GetData(1, "day")
	assert.False(t, ok)
}
