package state

import (
	"sync"
	"time"
)

type SessionState string

const (
	StateNone            SessionState = ""
	StateAwaitingPhone   SessionState = "awaiting_phone"
	StateAwaitingComment SessionState = "awaiting_comment"
)

// DataKeyReservationID - ID записи, к которой клиент пишет комментарий.
const DataKeyReservationID = "reservation_id"

// DefaultTTL - срок жизни сессии диалога. Брошенный на полпути диалог
// не должен висеть в памяти и перехватывать сообщения через неделю.
const DefaultTTL = 30 * time.Minute

type session struct {
	State     SessionState
	Data      map[string]interface{}
	ExpiresAt time.Time
}

// Manager хранит состояния многошаговых диалогов, ключ - Telegram ID.
// Каждая запись живёт не дольше TTL и продлевается при обновлении.
type Manager struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[int64]*session
}

// NewManager создаёт менеджер состояний с заданным TTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		ttl:      ttl,
		sessions: make(map[int64]*session),
	}
}

// GetState получает текущее состояние диалога. Просроченная сессия
// считается отсутствующей и удаляется.
func (m *Manager) GetState(telegramID int64) SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.alive(telegramID)
	if s == nil {
		return StateNone
	}
	return s.State
}

// SetState устанавливает состояние диалога и продлевает сессию.
func (m *Manager) SetState(telegramID int64, state SessionState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if state == StateNone {
		delete(m.sessions, telegramID)
		return
	}

	s := m.alive(telegramID)
	if s == nil {
		s = &session{Data: make(map[string]interface{})}
		m.sessions[telegramID] = s
	}
	s.State = state
	s.ExpiresAt = time.Now().Add(m.ttl)
}

// GetData получает временные данные диалога.
func (m *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.alive(telegramID)
	if s == nil {
		return nil, false
	}
	value, ok := s.Data[key]
	return value, ok
}

// SetData сохраняет временные данные диалога и продлевает сессию.
func (m *Manager) SetData(telegramID int64, key string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.alive(telegramID)
	if s == nil {
		s = &session{Data: make(map[string]interface{})}
		m.sessions[telegramID] = s
	}
	s.Data[key] = value
	s.ExpiresAt = time.Now().Add(m.ttl)
}

// Clear завершает диалог и удаляет все его данные.
func (m *Manager) Clear(telegramID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, telegramID)
}

// alive возвращает живую сессию или nil, попутно удаляя просроченную.
// Вызывается под mu.
func (m *Manager) alive(telegramID int64) *session {
	s, ok := m.sessions[telegramID]
	if !ok {
		return nil
	}
	if time.Now().After(s.ExpiresAt) {
		delete(m.sessions, telegramID)
		return nil
	}
	return s
}
