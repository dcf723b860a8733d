package model

import (
	"strings"
	"time"
)

type SessionKind string

const (
	SessionKindSelf       SessionKind = "self_service"   // самостоятельная тренировка
	SessionKindInstructor SessionKind = "instructor_led" // тренировка с тренером
	SessionKindOther      SessionKind = "other"
)

type Slot struct {
	ID          int64       `json:"id"`
	Date        time.Time   `json:"date"`       // календарная дата (полночь в таймзоне студии)
	StartTime   string      `json:"start_time"` // "19:00"
	EndTime     *string     `json:"end_time"`   // указатель - может быть nil
	Label       string      `json:"label"`
	Kind        SessionKind `json:"kind"`
	Instructor  *string     `json:"instructor"`
	TotalPlaces int         `json:"total_places"`
	FreePlaces  *int        `json:"free_places"` // nil если не подсчитано
	CreatedAt   time.Time   `json:"created_at"`
}

// StartAt вычисляет момент начала слота из даты и времени.
// Возвращает false, если время начала не задано или не парсится.
func (s *Slot) StartAt() (time.Time, bool) {
	raw := strings.TrimSpace(s.StartTime)
	if raw == "" {
		return time.Time{}, false
	}

	var parsed time.Time
	var err error
	for _, layout := range []string{"15:04", "15:04:05"} {
		parsed, err = time.Parse(layout, raw)
		if err == nil {
			break
		}
	}
	if err != nil {
		return time.Time{}, false
	}

	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		parsed.Hour(), parsed.Minute(), parsed.Second(), 0,
		s.Date.Location(),
	), true
}

// Day возвращает дату слота, нормализованную к полуночи.
func (s *Slot) Day() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(), 0, 0, 0, 0, s.Date.Location())
}
