package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/velostudio/booking_bot/internal/model"
)

// FormatDate форматирует только дату
func FormatDate(t time.Time) string {
	return t.Format("02.01.2006")
}

// FormatDateWithWeekday форматирует дату с днём недели на русском
func FormatDateWithWeekday(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("02.01.2006"), WeekdayShortName(t.Weekday()))
}

// WeekdayName возвращает название дня недели на русском
func WeekdayName(weekday time.Weekday) string {
	names := []string{
		"Воскресенье",
		"Понедельник",
		"Вторник",
		"Среда",
		"Четверг",
		"Пятница",
		"Суббота",
	}
	if int(weekday) >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "Неизвестно"
}

// WeekdayShortName возвращает краткое название дня недели на русском
func WeekdayShortName(weekday time.Weekday) string {
	names := []string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}
	if int(weekday) >= 0 && int(weekday) < len(names) {
		return names[weekday]
	}
	return "?"
}

// Duration форматирует интервал в часах и минутах на русском: "2 ч",
// "30 мин", "1 ч 30 мин". Секунды отбрасываются.
func Duration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%d ч %d мин", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%d ч", hours)
	default:
		return fmt.Sprintf("%d мин", minutes)
	}
}

// SessionKindName возвращает название вида тренировки на русском
func SessionKindName(kind model.SessionKind) string {
	switch kind {
	case model.SessionKindSelf:
		return "Самостоятельная"
	case model.SessionKindInstructor:
		return "С тренером"
	default:
		return "Тренировка"
	}
}

// SlotButton собирает подпись кнопки слота: время, название, свободные места.
// Если у слота нет названия, подставляется вид тренировки.
func SlotButton(slot *model.Slot) string {
	var b strings.Builder
	b.WriteString(slot.StartTime)
	label := slot.Label
	if label == "" {
		label = SessionKindName(slot.Kind)
	}
	b.WriteString(" · ")
	b.WriteString(label)
	if slot.FreePlaces != nil {
		fmt.Fprintf(&b, " (мест: %d)", *slot.FreePlaces)
	}
	return b.String()
}

// ReservationLine собирает строку записи клиента для списка /mybookings
func ReservationLine(res *model.Reservation) string {
	var b strings.Builder
	if res.SlotDate != nil {
		b.WriteString(FormatDateWithWeekday(*res.SlotDate))
	} else {
		b.WriteString("дата не указана")
	}
	if res.SlotStartTime != nil && *res.SlotStartTime != "" {
		b.WriteString(" в ")
		b.WriteString(*res.SlotStartTime)
	}
	if res.SlotLabel != nil && *res.SlotLabel != "" {
		b.WriteString(" · ")
		b.WriteString(*res.SlotLabel)
	}
	if res.BikeLabel != nil && *res.BikeLabel != "" {
		fmt.Fprintf(&b, " · станок %s", *res.BikeLabel)
	}
	return b.String()
}
