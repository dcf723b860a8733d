package service

import (
	"fmt"
	"strings"

	"github.com/velostudio/booking_bot/internal/model"
)

// Плейсхолдеры для пропущенных полей: дата и время всегда присутствуют
// в тексте, даже если о событии известно не всё.
const (
	PlaceholderDate = "дата не указана"
	PlaceholderTime = "время не указано"
)

// RenderMessage собирает текст уведомления по шаблону события.
// Дата и время рендерятся всегда (с плейсхолдером при отсутствии),
// остальные строки контекста добавляются только когда поле заполнено.
func RenderMessage(n *model.Notification) string {
	switch n.Event {
	case model.NotificationEventBookingCreated:
		return renderBooking("✅ Новая запись!", n)
	case model.NotificationEventBookingCancelled:
		return renderBooking("❌ Запись отменена", n)
	case model.NotificationEventClientCreated:
		return renderClientCreated(n)
	default:
		return renderBooking("📣 Событие", n)
	}
}

func renderBooking(header string, n *model.Notification) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n\n")

	name := PlaceholderValue(n.ClientName, "клиент не указан")
	fmt.Fprintf(&b, "👤 Клиент: %s\n", name)
	fmt.Fprintf(&b, "📅 Дата: %s\n", renderDate(n))
	fmt.Fprintf(&b, "🕐 Время: %s", renderTime(n))

	appendLine(&b, "🚴 Занятие", n.SlotLabel)
	appendLine(&b, "📍 Место", n.SeatLabel)
	appendLine(&b, "🚲 Станок", n.EquipmentLabel)
	appendLine(&b, "🎓 Тренер", n.Instructor)
	appendLine(&b, "📲 Источник", n.Source)

	return b.String()
}

func renderClientCreated(n *model.Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🆕 Новый клиент: %s", PlaceholderValue(n.ClientName, "имя не указано"))
	appendLine(&b, "📲 Источник", n.Source)
	return b.String()
}

func renderDate(n *model.Notification) string {
	if n.SlotDate == nil {
		return PlaceholderDate
	}
	return n.SlotDate.Format("02.01.2006")
}

func renderTime(n *model.Notification) string {
	if n.SlotTime == nil || strings.TrimSpace(*n.SlotTime) == "" {
		return PlaceholderTime
	}
	return strings.TrimSpace(*n.SlotTime)
}

// PlaceholderValue возвращает значение строки или плейсхолдер для nil/пустой.
func PlaceholderValue(value *string, placeholder string) string {
	if value == nil || strings.TrimSpace(*value) == "" {
		return placeholder
	}
	return strings.TrimSpace(*value)
}

func appendLine(b *strings.Builder, label string, value *string) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return
	}
	fmt.Fprintf(b, "\n%s: %s", label, strings.TrimSpace(*value))
}
