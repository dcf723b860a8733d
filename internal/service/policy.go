package service

import (
	"sort"
	"time"

	"github.com/velostudio/booking_bot/internal/model"
)

// Чистые правила бронирования. Никакого I/O: функции работают только
// с данными, которые оркестратор уже загрузил из хранилища.

// SlotBookable проверяет, доступен ли слот для записи на момент now.
// Условия: время начала вычислимо, до начала осталось не меньше cutoff,
// число свободных мест неизвестно либо больше нуля.
func SlotBookable(slot *model.Slot, now time.Time, cutoff time.Duration) bool {
	start, ok := slot.StartAt()
	if !ok {
		return false
	}
	if start.Sub(now) < cutoff {
		return false
	}
	if slot.FreePlaces != nil && *slot.FreePlaces <= 0 {
		return false
	}
	return true
}

// FilterBookable отбрасывает недоступные слоты. Отброс молчаливый:
// слот в прошлом или без мест - не ошибка.
func FilterBookable(slots []*model.Slot, now time.Time, cutoff time.Duration) []*model.Slot {
	var bookable []*model.Slot
	for _, slot := range slots {
		if SlotBookable(slot, now, cutoff) {
			bookable = append(bookable, slot)
		}
	}
	return bookable
}

// DaySlots - слоты одного календарного дня, отсортированные по времени начала.
type DaySlots struct {
	Day   time.Time
	Slots []*model.Slot
}

// GroupSlotsByDay группирует слоты по дате. Дни идут по возрастанию,
// внутри дня слоты отсортированы по времени начала, при равенстве - по ID.
func GroupSlotsByDay(slots []*model.Slot) []DaySlots {
	byDay := make(map[time.Time][]*model.Slot)
	for _, slot := range slots {
		day := slot.Day()
		byDay[day] = append(byDay[day], slot)
	}

	days := make([]time.Time, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	grouped := make([]DaySlots, 0, len(days))
	for _, day := range days {
		daySlots := byDay[day]
		sort.Slice(daySlots, func(i, j int) bool {
			si, _ := daySlots[i].StartAt()
			sj, _ := daySlots[j].StartAt()
			if !si.Equal(sj) {
				return si.Before(sj)
			}
			return daySlots[i].ID < daySlots[j].ID
		})
		grouped = append(grouped, DaySlots{Day: day, Slots: daySlots})
	}

	return grouped
}

// HasActiveBooking проверяет, есть ли у клиента действующая запись на слот.
// Отменённые, исторические и заблокированные записи не считаются,
// поэтому клиент может записаться снова после отмены.
func HasActiveBooking(reservations []*model.Reservation, slotID int64) bool {
	for _, res := range reservations {
		if res.SlotID == slotID && res.Active() {
			return true
		}
	}
	return false
}

// SelectSeat выбирает первое свободное место в порядке, выданном хранилищем.
func SelectSeat(reservations []*model.Reservation) (*model.Reservation, bool) {
	for _, res := range reservations {
		if res.Available() {
			return res, true
		}
	}
	return nil, false
}
