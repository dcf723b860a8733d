package callbacks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/velostudio/booking_bot/internal/controller/format"
	"github.com/velostudio/booking_bot/internal/controller/handlers"
	"github.com/velostudio/booking_bot/internal/controller/state"
	"github.com/velostudio/booking_bot/internal/model"
	"github.com/velostudio/booking_bot/internal/service"
	"go.uber.org/zap"
)

// HandleDay показывает доступные тренировки выбранного дня
func (h *Handler) HandleDay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	raw := strings.TrimPrefix(callback.Data, prefixDay)
	day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	slots := h.bookingService.ListBookableSlotsBetween(ctx, day, day, time.Now())
	if len(slots) == 0 {
		answerCallback(ctx, b, callback.ID, "")
		b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:    msg.Chat.ID,
			MessageID: msg.ID,
			Text:      "😔 На этот день свободных тренировок уже нет.",
			ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
				{{Text: "⬅️ К расписанию", CallbackData: actionBackToDays}},
			}},
		})
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, slot := range slots {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         format.SlotButton(slot),
			CallbackData: fmt.Sprintf("%s%d", prefixBook, slot.ID),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: "⬅️ К расписанию", CallbackData: actionBackToDays},
	})

	answerCallback(ctx, b, callback.ID, "")
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:      msg.Chat.ID,
		MessageID:   msg.ID,
		Text:        fmt.Sprintf("📅 %s\nВыберите время:", format.FormatDateWithWeekday(day)),
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
}

// HandleBook записывает клиента на выбранный слот
func (h *Handler) HandleBook(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	slotID, err := parseIDFromCallback(callback.Data)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	client, err := h.clientService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || client == nil {
		answerCallbackAlert(ctx, b, callback.ID, "Сначала нажмите /start, чтобы зарегистрироваться.")
		return
	}

	result, err := h.bookingService.BookSlot(ctx, slotID, client.ID, client.DisplayName(), handlers.SourceTag)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, bookErrorMessage(err))
		return
	}

	answerCallback(ctx, b, callback.ID, "✅ Запись создана")

	text := fmt.Sprintf(
		"✅ Вы записаны!\n\n"+
			"📅 %s в %s\n"+
			"🚴 %s",
		format.FormatDateWithWeekday(result.Slot.Day()),
		result.Slot.StartTime,
		result.Slot.Label,
	)
	if result.Reservation.BikeLabel != nil && *result.Reservation.BikeLabel != "" {
		text += fmt.Sprintf("\n🚲 Станок: %s", *result.Reservation.BikeLabel)
	}
	text += "\n\nВаши записи: /mybookings"

	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      text,
	})

	h.recordBookingEvent(ctx, b, true, client, result.Slot, result.Reservation)
}

// HandleCancel отменяет запись клиента
func (h *Handler) HandleCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	reservationID, err := parseIDFromCallback(callback.Data)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	client, err := h.clientService.GetByTelegramID(ctx, callback.From.ID)
	if err != nil || client == nil {
		answerCallbackAlert(ctx, b, callback.ID, "Сначала нажмите /start, чтобы зарегистрироваться.")
		return
	}

	released, err := h.bookingService.CancelReservation(ctx, reservationID, client.ID, handlers.SourceTag)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, cancelErrorMessage(err))
		return
	}

	answerCallback(ctx, b, callback.ID, "Запись отменена")
	b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      "❌ Запись отменена. Место снова в продаже.\n\nВыбрать другое время: /schedule",
	})

	// Слот нужен только для текста уведомления: если не загрузился,
	// запись всё равно фиксируется с плейсхолдерами вместо даты и времени
	slot, _ := h.bookingService.GetSlot(ctx, released.SlotID)
	h.recordBookingEvent(ctx, b, false, client, slot, released)
}

// HandleComment начинает диалог комментария к записи: само сообщение
// клиент пришлёт следующим текстом, его подберёт обработчик диалогов.
func (h *Handler) HandleComment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	reservationID, err := parseIDFromCallback(callback.Data)
	if err != nil {
		answerCallbackAlert(ctx, b, callback.ID, "❌ Неверный формат данных")
		return
	}

	msg := messageFromCallback(callback)
	if msg == nil {
		answerCallback(ctx, b, callback.ID, "❌ Ошибка")
		return
	}

	h.stateManager.SetState(callback.From.ID, state.StateAwaitingComment)
	h.stateManager.SetData(callback.From.ID, state.DataKeyReservationID, reservationID)

	answerCallback(ctx, b, callback.ID, "")
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.Chat.ID,
		Text:   "💬 Напишите комментарий к записи (пожелания, нужный станок) или /cancel.",
	})
}

// recordBookingEvent фиксирует событие бронирования в журнале уведомлений
// и рассылает его по настроенным каналам
func (h *Handler) recordBookingEvent(ctx context.Context, b *bot.Bot, created bool, client *model.Client, slot *model.Slot, res *model.Reservation) {
	name := client.DisplayName()
	source := handlers.SourceTag
	seatLabel := fmt.Sprintf("№%d", res.ID)

	n := &model.Notification{
		ClientID:       &client.ID,
		ClientName:     &name,
		SeatLabel:      &seatLabel,
		EquipmentLabel: res.BikeLabel,
		Source:         &source,
		Payload: map[string]any{
			"slot_id":        res.SlotID,
			"reservation_id": res.ID,
		},
	}
	if slot != nil {
		day := slot.Day()
		startTime := slot.StartTime
		n.SlotDate = &day
		n.SlotTime = &startTime
		if slot.Label != "" {
			label := slot.Label
			n.SlotLabel = &label
		}
		n.Instructor = slot.Instructor
	}

	var err error
	if created {
		_, err = h.notificationService.RecordBookingCreated(ctx, n, h.adminSenders(b)...)
	} else {
		_, err = h.notificationService.RecordBookingCancelled(ctx, n, h.adminSenders(b)...)
	}
	if err != nil {
		h.logger.Error("Failed to record booking event",
			zap.Error(err),
			zap.Bool("created", created),
			zap.Int64("reservation_id", res.ID),
		)
	}
}

// bookErrorMessage переводит типизированный исход бронирования в текст
// для клиента. У каждого исхода своё сообщение, без обобщённого "ошибка".
func bookErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrSlotNotFound):
		return "❌ Эта тренировка не найдена. Обновите расписание: /schedule"
	case errors.Is(err, service.ErrAlreadyBooked):
		return "⚠️ Вы уже записаны на эту тренировку."
	case errors.Is(err, service.ErrNoFreePlace):
		return "😔 Свободных мест не осталось. Выберите другое время."
	case errors.Is(err, service.ErrBookingFailed):
		return "❌ Место только что заняли. Попробуйте другое время."
	default:
		return "❌ Сервис временно недоступен. Попробуйте позже."
	}
}

func cancelErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrReservationNotFound):
		return "❌ Запись не найдена."
	case errors.Is(err, service.ErrNotOwner):
		return "⚠️ Это не ваша запись, отменить её нельзя."
	case errors.Is(err, service.ErrCancelFailed):
		return "❌ Не получилось отменить запись. Возможно, она уже отменена."
	default:
		return "❌ Сервис временно недоступен. Попробуйте позже."
	}
}
