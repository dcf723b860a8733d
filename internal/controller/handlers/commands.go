package handlers

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/velostudio/booking_bot/internal/controller/format"
	"github.com/velostudio/booking_bot/internal/controller/state"
	"github.com/velostudio/booking_bot/internal/model"
	"github.com/velostudio/booking_bot/internal/service"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	from := update.Message.From

	client, created, err := h.clientService.RegisterClient(
		ctx,
		from.ID,
		from.Username,
		from.FirstName,
		from.LastName,
	)

	if err != nil {
		h.logger.Error("Failed to register client", zap.Error(err))
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Произошла ошибка при регистрации. Попробуйте позже.",
		})
		return
	}

	welcomeText := fmt.Sprintf(
		"👋 Привет, %s!\n\n"+
			"Это бот студии для записи на тренировки на велостанках.\n\n"+
			"Доступные команды:\n"+
			"/schedule - Расписание и запись\n"+
			"/mybookings - Мои записи\n"+
			"/help - Справка",
		client.FirstName,
	)

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})

	if created {
		name := client.DisplayName()
		source := SourceTag
		_, err := h.notificationService.RecordClientCreated(ctx, &model.Notification{
			ClientID:   &client.ID,
			ClientName: &name,
			Source:     &source,
		}, h.AdminSenders(b)...)
		if err != nil {
			h.logger.Error("Failed to record client creation", zap.Error(err))
		}

		// Просим телефон для связи, диалог живёт до истечения сессии
		h.stateManager.SetState(from.ID, state.StateAwaitingPhone)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "📱 Оставьте, пожалуйста, номер телефона для связи (или /cancel, чтобы пропустить).",
		})
	}
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/start - Начать работу с ботом\n" +
		"/schedule - Расписание тренировок и запись\n" +
		"/mybookings - Мои записи\n" +
		"/cancel - Прервать текущий диалог\n" +
		"/help - Показать эту справку\n\n" +
		"Для записи выберите день в /schedule, затем время."

	if cutoff := h.bookingService.Cutoff(); cutoff > 0 {
		helpText += fmt.Sprintf("\nЗапись закрывается за %s до начала тренировки.", format.Duration(cutoff))
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   helpText,
	})
}

// HandleCancelDialog обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancelDialog(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.stateManager.Clear(update.Message.From.ID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "Хорошо, диалог сброшен. /schedule - расписание, /help - справка.",
	})
}

// HandleSchedule обрабатывает команду /schedule - дни с доступными слотами
func (h *Handlers) HandleSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	h.ShowSchedule(ctx, b, update.Message.Chat.ID)
}

// ShowSchedule отправляет клавиатуру дней с доступными тренировками.
// Используется и командой /schedule, и кнопкой "назад" в callback-ах.
func (h *Handlers) ShowSchedule(ctx context.Context, b *bot.Bot, chatID int64) {
	slots := h.bookingService.ListBookableSlotsForHorizon(ctx, time.Now())
	days := service.GroupSlotsByDay(slots)

	if len(days) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   "😔 Пока нет доступных тренировок. Загляните позже!",
		})
		return
	}

	var rows [][]models.InlineKeyboardButton
	for _, day := range days {
		label := fmt.Sprintf("%s — %d трен.", format.FormatDateWithWeekday(day.Day), len(day.Slots))
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         label,
			CallbackData: "sched_day:" + day.Day.Format("2006-01-02"),
		}})
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "📅 Выберите день:",
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
}

// HandleMyBookings обрабатывает команду /mybookings
func (h *Handlers) HandleMyBookings(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	client, err := h.clientService.GetByTelegramID(ctx, update.Message.From.ID)
	if err != nil || client == nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Сначала нажмите /start, чтобы зарегистрироваться.",
		})
		return
	}

	reservations, err := h.bookingService.ListClientReservations(ctx, client.ID)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Сервис временно недоступен. Попробуйте позже.",
		})
		return
	}

	if len(reservations) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "У вас пока нет записей. Выбрать тренировку: /schedule",
		})
		return
	}

	var rows [][]models.InlineKeyboardButton
	text := "📅 Ваши записи:\n"
	for _, res := range reservations {
		text += "\n• " + format.ReservationLine(res)
		rows = append(rows, []models.InlineKeyboardButton{
			{
				Text:         "❌ Отменить " + format.ReservationLine(res),
				CallbackData: fmt.Sprintf("cancel_res:%d", res.ID),
			},
			{
				Text:         "💬 Комментарий",
				CallbackData: fmt.Sprintf("comment_res:%d", res.ID),
			},
		})
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        text,
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()-]{6,18}$`)

// HandleTextMessage обрабатывает свободный текст в многошаговых диалогах
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	switch h.stateManager.GetState(update.Message.From.ID) {
	case state.StateAwaitingPhone:
		h.handlePhoneInput(ctx, b, update)
	case state.StateAwaitingComment:
		h.handleCommentInput(ctx, b, update)
	}
}

func (h *Handlers) handlePhoneInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	phone := update.Message.Text
	if !phonePattern.MatchString(phone) {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "🤔 Не похоже на номер телефона. Попробуйте ещё раз или /cancel.",
		})
		return
	}

	client, err := h.clientService.GetByTelegramID(ctx, telegramID)
	if err != nil || client == nil {
		h.stateManager.Clear(telegramID)
		return
	}

	if err := h.clientService.SetPhone(ctx, client.ID, phone); err != nil {
		h.logger.Error("Failed to save client phone",
			zap.Error(err),
			zap.Int64("client_id", client.ID),
		)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Не получилось сохранить номер. Попробуйте позже.",
		})
		return
	}

	h.stateManager.Clear(telegramID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Спасибо! Номер сохранён. Выбрать тренировку: /schedule",
	})
}

func (h *Handlers) handleCommentInput(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	value, ok := h.stateManager.GetData(telegramID, state.DataKeyReservationID)
	reservationID, isID := value.(int64)
	if !ok || !isID {
		h.stateManager.Clear(telegramID)
		return
	}

	client, err := h.clientService.GetByTelegramID(ctx, telegramID)
	if err != nil || client == nil {
		h.stateManager.Clear(telegramID)
		return
	}

	_, err = h.bookingService.SetReservationNote(ctx, reservationID, client.ID, update.Message.Text)
	if err != nil {
		text := "❌ Не получилось сохранить комментарий. Попробуйте позже."
		if errors.Is(err, service.ErrReservationNotFound) || errors.Is(err, service.ErrNotOwner) {
			text = "❌ Запись не найдена. Ваши записи: /mybookings"
		}
		h.stateManager.Clear(telegramID)
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   text,
		})
		return
	}

	h.stateManager.Clear(telegramID)
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   "✅ Комментарий сохранён. Тренер увидит его в записи.",
	})
}

// HandleJournal показывает последние записи журнала уведомлений.
// Работает только в админ-чате, для остальных команда молчит.
func (h *Handlers) HandleJournal(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || h.adminChatID == 0 || update.Message.Chat.ID != h.adminChatID {
		return
	}

	items, err := h.notificationService.Recent(ctx, 10)
	if err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "❌ Журнал временно недоступен.",
		})
		return
	}

	if len(items) == 0 {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text:   "Журнал пуст.",
		})
		return
	}

	text := "📒 Последние события:"
	for _, n := range items {
		text += fmt.Sprintf("\n\n%s\n%s", n.CreatedAt.Format("02.01.2006 15:04"), n.Message)
	}

	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
}
