package callbacks

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/velostudio/booking_bot/internal/controller/state"
	"github.com/velostudio/booking_bot/internal/service"
	"go.uber.org/zap"
)

// Префиксы callback-данных inline-кнопок
const (
	prefixDay        = "sched_day:"
	prefixBook       = "book_slot:"
	prefixCancel     = "cancel_res:"
	prefixComment    = "comment_res:"
	actionBackToDays = "back_schedule"
)

type Handler struct {
	clientService       *service.ClientService
	bookingService      *service.BookingService
	notificationService *service.NotificationService
	stateManager        *state.Manager
	adminSenders        func(b *bot.Bot) []service.MessageSender
	showSchedule        func(ctx context.Context, b *bot.Bot, chatID int64)
	logger              *zap.Logger
}

func NewHandler(
	clientService *service.ClientService,
	bookingService *service.BookingService,
	notificationService *service.NotificationService,
	stateManager *state.Manager,
	adminSenders func(b *bot.Bot) []service.MessageSender,
	showSchedule func(ctx context.Context, b *bot.Bot, chatID int64),
	logger *zap.Logger,
) *Handler {
	return &Handler{
		clientService:       clientService,
		bookingService:      bookingService,
		notificationService: notificationService,
		stateManager:        stateManager,
		adminSenders:        adminSenders,
		showSchedule:        showSchedule,
		logger:              logger,
	}
}

// HandleCallbackQuery маршрутизирует нажатия inline-кнопок по префиксу
func (h *Handler) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	data := callback.Data

	switch {
	case strings.HasPrefix(data, prefixDay):
		h.HandleDay(ctx, b, callback)
	case strings.HasPrefix(data, prefixBook):
		h.HandleBook(ctx, b, callback)
	case strings.HasPrefix(data, prefixCancel):
		h.HandleCancel(ctx, b, callback)
	case strings.HasPrefix(data, prefixComment):
		h.HandleComment(ctx, b, callback)
	case data == actionBackToDays:
		msg := messageFromCallback(callback)
		answerCallback(ctx, b, callback.ID, "")
		if msg != nil {
			h.showSchedule(ctx, b, msg.Chat.ID)
		}
	default:
		h.logger.Warn("Unknown callback data", zap.String("data", data))
		answerCallback(ctx, b, callback.ID, "")
	}
}
