package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/velostudio/booking_bot/internal/controller/state"
	"github.com/velostudio/booking_bot/internal/service"
	"go.uber.org/zap"
)

// SourceTag - метка источника для записей и уведомлений, созданных ботом.
const SourceTag = "telegram"

type Handlers struct {
	clientService       *service.ClientService
	bookingService      *service.BookingService
	notificationService *service.NotificationService
	stateManager        *state.Manager
	adminChatID         int64
	logger              *zap.Logger
}

func NewHandlers(
	clientService *service.ClientService,
	bookingService *service.BookingService,
	notificationService *service.NotificationService,
	stateManager *state.Manager,
	adminChatID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		clientService:       clientService,
		bookingService:      bookingService,
		notificationService: notificationService,
		stateManager:        stateManager,
		adminChatID:         adminChatID,
		logger:              logger,
	}
}

// AdminSenders возвращает отправителей для best-effort рассылки
// уведомлений студии. Пустой список, если админ-чат не настроен.
func (h *Handlers) AdminSenders(b *bot.Bot) []service.MessageSender {
	if h.adminChatID == 0 {
		return nil
	}
	chatID := h.adminChatID
	return []service.MessageSender{
		func(ctx context.Context, text string) error {
			_, err := b.SendMessage(ctx, &bot.SendMessageParams{
				ChatID: chatID,
				Text:   text,
			})
			return err
		},
	}
}
