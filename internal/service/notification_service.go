package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/velostudio/booking_bot/internal/metrics"
	"github.com/velostudio/booking_bot/internal/model"
	"go.uber.org/zap"
)

// MessageSender доставляет готовый текст уведомления. Колбэки передаёт
// презентационный слой (бот, админка), доставка может падать.
type MessageSender func(ctx context.Context, text string) error

// NotificationService сохраняет запись о событии и рассылает её
// best-effort. Источник истины - сохранённая запись: сбой любой
// доставки логируется и никогда не откатывает запись и не портит
// исход операции, которая событие породила.
type NotificationService struct {
	notifications NotificationStore
	logger        *zap.Logger
}

func NewNotificationService(notifications NotificationStore, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		logger:        logger,
	}
}

// RecordBookingCreated фиксирует создание записи и рассылает уведомление.
func (s *NotificationService) RecordBookingCreated(ctx context.Context, n *model.Notification, senders ...MessageSender) (*model.Notification, error) {
	return s.record(ctx, model.NotificationEventBookingCreated, n, senders)
}

// RecordBookingCancelled фиксирует отмену записи и рассылает уведомление.
func (s *NotificationService) RecordBookingCancelled(ctx context.Context, n *model.Notification, senders ...MessageSender) (*model.Notification, error) {
	return s.record(ctx, model.NotificationEventBookingCancelled, n, senders)
}

// RecordClientCreated фиксирует появление нового клиента.
func (s *NotificationService) RecordClientCreated(ctx context.Context, n *model.Notification, senders ...MessageSender) (*model.Notification, error) {
	return s.record(ctx, model.NotificationEventClientCreated, n, senders)
}

// Recent возвращает последние записи журнала, свежие первыми.
func (s *NotificationService) Recent(ctx context.Context, limit int) ([]*model.Notification, error) {
	items, err := s.notifications.ListRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to list notifications", zap.Error(err))
		return nil, ErrStoreUnavailable
	}
	return items, nil
}

func (s *NotificationService) record(ctx context.Context, event model.NotificationEvent, n *model.Notification, senders []MessageSender) (*model.Notification, error) {
	n.Event = event
	if n.PublicID == uuid.Nil {
		n.PublicID = uuid.New()
	}
	if n.Message == "" {
		n.Message = RenderMessage(n)
	}

	if err := s.notifications.Insert(ctx, n); err != nil {
		s.logger.Error("Failed to insert notification",
			zap.Error(err),
			zap.String("event", string(event)),
		)
		return nil, fmt.Errorf("insert notification: %w", err)
	}

	metrics.NotificationsTotal.WithLabelValues(string(event)).Inc()

	s.logger.Info("Notification recorded",
		zap.Int64("notification_id", n.ID),
		zap.String("public_id", n.PublicID.String()),
		zap.String("event", string(event)),
	)

	s.fanOut(ctx, n, senders)

	return n, nil
}

// fanOut рассылает текст всем отправителям. Каждая ошибка ловится
// и логируется отдельно, запись к этому моменту уже сохранена.
func (s *NotificationService) fanOut(ctx context.Context, n *model.Notification, senders []MessageSender) {
	for i, send := range senders {
		if send == nil {
			continue
		}
		if err := send(ctx, n.Message); err != nil {
			metrics.NotificationDeliveriesTotal.WithLabelValues(string(n.Event), "failed").Inc()
			s.logger.Warn("Notification delivery failed",
				zap.Error(err),
				zap.Int("sender_index", i),
				zap.String("public_id", n.PublicID.String()),
			)
			continue
		}
		metrics.NotificationDeliveriesTotal.WithLabelValues(string(n.Event), "sent").Inc()
	}
}
