package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/velostudio/booking_bot/internal/model"
	"go.uber.org/zap"
)

type memNotificationStore struct {
	inserted []*model.Notification
	failWith error
}

func (s *memNotificationStore) Insert(ctx context.Context, n *model.Notification) error {
	if s.failWith != nil {
		return s.failWith
	}
	n.ID = int64(len(s.inserted) + 1)
	n.CreatedAt = time.Now()
	s.inserted = append(s.inserted, n)
	return nil
}

func (s *memNotificationStore) ListRecent(ctx context.Context, limit int) ([]*model.Notification, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	var out []*model.Notification
	for i := len(s.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.inserted[i])
	}
	return out, nil
}

func strPtr(v string) *string { return &v }

func TestRecordBookingCreatedPersistsAndDelivers(t *testing.T) {
	store := &memNotificationStore{}
	svc := NewNotificationService(store, zap.NewNop())

	delivered := make([]string, 0, 2)
	sender := func(ctx context.Context, text string) error {
		delivered = append(delivered, text)
		return nil
	}

	slotDate := day(2024, 3, 1)
	n := &model.Notification{
		ClientName: strPtr("Анна Петрова"),
		SlotDate:   &slotDate,
		SlotTime:   strPtr("19:00"),
	}

	stored, err := svc.RecordBookingCreated(context.Background(), n, sender, sender)
	require.NoError(t, err)

	assert.Equal(t, model.NotificationEventBookingCreated, stored.Event)
	assert.NotZero(t, stored.ID)
	assert.NotEqual(t, "", stored.PublicID.String())
	require.Len(t, store.inserted, 1)
	require.Len(t, delivered, 2)
	assert.Equal(t, stored.Message, delivered[0])
}

func TestRecordSurvivesAllSendersFailing(t *testing.T) {
	store := &memNotificationStore{}
	svc := NewNotificationService(store, zap.NewNop())

	failing := func(ctx context.Context, text string) error {
		return errors.New("chat unreachable")
	}

	stored, err := svc.RecordBookingCancelled(context.Background(), &model.Notification{}, failing, failing, nil)

	// Сбой каждой доставки не трогает ни сохранённую запись, ни исход вызова
	require.NoError(t, err)
	assert.NotZero(t, stored.ID)
	require.Len(t, store.inserted, 1)
}

func TestRecordInsertFailurePropagates(t *testing.T) {
	store := &memNotificationStore{failWith: errors.New("connection refused")}
	svc := NewNotificationService(store, zap.NewNop())

	called := false
	sender := func(ctx context.Context, text string) error {
		called = true
		return nil
	}

	_, err := svc.RecordClientCreated(context.Background(), &model.Notification{}, sender)

	require.Error(t, err)
	// Без сохранённой записи рассылки нет
	assert.False(t, called)
}

func TestRecordKeepsExplicitMessage(t *testing.T) {
	store := &memNotificationStore{}
	svc := NewNotificationService(store, zap.NewNop())

	n := &model.Notification{Message: "произвольный текст от админки"}
	stored, err := svc.RecordBookingCreated(context.Background(), n)

	require.NoError(t, err)
	assert.Equal(t, "произвольный текст от админки", stored.Message)
}

func TestRenderMessageBookingCreated(t *testing.T) {
	slotDate := day(2024, 3, 1)
	n := &model.Notification{
		Event:          model.NotificationEventBookingCreated,
		ClientName:     strPtr("Анна Петрова"),
		SlotDate:       &slotDate,
		SlotTime:       strPtr("19:00"),
		SlotLabel:      strPtr("Вечерняя"),
		SeatLabel:      strPtr("№12"),
		EquipmentLabel: strPtr("B3"),
		Instructor:     strPtr("Мария"),
		Source:         strPtr("telegram"),
	}

	expected := "✅ Новая запись!\n\n" +
		"👤 Клиент: Анна Петрова\n" +
		"📅 Дата: 01.03.2024\n" +
		"🕐 Время: 19:00\n" +
		"🚴 Занятие: Вечерняя\n" +
		"📍 Место: №12\n" +
		"🚲 Станок: B3\n" +
		"🎓 Тренер: Мария\n" +
		"📲 Источник: telegram"

	assert.Equal(t, expected, RenderMessage(n))
}

func TestRenderMessagePlaceholders(t *testing.T) {
	// Дата и время отсутствуют: вместо пропуска строк - явные плейсхолдеры,
	// опциональные строки контекста не добавляются вовсе
	n := &model.Notification{
		Event:      model.NotificationEventBookingCancelled,
		ClientName: strPtr("Анна"),
	}

	expected := "❌ Запись отменена\n\n" +
		"👤 Клиент: Анна\n" +
		"📅 Дата: дата не указана\n" +
		"🕐 Время: время не указано"

	assert.Equal(t, expected, RenderMessage(n))
}

func TestRenderMessageClientCreated(t *testing.T) {
	n := &model.Notification{
		Event:      model.NotificationEventClientCreated,
		ClientName: strPtr("Анна"),
		Source:     strPtr("telegram"),
	}

	assert.Equal(t, "🆕 Новый клиент: Анна\n📲 Источник: telegram", RenderMessage(n))
}

func TestRenderMessageEmptyTimeTreatedAsMissing(t *testing.T) {
	n := &model.Notification{
		Event:    model.NotificationEventBookingCreated,
		SlotTime: strPtr("   "),
	}

	assert.Contains(t, RenderMessage(n), "время не указано")
}

func TestRecentNewestFirst(t *testing.T) {
	store := &memNotificationStore{}
	svc := NewNotificationService(store, zap.NewNop())

	for _, name := range []string{"Анна", "Борис", "Вера"} {
		_, err := svc.RecordClientCreated(context.Background(), &model.Notification{ClientName: strPtr(name)})
		require.NoError(t, err)
	}

	recent, err := svc.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Вера", *recent[0].ClientName)
	assert.Equal(t, "Борис", *recent[1].ClientName)
}

func TestRecentStoreFailure(t *testing.T) {
	store := &memNotificationStore{failWith: errors.New("connection reset")}
	svc := NewNotificationService(store, zap.NewNop())

	_, err := svc.Recent(context.Background(), 5)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
