package service

import (
	"context"
	"fmt"
	"time"

	"github.com/velostudio/booking_bot/internal/metrics"
	"github.com/velostudio/booking_bot/internal/model"
	"go.uber.org/zap"
)

// BookingResult - результат успешного бронирования.
type BookingResult struct {
	Slot        *model.Slot        // слот на момент загрузки
	Seat        *model.Reservation // выбранное место до захвата
	Reservation *model.Reservation // строка после захвата, как записана в БД
}

// BookingService - единственная точка входа для бронирования и отмены.
// Сам состояния не хранит: каждый запрос обслуживается независимо,
// единственный конкурентный ресурс - статус места, и он защищён
// условным UPDATE в хранилище.
type BookingService struct {
	slots        SlotStore
	reservations ReservationStore
	cutoff       time.Duration
	horizonDays  int
	logger       *zap.Logger
}

func NewBookingService(
	slots SlotStore,
	reservations ReservationStore,
	cutoff time.Duration,
	horizonDays int,
	logger *zap.Logger,
) *BookingService {
	if horizonDays <= 0 {
		horizonDays = 21
	}
	if cutoff < 0 {
		cutoff = 0
	}
	return &BookingService{
		slots:        slots,
		reservations: reservations,
		cutoff:       cutoff,
		horizonDays:  horizonDays,
		logger:       logger,
	}
}

// Cutoff возвращает настроенную отсечку записи.
func (s *BookingService) Cutoff() time.Duration {
	return s.cutoff
}

// BookSlot записывает клиента на слот: проверяет повторную запись,
// выбирает свободное место и атомарно занимает его. Захват обусловлен
// тем, что место всё ещё свободно, поэтому при гонке проигравший
// получает ErrBookingFailed, а не тихий успех.
func (s *BookingService) BookSlot(ctx context.Context, slotID, clientID int64, clientName, source string) (*BookingResult, error) {
	slot, seats, err := s.slots.GetWithReservations(ctx, slotID)
	if err != nil {
		s.logger.Error("Failed to load slot",
			zap.Error(err),
			zap.Int64("slot_id", slotID),
		)
		metrics.BookingsTotal.WithLabelValues("slot_not_found").Inc()
		return nil, ErrSlotNotFound
	}
	if slot == nil {
		metrics.BookingsTotal.WithLabelValues("slot_not_found").Inc()
		return nil, ErrSlotNotFound
	}

	future, err := s.reservations.ListFutureByClient(ctx, clientID, time.Now())
	if err != nil {
		s.logger.Error("Failed to load client reservations",
			zap.Error(err),
			zap.Int64("client_id", clientID),
		)
		metrics.BookingsTotal.WithLabelValues("store_unavailable").Inc()
		return nil, ErrStoreUnavailable
	}

	if HasActiveBooking(future, slotID) {
		metrics.BookingsTotal.WithLabelValues("already_booked").Inc()
		return nil, ErrAlreadyBooked
	}

	seat, ok := SelectSeat(seats)
	if !ok {
		metrics.BookingsTotal.WithLabelValues("no_free_place").Inc()
		return nil, ErrNoFreePlace
	}

	claimed, err := s.reservations.Claim(ctx, seat.ID, clientID, clientName, source)
	if err != nil {
		s.logger.Error("Failed to claim reservation",
			zap.Error(err),
			zap.Int64("reservation_id", seat.ID),
			zap.Int64("client_id", clientID),
		)
		metrics.BookingsTotal.WithLabelValues("failed").Inc()
		return nil, ErrBookingFailed
	}
	if claimed == nil {
		// Место перехватил параллельный запрос между выбором и захватом
		s.logger.Warn("Lost claim race for reservation",
			zap.Int64("reservation_id", seat.ID),
			zap.Int64("slot_id", slotID),
			zap.Int64("client_id", clientID),
		)
		metrics.BookingsTotal.WithLabelValues("failed").Inc()
		return nil, ErrBookingFailed
	}

	s.logger.Info("Slot booked",
		zap.Int64("slot_id", slotID),
		zap.Int64("reservation_id", claimed.ID),
		zap.Int64("client_id", clientID),
		zap.String("source", source),
	)
	metrics.BookingsTotal.WithLabelValues("success").Inc()

	return &BookingResult{Slot: slot, Seat: seat, Reservation: claimed}, nil
}

// CancelReservation отменяет запись клиента и возвращает место в продажу.
// Отменить может только владелец записи. Счётчик свободных мест нигде
// не хранится и пересчитывается при чтении, поэтому освобождение - это
// одно обновление статуса.
func (s *BookingService) CancelReservation(ctx context.Context, reservationID, clientID int64, source string) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("Failed to load reservation",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		metrics.CancellationsTotal.WithLabelValues("store_unavailable").Inc()
		return nil, ErrStoreUnavailable
	}
	if res == nil {
		metrics.CancellationsTotal.WithLabelValues("not_found").Inc()
		return nil, ErrReservationNotFound
	}

	if res.ClientID == nil || *res.ClientID != clientID {
		metrics.CancellationsTotal.WithLabelValues("not_owner").Inc()
		return nil, ErrNotOwner
	}

	note := fmt.Sprintf("отменено клиентом, источник: %s", source)
	released, err := s.reservations.Release(ctx, reservationID, note)
	if err != nil {
		s.logger.Error("Failed to release reservation",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		metrics.CancellationsTotal.WithLabelValues("failed").Inc()
		return nil, ErrCancelFailed
	}
	if released == nil {
		// Запись уже не в статусе booked
		metrics.CancellationsTotal.WithLabelValues("failed").Inc()
		return nil, ErrCancelFailed
	}

	s.logger.Info("Reservation cancelled",
		zap.Int64("reservation_id", reservationID),
		zap.Int64("client_id", clientID),
		zap.String("source", source),
	)
	metrics.CancellationsTotal.WithLabelValues("success").Inc()

	return released, nil
}

// SetReservationNote сохраняет комментарий клиента к его записи
// (пожелания, нужный станок). Доступно только владельцу записи.
func (s *BookingService) SetReservationNote(ctx context.Context, reservationID, clientID int64, note string) (*model.Reservation, error) {
	res, err := s.reservations.GetByID(ctx, reservationID)
	if err != nil {
		s.logger.Error("Failed to load reservation",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return nil, ErrStoreUnavailable
	}
	if res == nil {
		return nil, ErrReservationNotFound
	}

	if res.ClientID == nil || *res.ClientID != clientID {
		return nil, ErrNotOwner
	}

	updated, err := s.reservations.UpdateNotes(ctx, reservationID, &note, nil)
	if err != nil {
		s.logger.Error("Failed to update reservation notes",
			zap.Error(err),
			zap.Int64("reservation_id", reservationID),
		)
		return nil, ErrStoreUnavailable
	}
	if updated == nil {
		return nil, ErrReservationNotFound
	}

	return updated, nil
}

// ListBookableSlotsBetween загружает слоты окна и применяет фильтр
// доступности. При сбое хранилища возвращает пустой список: вызывающая
// сторона не отличает "нет слотов" от "не загрузилось", это осознанный
// компромисс, сбой остаётся в логах.
func (s *BookingService) ListBookableSlotsBetween(ctx context.Context, from, to, now time.Time) []*model.Slot {
	if now.IsZero() {
		now = time.Now()
	}

	slots, err := s.slots.ListAvailable(ctx, from, to)
	if err != nil {
		s.logger.Error("Failed to list available slots",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil
	}

	return FilterBookable(slots, now, s.cutoff)
}

// ListBookableSlotsForHorizon показывает доступные слоты на horizonDays
// вперёд. Если отсечка съедает всё окно, оно расширяется на день.
func (s *BookingService) ListBookableSlotsForHorizon(ctx context.Context, now time.Time) []*model.Slot {
	if now.IsZero() {
		now = time.Now()
	}

	end := now.AddDate(0, 0, s.horizonDays)
	if !now.Add(s.cutoff).Before(end) {
		end = end.AddDate(0, 0, 1)
	}

	return s.ListBookableSlotsBetween(ctx, now, end, now)
}

// GetSlot получает слот по ID. Возвращает nil, nil если слот не найден.
func (s *BookingService) GetSlot(ctx context.Context, slotID int64) (*model.Slot, error) {
	slot, _, err := s.slots.GetWithReservations(ctx, slotID)
	if err != nil {
		s.logger.Error("Failed to load slot",
			zap.Error(err),
			zap.Int64("slot_id", slotID),
		)
		return nil, ErrStoreUnavailable
	}
	return slot, nil
}

// ListClientReservations получает будущие записи клиента для отображения.
func (s *BookingService) ListClientReservations(ctx context.Context, clientID int64) ([]*model.Reservation, error) {
	reservations, err := s.reservations.ListFutureByClient(ctx, clientID, time.Now())
	if err != nil {
		s.logger.Error("Failed to list client reservations",
			zap.Error(err),
			zap.Int64("client_id", clientID),
		)
		return nil, ErrStoreUnavailable
	}

	active := make([]*model.Reservation, 0, len(reservations))
	for _, res := range reservations {
		if res.Active() {
			active = append(active, res)
		}
	}
	return active, nil
}
