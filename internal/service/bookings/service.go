package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/bookings/models"
)

// Service сервис для чтения и отмены бронирований
// Создание идёт через usecase create_booking
type Service struct {
	bookingRepo  BookingRepository
	salonRepo    SalonRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
// cache может быть nil - сброс кеша тогда не выполняется
func NewService(
	bookingRepo BookingRepository,
	salonRepo SalonRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		salonRepo:    salonRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID
// Клиент видит только свои бронирования, владелец - бронирования своего салона
func (s *Service) GetByID(ctx context.Context, id int64, actorID int64, actorRole domain.Role) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for actor=%d", id, actorID)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkBookingAccess(ctx, booking, actorID, actorRole); err != nil {
		s.logger.Warn("GetByID: access denied for actor=%d to booking id=%d", actorID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking, s.timeProvider.Now()), nil
}

// GetUserBookings получает историю бронирований клиента, новые первыми
// Отменённые включаются по флагу IncludeDeleted
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for client=%d, includeDeleted=%t",
		req.ClientID, req.IncludeDeleted)

	if req.ClientID <= 0 {
		return nil, fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.ClientID, req.IncludeDeleted)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for client=%d: %v", req.ClientID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for client=%d", len(bookings), req.ClientID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// GetSalonBookings получает бронирования салона с фильтрацией
// по периоду [From, To), типу и включению отменённых
// Доступно только владельцу салона
func (s *Service) GetSalonBookings(ctx context.Context, req *models.GetSalonBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetSalonBookings: fetching bookings for salon=%d, actor=%d", req.SalonID, req.ActorID)

	if err := s.checkOwnerAccess(ctx, req.SalonID, req.ActorID, req.ActorRole); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetSalonBookings: invalid filter for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	if filter.From != nil && filter.To != nil && !filter.From.Before(*filter.To) {
		s.logger.Warn("GetSalonBookings: invalid period for salon=%d", req.SalonID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetBySalonWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetSalonBookings: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: GetSalonBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetSalonBookings: successfully fetched %d bookings for salon=%d", len(bookings), req.SalonID)
	return models.FromDomainBookingList(bookings, s.timeProvider.Now()), nil
}

// Cancel отменяет бронирование (мягкое удаление)
// Клиент отменяет своё предстоящее бронирование, владелец - любое
// активное бронирование или блок своего салона
func (s *Service) Cancel(ctx context.Context, bookingID int64, actorID int64, actorRole domain.Role) error {
	s.logger.Info("Cancel: cancelling booking id=%d by actor=%d", bookingID, actorID)

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := s.checkBookingAccess(ctx, booking, actorID, actorRole); err != nil {
		s.logger.Warn("Cancel: access denied for actor=%d to booking id=%d", actorID, bookingID)
		return err
	}

	now := s.timeProvider.Now()

	// Отменённое или завершённое бронирование отменить нельзя
	if booking.Lifecycle.IsDeleted() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		return ErrCannotCancel
	}
	if !booking.EndsAt.After(now) {
		s.logger.Warn("Cancel: booking id=%d is already completed", bookingID)
		return ErrCannotCancel
	}

	if err := s.bookingRepo.SoftDelete(ctx, bookingID, actorID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			// Гонка с параллельной отменой
			s.logger.Warn("Cancel: booking id=%d already cancelled concurrently", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)

	// Сбрасываем кеш слотов; ошибки не фатальны
	s.invalidateCache(ctx, booking)

	return nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("getBooking: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("getBooking: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: getBooking - repository error: %v", ErrInternal, err)
	}
	return booking, nil
}

// checkBookingAccess проверяет доступ к бронированию:
// клиент бронирования или владелец салона
func (s *Service) checkBookingAccess(ctx context.Context, booking *domain.Booking, actorID int64, actorRole domain.Role) error {
	if booking.ClientID != nil && *booking.ClientID == actorID {
		return nil
	}

	if err := s.checkOwnerAccess(ctx, booking.SalonID, actorID, actorRole); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkOwnerAccess проверяет, что актор - владелец салона
func (s *Service) checkOwnerAccess(ctx context.Context, salonID int64, actorID int64, actorRole domain.Role) error {
	if actorRole != domain.RoleOwner {
		s.logger.Warn("checkOwnerAccess: actor=%d has role %s, owner required", actorID, actorRole)
		return ErrAccessDenied
	}

	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("checkOwnerAccess: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("checkOwnerAccess: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: checkOwnerAccess - failed to get salon: %v", ErrInternal, err)
	}

	if salon.OwnerID != actorID {
		s.logger.Warn("checkOwnerAccess: actor=%d is not the owner of salon=%d", actorID, salonID)
		return ErrAccessDenied
	}

	return nil
}

func (s *Service) invalidateCache(ctx context.Context, booking *domain.Booking) {
	if s.cache == nil {
		return
	}

	salon, err := s.salonRepo.GetByID(ctx, booking.SalonID)
	loc := time.UTC
	if err == nil {
		loc = salon.Location()
	}

	day := booking.StartsAt.In(loc)
	last := booking.EndsAt.In(loc).Add(-time.Nanosecond)
	for !day.After(last) {
		dateKey := day.Format(domain.DateFormat)
		if err := s.cache.Invalidate(ctx, booking.SalonID, dateKey); err != nil {
			s.logger.Warn("invalidateCache: failed for salon=%d, date=%s: %v", booking.SalonID, dateKey, err)
		}
		day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
	}
}
