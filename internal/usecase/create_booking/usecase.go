package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/booking"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/service"
	whRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/workinghours"
)

// UseCase use case создания бронирования
//
// Конкурентные бронирования на один слот разрешает exclusion constraint
// хранилища: ровно один insert проходит, остальные получают ErrSlotTaken
// без ретраев. Предварительная проверка пересечений - advisory, для
// понятной ошибки без обращения к constraint
type UseCase struct {
	bookingRepo  BookingRepository
	whRepo       WorkingHoursRepository
	salonRepo    SalonRepository
	serviceRepo  ServiceRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// cache может быть nil - сброс кеша тогда не выполняется
func NewUseCase(
	bookingRepo BookingRepository,
	whRepo WorkingHoursRepository,
	salonRepo SalonRepository,
	serviceRepo ServiceRepository,
	cache AvailabilityCache,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		whRepo:       whRepo,
		salonRepo:    salonRepo,
		serviceRepo:  serviceRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%d, salon=%d, type=%s, startsAt=%s",
		req.ActorID, req.SalonID, req.Type, req.StartsAt.Format(time.RFC3339))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("CreateBooking: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Начало не в прошлом
	if req.StartsAt.Before(now) {
		uc.logger.Warn("CreateBooking: startsAt %s is in the past", req.StartsAt.Format(time.RFC3339))
		return nil, ErrStartInPast
	}

	// 5. Собираем бронирование в зависимости от типа
	booking := &domain.Booking{
		SalonID:  req.SalonID,
		Type:     req.Type,
		StartsAt: req.StartsAt.UTC(),
		Note:     req.Note,
	}

	loc := salon.Location()

	switch req.Type {
	case domain.TypeOnline:
		if err := uc.prepareOnline(ctx, req, salon, booking, loc); err != nil {
			return nil, err
		}
	case domain.TypeManual:
		// Ручной блок создаёт только владелец салона; рабочие часы
		// и сетка слотов на него не распространяются
		if req.ActorRole != domain.RoleOwner || salon.OwnerID != req.ActorID {
			uc.logger.Warn("CreateBooking: actor id=%d is not the owner of salon id=%d",
				req.ActorID, req.SalonID)
			return nil, ErrAccessDenied
		}
		if err := validateManualSlot(req.StartsAt, *req.EndsAt, loc); err != nil {
			uc.logger.Warn("CreateBooking: manual slot validation failed: %v", err)
			return nil, err
		}
		booking.EndsAt = req.EndsAt.UTC()
	}

	// 6. Advisory-проверка пересечений до insert
	occupied, err := uc.bookingRepo.OccupiedIntervals(ctx, req.SalonID, booking.StartsAt, booking.EndsAt)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get occupied intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied intervals: %v", ErrInternal, err)
	}
	if hasOverlap(booking.Interval(), occupied) {
		uc.logger.Warn("CreateBooking: slot [%s, %s) is already taken",
			booking.StartsAt.Format(time.RFC3339), booking.EndsAt.Format(time.RFC3339))
		return nil, ErrSlotTaken
	}

	// 7. Создаем бронирование; гонку разрешает constraint хранилища
	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateBooking: slot [%s, %s) taken by concurrent booking",
				booking.StartsAt.Format(time.RFC3339), booking.EndsAt.Format(time.RFC3339))
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateBooking: failed to create booking: %v", err)
		return nil, fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	// 8. Сбрасываем кеш слотов на затронутые даты; ошибки не фатальны
	if uc.cache != nil {
		for _, dateKey := range dateKeys(created.StartsAt, created.EndsAt, loc) {
			if err := uc.cache.Invalidate(ctx, created.SalonID, dateKey); err != nil {
				uc.logger.Warn("CreateBooking: cache invalidate failed for date=%s: %v", dateKey, err)
			}
		}
	}

	return &Response{
		ID:        created.ID,
		SalonID:   created.SalonID,
		Type:      created.Type,
		StartsAt:  created.StartsAt,
		EndsAt:    created.EndsAt,
		ServiceID: created.ServiceID,
		ClientID:  created.ClientID,
		Snapshot:  created.Snapshot,
		Note:      created.Note,
		Status:    created.StatusAt(now),
		CreatedAt: created.CreatedAt,
	}, nil
}

// prepareOnline дополняет онлайн-бронирование: услуга, снапшот,
// вычисленный конец и проверка рабочего окна
func (uc *UseCase) prepareOnline(
	ctx context.Context,
	req *Request,
	salon *domain.Salon,
	booking *domain.Booking,
	loc *time.Location,
) error {
	// Услуга должна существовать, быть активной и принадлежать салону
	service, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID, true)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", *req.ServiceID)
			return ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", *req.ServiceID, err)
		return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != salon.ID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to salon id=%d, not id=%d",
			*req.ServiceID, service.SalonID, req.SalonID)
		return ErrServiceNotFound
	}

	booking.ServiceID = &service.ID
	booking.ClientID = &req.ActorID
	booking.Snapshot = service.MakeSnapshot()
	booking.EndsAt = booking.StartsAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	// Окно рабочих часов на день начала (в зоне салона)
	weekday := booking.StartsAt.In(loc).Weekday()
	window, err := uc.whRepo.Window(ctx, req.SalonID, weekday)
	if err != nil {
		if errors.Is(err, whRepo.ErrWindowNotFound) {
			uc.logger.Warn("CreateBooking: salon id=%d is closed on %s", req.SalonID, weekday)
			return ErrSalonClosed
		}
		uc.logger.Error("CreateBooking: failed to get working hours: %v", err)
		return fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	if err := validateSlotInWindow(window, booking.StartsAt, booking.EndsAt, loc); err != nil {
		uc.logger.Warn("CreateBooking: slot validation failed: %v", err)
		return err
	}

	return nil
}
