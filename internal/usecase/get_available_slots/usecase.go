package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/service"
	whRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/workinghours"
	"github.com/m04kA/Salon-BookingService/pkg/types"
)

// UseCase use case для расчёта доступных слотов для бронирования
//
// Расчёт - чистая функция от рабочих часов, занятых интервалов и
// длительности услуги; кеш только ускоряет повторные чтения
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
// cache может быть nil - расчёт тогда всегда идёт в хранилище
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

// Execute выполняет use case расчёта доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: salon=%d, service=%d, date=%s",
		req.SalonID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем салон
	salon, err := uc.salonRepo.GetByID(ctx, req.SalonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			uc.logger.Warn("GetAvailableSlots: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Получаем услугу (только активную) и проверяем принадлежность салону
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID, true)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.SalonID != salon.ID {
		uc.logger.Warn("GetAvailableSlots: service id=%d belongs to salon id=%d, not id=%d",
			req.ServiceID, service.SalonID, req.SalonID)
		return nil, ErrServiceNotFound
	}

	// 5. Пробуем кеш; ошибки кеша не фатальны
	dateKey := req.Date.Format(domain.DateFormat)
	if uc.cache != nil {
		var cached Response
		hit, err := uc.cache.Get(ctx, req.SalonID, req.ServiceID, dateKey, &cached)
		if err != nil {
			uc.logger.Warn("GetAvailableSlots: cache get failed: %v", err)
		}
		if hit {
			uc.logger.Info("GetAvailableSlots: cache hit for salon=%d, service=%d, date=%s",
				req.SalonID, req.ServiceID, dateKey)
			return &cached, nil
		}
	}

	loc := salon.Location()

	// 6. Дата в прошлом - пустой список, не ошибка
	if isDateInPast(req.Date, now, loc) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past", dateKey)
		return uc.emptyResponse(req), nil
	}

	// 7. Получаем окно рабочих часов на день недели
	weekday := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc).Weekday()
	window, err := uc.whRepo.Window(ctx, req.SalonID, weekday)
	if err != nil {
		if errors.Is(err, whRepo.ErrWindowNotFound) {
			// Нет записи на день - салон закрыт
			uc.logger.Info("GetAvailableSlots: salon id=%d is closed on %s", req.SalonID, weekday)
			return uc.emptyResponse(req), nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to get working hours: %v", ErrInternal, err)
	}

	// 8. Генерируем кандидатов с фиксированным шагом
	candidates, err := generateCandidates(window, service.DurationMinutes, req.Date, loc)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate candidates: %v", err)
		return nil, fmt.Errorf("%w: failed to generate candidates: %v", ErrInternal, err)
	}

	// 9. Получаем занятые интервалы за сутки
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	occupied, err := uc.bookingRepo.OccupiedIntervals(ctx, req.SalonID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get occupied intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get occupied intervals: %v", ErrInternal, err)
	}

	// 10. Отфильтровываем пересечения и прошедшие слоты
	free := filterOccupied(candidates, service.DurationMinutes, occupied)
	if isSameDay(req.Date, now, loc) {
		free = filterPast(free, now)
	}

	// 11. Собираем ответ
	resp := uc.emptyResponse(req)
	for _, start := range free {
		resp.Slots = append(resp.Slots, Slot{
			StartsAt:        start.UTC(),
			StartTime:       types.NewTimeString(start),
			DurationMinutes: service.DurationMinutes,
		})
	}

	uc.logger.Info("GetAvailableSlots: %d slots available for salon=%d, service=%d, date=%s",
		len(resp.Slots), req.SalonID, req.ServiceID, dateKey)

	// 12. Кладем ответ в кеш; ошибки кеша не фатальны
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, req.SalonID, req.ServiceID, dateKey, resp); err != nil {
			uc.logger.Warn("GetAvailableSlots: cache set failed: %v", err)
		}
	}

	return resp, nil
}

func (uc *UseCase) emptyResponse(req *Request) *Response {
	return &Response{
		Date:      req.Date,
		SalonID:   req.SalonID,
		ServiceID: req.ServiceID,
		Slots:     []Slot{},
	}
}
