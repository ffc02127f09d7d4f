package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	serviceRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/service"
	"github.com/m04kA/Salon-BookingService/internal/service/catalog/models"
)

// Service сервис каталога салона: услуги и рабочие часы
type Service struct {
	serviceRepo  ServiceRepository
	whRepo       WorkingHoursRepository
	salonRepo    SalonRepository
	cache        AvailabilityCache
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
// cache может быть nil - сброс кеша тогда не выполняется
func NewService(
	serviceRepo ServiceRepository,
	whRepo WorkingHoursRepository,
	salonRepo SalonRepository,
	cache AvailabilityCache,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		whRepo:       whRepo,
		salonRepo:    salonRepo,
		cache:        cache,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// ListServices возвращает активные услуги салона (публичная операция)
func (s *Service) ListServices(ctx context.Context, salonID int64) (*models.ServiceListResponse, error) {
	s.logger.Info("ListServices: fetching services for salon=%d", salonID)

	if _, err := s.getSalon(ctx, salonID); err != nil {
		return nil, err
	}

	services, err := s.serviceRepo.GetBySalon(ctx, salonID, false)
	if err != nil {
		s.logger.Error("ListServices: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListServices: successfully fetched %d services for salon=%d", len(services), salonID)
	return models.FromDomainServiceList(services), nil
}

// CreateService создает услугу салона
// Доступно только владельцу салона
func (s *Service) CreateService(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("CreateService: creating service %q for salon=%d by actor=%d", req.Name, req.SalonID, req.ActorID)

	if err := s.checkOwnerAccess(ctx, req.SalonID, req.ActorID, req.ActorRole); err != nil {
		return nil, err
	}

	svc := &domain.Service{
		SalonID:         req.SalonID,
		Name:            req.Name,
		DurationMinutes: req.DurationMinutes,
		PriceUnits:      req.PriceUnits,
	}
	if err := svc.Validate(); err != nil {
		s.logger.Warn("CreateService: validation failed for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("CreateService: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: CreateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateService: successfully created service id=%d for salon=%d", created.ID, req.SalonID)
	return models.FromDomainService(created), nil
}

// UpdateService обновляет услугу
// Название меняется всегда; длительность и цена - только пока на услугу
// не ссылается ни одно бронирование (история защищена снапшотами, но
// опубликованные условия услуги с бронированиями заморожены)
func (s *Service) UpdateService(ctx context.Context, serviceID int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("UpdateService: updating service id=%d by actor=%d", serviceID, req.ActorID)

	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	if err := s.checkOwnerAccess(ctx, svc.SalonID, req.ActorID, req.ActorRole); err != nil {
		return nil, err
	}

	if req.DurationMinutes != svc.DurationMinutes || req.PriceUnits != svc.PriceUnits {
		hasBookings, err := s.serviceRepo.HasBookings(ctx, serviceID)
		if err != nil {
			s.logger.Error("UpdateService: failed to check bookings for service id=%d: %v", serviceID, err)
			return nil, fmt.Errorf("%w: UpdateService - failed to check bookings: %v", ErrInternal, err)
		}
		if hasBookings {
			s.logger.Warn("UpdateService: service id=%d has bookings, duration/price frozen", serviceID)
			return nil, ErrServiceImmutable
		}
	}

	svc.Name = req.Name
	svc.DurationMinutes = req.DurationMinutes
	svc.PriceUnits = req.PriceUnits
	if err := svc.Validate(); err != nil {
		s.logger.Warn("UpdateService: validation failed for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("UpdateService: service id=%d not found during update", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("UpdateService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: UpdateService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateService: successfully updated service id=%d", serviceID)
	return models.FromDomainService(svc), nil
}

// DeleteService мягко удаляет услугу
// Запись остаётся для истории бронирований со снапшотами
func (s *Service) DeleteService(ctx context.Context, serviceID int64, actorID int64, actorRole domain.Role) error {
	s.logger.Info("DeleteService: deleting service id=%d by actor=%d", serviceID, actorID)

	svc, err := s.getService(ctx, serviceID)
	if err != nil {
		return err
	}

	if err := s.checkOwnerAccess(ctx, svc.SalonID, actorID, actorRole); err != nil {
		return err
	}

	if err := s.serviceRepo.SoftDelete(ctx, serviceID, actorID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("DeleteService: service id=%d not found during delete", serviceID)
			return ErrServiceNotFound
		}
		s.logger.Error("DeleteService: repository error for service id=%d: %v", serviceID, err)
		return fmt.Errorf("%w: DeleteService - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteService: successfully deleted service id=%d", serviceID)
	return nil
}

// GetWorkingHours возвращает расписание недели салона (публичная операция)
// Дни без записи закрыты и в ответ не входят
func (s *Service) GetWorkingHours(ctx context.Context, salonID int64) (*models.WeekScheduleResponse, error) {
	s.logger.Info("GetWorkingHours: fetching schedule for salon=%d", salonID)

	if _, err := s.getSalon(ctx, salonID); err != nil {
		return nil, err
	}

	entries, err := s.whRepo.GetBySalon(ctx, salonID)
	if err != nil {
		s.logger.Error("GetWorkingHours: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetWorkingHours - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeekSchedule(salonID, entries), nil
}

// UpdateWorkingHours полностью заменяет расписание недели салона
// Доступно только владельцу; open < close проверяется здесь, на записи
func (s *Service) UpdateWorkingHours(ctx context.Context, req *models.UpdateWorkingHoursRequest) (*models.WeekScheduleResponse, error) {
	s.logger.Info("UpdateWorkingHours: updating schedule for salon=%d by actor=%d, %d entries",
		req.SalonID, req.ActorID, len(req.Entries))

	salon, err := s.getSalon(ctx, req.SalonID)
	if err != nil {
		return nil, err
	}
	if err := s.checkOwner(salon, req.ActorID, req.ActorRole); err != nil {
		return nil, err
	}

	entries, err := req.ToDomainEntries()
	if err != nil {
		s.logger.Warn("UpdateWorkingHours: invalid entries for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := domain.ValidateWeekSchedule(entries); err != nil {
		s.logger.Warn("UpdateWorkingHours: schedule validation failed for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.whRepo.ReplaceForSalon(ctx, req.SalonID, entries); err != nil {
		s.logger.Error("UpdateWorkingHours: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: UpdateWorkingHours - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateWorkingHours: successfully updated schedule for salon=%d", req.SalonID)

	// Слоты зависят от расписания: сбрасываем кеш на ближайшие даты
	s.invalidateUpcoming(ctx, salon)

	return models.FromDomainWeekSchedule(req.SalonID, entries), nil
}

// Вспомогательные методы

func (s *Service) getSalon(ctx context.Context, salonID int64) (*domain.Salon, error) {
	salon, err := s.salonRepo.GetByID(ctx, salonID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("getSalon: salon id=%d not found", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("getSalon: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: getSalon - repository error: %v", ErrInternal, err)
	}
	return salon, nil
}

func (s *Service) getService(ctx context.Context, serviceID int64) (*domain.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, serviceID, true)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("getService: service id=%d not found", serviceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("getService: repository error for service id=%d: %v", serviceID, err)
		return nil, fmt.Errorf("%w: getService - repository error: %v", ErrInternal, err)
	}
	return svc, nil
}

func (s *Service) checkOwnerAccess(ctx context.Context, salonID int64, actorID int64, actorRole domain.Role) error {
	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return err
	}
	return s.checkOwner(salon, actorID, actorRole)
}

func (s *Service) checkOwner(salon *domain.Salon, actorID int64, actorRole domain.Role) error {
	if actorRole != domain.RoleOwner || salon.OwnerID != actorID {
		s.logger.Warn("checkOwner: actor=%d is not the owner of salon=%d", actorID, salon.ID)
		return ErrAccessDenied
	}
	return nil
}

// invalidateUpcoming сбрасывает кеш слотов на ближайшую неделю
// Дальние даты доживут свой короткий TTL
func (s *Service) invalidateUpcoming(ctx context.Context, salon *domain.Salon) {
	if s.cache == nil {
		return
	}

	loc := salon.Location()
	day := s.timeProvider.Now().In(loc)
	for i := 0; i < 7; i++ {
		dateKey := day.AddDate(0, 0, i).Format(domain.DateFormat)
		if err := s.cache.Invalidate(ctx, salon.ID, dateKey); err != nil {
			s.logger.Warn("invalidateUpcoming: failed for salon=%d, date=%s: %v", salon.ID, dateKey, err)
		}
	}
}
