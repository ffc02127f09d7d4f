package salons

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/Salon-BookingService/internal/domain"
	salonRepo "github.com/m04kA/Salon-BookingService/internal/infra/storage/salon"
	"github.com/m04kA/Salon-BookingService/internal/service/salons/models"
)

// Service сервис профилей салонов и публичного каталога
type Service struct {
	salonRepo SalonRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса салонов
func NewService(salonRepo SalonRepository, logger Logger) *Service {
	return &Service{
		salonRepo: salonRepo,
		logger:    logger,
	}
}

// GetByID возвращает профиль салона с вычисленным флагом заполненности
func (s *Service) GetByID(ctx context.Context, salonID int64) (*models.SalonResponse, error) {
	s.logger.Info("GetByID: fetching salon id=%d", salonID)

	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	complete, err := s.salonRepo.IsComplete(ctx, salonID)
	if err != nil && !errors.Is(err, salonRepo.ErrSalonNotFound) {
		s.logger.Error("GetByID: failed to compute completeness for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: GetByID - completeness check: %v", ErrInternal, err)
	}

	return models.FromDomainSalon(salon, complete), nil
}

// GetByOwner возвращает салон владельца (связь 1:1)
func (s *Service) GetByOwner(ctx context.Context, ownerID int64) (*models.SalonResponse, error) {
	s.logger.Info("GetByOwner: fetching salon for owner=%d", ownerID)

	salon, err := s.salonRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("GetByOwner: no salon for owner=%d", ownerID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("GetByOwner: repository error for owner=%d: %v", ownerID, err)
		return nil, fmt.Errorf("%w: GetByOwner - repository error: %v", ErrInternal, err)
	}

	complete, err := s.salonRepo.IsComplete(ctx, salon.ID)
	if err != nil && !errors.Is(err, salonRepo.ErrSalonNotFound) {
		s.logger.Error("GetByOwner: failed to compute completeness for salon id=%d: %v", salon.ID, err)
		return nil, fmt.Errorf("%w: GetByOwner - completeness check: %v", ErrInternal, err)
	}

	return models.FromDomainSalon(salon, complete), nil
}

// Update обновляет профиль салона
// Доступно только владельцу
func (s *Service) Update(ctx context.Context, salonID int64, req *models.UpdateSalonRequest) (*models.SalonResponse, error) {
	s.logger.Info("Update: updating salon id=%d by actor=%d", salonID, req.ActorID)

	salon, err := s.getSalon(ctx, salonID)
	if err != nil {
		return nil, err
	}

	if req.ActorRole != domain.RoleOwner || salon.OwnerID != req.ActorID {
		s.logger.Warn("Update: actor=%d is not the owner of salon=%d", req.ActorID, salonID)
		return nil, ErrAccessDenied
	}

	if err := validateUpdate(req); err != nil {
		s.logger.Warn("Update: validation failed for salon id=%d: %v", salonID, err)
		return nil, err
	}

	salon.Name = req.Name
	salon.Phone = req.Phone
	salon.Address = req.Address
	salon.City = req.City
	salon.Description = req.Description
	salon.Timezone = req.Timezone

	if err := s.salonRepo.Update(ctx, salon); err != nil {
		if errors.Is(err, salonRepo.ErrSalonNotFound) {
			s.logger.Warn("Update: salon id=%d not found during update", salonID)
			return nil, ErrSalonNotFound
		}
		s.logger.Error("Update: repository error for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	complete, err := s.salonRepo.IsComplete(ctx, salonID)
	if err != nil && !errors.Is(err, salonRepo.ErrSalonNotFound) {
		s.logger.Error("Update: failed to compute completeness for salon id=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Update - completeness check: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated salon id=%d", salonID)
	return models.FromDomainSalon(salon, complete), nil
}

// ListComplete возвращает публичный каталог заполненных салонов
func (s *Service) ListComplete(ctx context.Context) (*models.SalonListResponse, error) {
	s.logger.Info("ListComplete: fetching public salon directory")

	salons, err := s.salonRepo.ListComplete(ctx)
	if err != nil {
		s.logger.Error("ListComplete: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListComplete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListComplete: successfully fetched %d salons", len(salons))
	return models.FromDomainSalonList(salons), nil
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

func validateUpdate(req *models.UpdateSalonRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Timezone != "" {
		if _, err := time.LoadLocation(req.Timezone); err != nil {
			return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
		}
	}
	return nil
}
