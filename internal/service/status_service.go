package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

type StatusService struct {
	statusRepo *repository.StatusRepository
	logger     *zap.Logger
}

func NewStatusService(statusRepo *repository.StatusRepository, logger *zap.Logger) *StatusService {
	return &StatusService{statusRepo: statusRepo, logger: logger}
}

// List возвращает все статусы
func (s *StatusService) List(ctx context.Context) ([]*model.Status, error) {
	return s.statusRepo.List(ctx)
}

// Get возвращает статус по ID
func (s *StatusService) Get(ctx context.Context, id int64) (*model.Status, error) {
	status, err := s.statusRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, ErrNotFound
	}
	return status, nil
}

// Create создаёт статус; slug генерируется из названия если не задан.
// Набор slug'ов не ограничивается: агрегаторы понимают шесть
// конвенциональных, остальные попадают в "прочее".
func (s *StatusService) Create(ctx context.Context, status *model.Status) error {
	if err := s.validate(status); err != nil {
		return err
	}

	if err := s.statusRepo.Create(ctx, status); err != nil {
		return err
	}

	s.logger.Info("Status created",
		zap.Int64("status_id", status.ID),
		zap.String("slug", status.Slug))
	return nil
}

// Update обновляет статус
func (s *StatusService) Update(ctx context.Context, status *model.Status) error {
	if err := s.validate(status); err != nil {
		return err
	}

	if err := s.statusRepo.Update(ctx, status); err != nil {
		return err
	}

	s.logger.Info("Status updated", zap.Int64("status_id", status.ID))
	return nil
}

// Delete удаляет статус; уроки с ним остаются без статуса
func (s *StatusService) Delete(ctx context.Context, id int64) error {
	if err := s.statusRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Status deleted", zap.Int64("status_id", id))
	return nil
}

func (s *StatusService) validate(status *model.Status) error {
	status.Name = strings.TrimSpace(status.Name)
	if status.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if status.Slug == "" {
		status.Slug = model.Slugify(status.Name)
	}
	return nil
}
