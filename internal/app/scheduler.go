package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/repository"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	userRepo *repository.UserRepository
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(userRepo *repository.UserRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		userRepo: userRepo,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler")

	go s.runTokenCleanupTask(ctx)
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runTokenCleanupTask периодически чистит истёкшие refresh-токены
func (s *Scheduler) runTokenCleanupTask(ctx context.Context) {
	// Первый запуск сразу при старте
	s.cleanupTokens(ctx)

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanupTokens(ctx)
		case <-s.stopChan:
			s.logger.Info("Token cleanup task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Token cleanup task cancelled")
			return
		}
	}
}

func (s *Scheduler) cleanupTokens(ctx context.Context) {
	deleted, err := s.userRepo.DeleteExpiredRefreshTokens(ctx, time.Now())
	if err != nil {
		s.logger.Error("Failed to delete expired refresh tokens", zap.Error(err))
		return
	}

	if deleted > 0 {
		s.logger.Info("Expired refresh tokens deleted", zap.Int64("count", deleted))
	}
}
