package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

type StudentService struct {
	studentRepo *repository.StudentRepository
	logger      *zap.Logger
}

func NewStudentService(studentRepo *repository.StudentRepository, logger *zap.Logger) *StudentService {
	return &StudentService{studentRepo: studentRepo, logger: logger}
}

// List возвращает всех учеников
func (s *StudentService) List(ctx context.Context) ([]*model.Student, error) {
	return s.studentRepo.List(ctx)
}

// Get возвращает ученика по ID
func (s *StudentService) Get(ctx context.Context, id int64) (*model.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrNotFound
	}
	return student, nil
}

// Create создаёт ученика
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	student.Name = strings.TrimSpace(student.Name)
	if student.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return err
	}

	s.logger.Info("Student created",
		zap.Int64("student_id", student.ID),
		zap.String("name", student.Name))
	return nil
}

// Update обновляет ученика
func (s *StudentService) Update(ctx context.Context, student *model.Student) error {
	student.Name = strings.TrimSpace(student.Name)
	if student.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return err
	}

	s.logger.Info("Student updated", zap.Int64("student_id", student.ID))
	return nil
}

// Delete удаляет ученика вместе с его бронями и уроками (каскадно в БД)
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := s.studentRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Student deleted", zap.Int64("student_id", id))
	return nil
}
