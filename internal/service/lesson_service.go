package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/cache"
	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

// LessonInput форма создания/редактирования урока — поля в том виде,
// в котором их присылает модальное окно календаря
type LessonInput struct {
	Date         string `json:"date"`     // YYYY-MM-DD
	TimeFrom     string `json:"timeFrom"` // HH:MM
	TimeTo       string `json:"timeTo"`   // HH:MM
	Price        int    `json:"price"`
	Comment      string `json:"comment"`
	Name         string `json:"name"`
	LessonFormat string `json:"lessonFormat"`
	StudentID    int64  `json:"studentId"`
	CategoryID   int64  `json:"categoryId"`
	StatusID     int64  `json:"statusId"`
	BookID       int64  `json:"bookId"`
}

type LessonService struct {
	lessonRepo   *repository.LessonRepository
	studentRepo  *repository.StudentRepository
	categoryRepo *repository.CategoryRepository
	statusRepo   *repository.StatusRepository
	events       *cache.EventsCache
	logger       *zap.Logger
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	studentRepo *repository.StudentRepository,
	categoryRepo *repository.CategoryRepository,
	statusRepo *repository.StatusRepository,
	events *cache.EventsCache,
	logger *zap.Logger,
) *LessonService {
	return &LessonService{
		lessonRepo:   lessonRepo,
		studentRepo:  studentRepo,
		categoryRepo: categoryRepo,
		statusRepo:   statusRepo,
		events:       events,
		logger:       logger,
	}
}

// List возвращает все уроки
func (s *LessonService) List(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessonRepo.List(ctx)
}

// Get возвращает урок по ID
func (s *LessonService) Get(ctx context.Context, id int64) (*model.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lesson == nil {
		return nil, ErrNotFound
	}
	return lesson, nil
}

// Create создаёт урок из формы
func (s *LessonService) Create(ctx context.Context, in *LessonInput) (*model.Lesson, error) {
	lesson, err := s.fromInput(ctx, in)
	if err != nil {
		return nil, err
	}

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return nil, err
	}

	s.events.Invalidate(ctx)
	s.logger.Info("Lesson created",
		zap.Int64("lesson_id", lesson.ID),
		zap.String("start_date", lesson.StartDate),
		zap.Int("price", lesson.Price))

	// Перечитываем, чтобы вернуть урок с заполненными связями
	return s.Get(ctx, lesson.ID)
}

// Update обновляет урок из формы
func (s *LessonService) Update(ctx context.Context, id int64, in *LessonInput) (*model.Lesson, error) {
	lesson, err := s.fromInput(ctx, in)
	if err != nil {
		return nil, err
	}
	lesson.ID = id

	if err := s.lessonRepo.Update(ctx, lesson); err != nil {
		return nil, err
	}

	s.events.Invalidate(ctx)
	s.logger.Info("Lesson updated", zap.Int64("lesson_id", id))

	return s.Get(ctx, id)
}

// Delete удаляет урок
func (s *LessonService) Delete(ctx context.Context, id int64) error {
	if err := s.lessonRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Invalidate(ctx)
	s.logger.Info("Lesson deleted", zap.Int64("lesson_id", id))
	return nil
}

// fromInput собирает урок из полей формы: склеивает дату со временем,
// проверяет ссылки и подставляет имя "<ученик> - <предмет>" если оно
// не задано явно
func (s *LessonService) fromInput(ctx context.Context, in *LessonInput) (*model.Lesson, error) {
	if in.Date == "" || in.TimeFrom == "" || in.TimeTo == "" {
		return nil, fmt.Errorf("%w: date and time range are required", ErrValidation)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}

	student, err := s.studentRepo.GetByID(ctx, in.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, fmt.Errorf("%w: student %d does not exist", ErrValidation, in.StudentID)
	}

	category, err := s.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("%w: category %d does not exist", ErrValidation, in.CategoryID)
	}

	lesson := &model.Lesson{
		Name:         in.Name,
		StartDate:    in.Date + " " + in.TimeFrom + ":00",
		EndDate:      in.Date + " " + in.TimeTo + ":00",
		Price:        in.Price,
		Comment:      in.Comment,
		LessonFormat: model.LessonFormat(in.LessonFormat),
		Student:      &model.StudentRef{ID: student.ID, Name: student.Name},
		Category:     &model.CategoryRef{ID: category.ID, Name: category.Name},
	}

	if lesson.Name == "" {
		lesson.Name = student.Name + " - " + category.Name
	}
	if lesson.LessonFormat == "" {
		lesson.LessonFormat = model.FormatOffline
	}

	if in.StatusID != 0 {
		status, err := s.statusRepo.GetByID(ctx, in.StatusID)
		if err != nil {
			return nil, err
		}
		if status == nil {
			return nil, fmt.Errorf("%w: status %d does not exist", ErrValidation, in.StatusID)
		}
		lesson.Status = status
	}

	if in.BookID != 0 {
		lesson.Book = &model.BookRef{ID: in.BookID}
	}

	return lesson, nil
}
