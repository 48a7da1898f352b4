package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/cache"
	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

type BookService struct {
	bookRepo *repository.BookRepository
	events   *cache.EventsCache
	logger   *zap.Logger
}

func NewBookService(bookRepo *repository.BookRepository, events *cache.EventsCache, logger *zap.Logger) *BookService {
	return &BookService{bookRepo: bookRepo, events: events, logger: logger}
}

// List возвращает все брони
func (s *BookService) List(ctx context.Context) ([]*model.Book, error) {
	return s.bookRepo.List(ctx)
}

// Get возвращает бронь по ID
func (s *BookService) Get(ctx context.Context, id int64) (*model.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, ErrNotFound
	}
	return book, nil
}

// Create создаёт бронь
func (s *BookService) Create(ctx context.Context, book *model.Book) error {
	if err := s.validate(book); err != nil {
		return err
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return err
	}

	s.events.Invalidate(ctx)
	s.logger.Info("Book created",
		zap.Int64("book_id", book.ID),
		zap.Int64("student_id", book.Student.ID),
		zap.String("start_date", book.StartDate))
	return nil
}

// Update обновляет бронь
func (s *BookService) Update(ctx context.Context, book *model.Book) error {
	if err := s.validate(book); err != nil {
		return err
	}

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return err
	}

	s.events.Invalidate(ctx)
	s.logger.Info("Book updated", zap.Int64("book_id", book.ID))
	return nil
}

// Delete удаляет бронь
func (s *BookService) Delete(ctx context.Context, id int64) error {
	if err := s.bookRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Invalidate(ctx)
	s.logger.Info("Book deleted", zap.Int64("book_id", id))
	return nil
}

// validate проверяет обязательные поля брони. Соотношение
// end_date >= start_date намеренно не проверяется: в существующих
// данных встречаются брони, где оно нарушено.
func (s *BookService) validate(book *model.Book) error {
	if book.Student == nil || book.Student.ID == 0 {
		return fmt.Errorf("%w: student is required", ErrValidation)
	}
	if book.LessonCategory == nil || book.LessonCategory.ID == 0 {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	if book.TimeFrom == "" || book.TimeTo == "" {
		return fmt.Errorf("%w: time range is required", ErrValidation)
	}
	if book.StartDate == "" {
		return fmt.Errorf("%w: start date is required", ErrValidation)
	}
	if book.LessonFormat == "" {
		book.LessonFormat = model.FormatOffline
	}
	return nil
}
