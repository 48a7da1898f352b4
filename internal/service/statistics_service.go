package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
	"github.com/tutor-crm/backend/internal/stats"
)

type StatisticsService struct {
	lessonRepo   *repository.LessonRepository
	bookRepo     *repository.BookRepository
	studentRepo  *repository.StudentRepository
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
	taxRate      float64
}

func NewStatisticsService(
	lessonRepo *repository.LessonRepository,
	bookRepo *repository.BookRepository,
	studentRepo *repository.StudentRepository,
	categoryRepo *repository.CategoryRepository,
	logger *zap.Logger,
	taxRate float64,
) *StatisticsService {
	return &StatisticsService{
		lessonRepo:   lessonRepo,
		bookRepo:     bookRepo,
		studentRepo:  studentRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
		taxRate:      taxRate,
	}
}

// Full считает полный снимок статистики. Четыре коллекции загружаются
// параллельно; падение любой из них отменяет остальные — частичный
// снимок не строится никогда.
func (s *StatisticsService) Full(ctx context.Context, startDate, endDate string) (stats.Snapshot, error) {
	var (
		lessons    []*model.Lesson
		books      []*model.Book
		students   []*model.Student
		categories []*model.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		lessons, err = s.lessonRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		books, err = s.bookRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		students, err = s.studentRepo.List(gctx)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categoryRepo.List(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return stats.Snapshot{}, err
	}

	s.logger.Debug("Statistics data loaded",
		zap.Int("lessons", len(lessons)),
		zap.Int("books", len(books)),
		zap.Int("students", len(students)),
		zap.Int("categories", len(categories)))

	return stats.Calculate(stats.Input{
		Lessons:        lessons,
		Books:          books,
		Students:       students,
		Categories:     categories,
		StartDate:      startDate,
		EndDate:        endDate,
		TaxRatePercent: s.taxRate,
	}), nil
}
