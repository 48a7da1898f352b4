package service

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/tutor-crm/backend/internal/cache"
	"github.com/tutor-crm/backend/internal/calendar"
	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository"
)

type CalendarService struct {
	bookRepo      *repository.BookRepository
	lessonRepo    *repository.LessonRepository
	categoryRepo  *repository.CategoryRepository
	events        *cache.EventsCache
	logger        *zap.Logger
	lessonMinutes int
}

func NewCalendarService(
	bookRepo *repository.BookRepository,
	lessonRepo *repository.LessonRepository,
	categoryRepo *repository.CategoryRepository,
	events *cache.EventsCache,
	logger *zap.Logger,
	lessonMinutes int,
) *CalendarService {
	if lessonMinutes <= 0 {
		lessonMinutes = calendar.DefaultLessonMinutes
	}
	return &CalendarService{
		bookRepo:      bookRepo,
		lessonRepo:    lessonRepo,
		categoryRepo:  categoryRepo,
		events:        events,
		logger:        logger,
		lessonMinutes: lessonMinutes,
	}
}

// Events возвращает события календаря за окно [start, end]
// (обе даты YYYY-MM-DD, включительно). Ответ кэшируется.
func (s *CalendarService) Events(ctx context.Context, start, end string) ([]model.CalendarEvent, error) {
	if cached, ok := s.events.Get(ctx, start, end); ok {
		return cached, nil
	}

	books, err := s.bookRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	lessons, err := s.lessonRepo.ListByRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[int64]int, len(categories))
	for _, c := range categories {
		prices[c.ID] = c.Price
	}

	events, err := calendar.BuildEvents(books, lessons, prices, start, end)
	if err != nil {
		return nil, fmt.Errorf("build events: %w", err)
	}

	s.events.Set(ctx, start, end, events)
	return events, nil
}

// Income считает снимок дохода за окно [start, end]
func (s *CalendarService) Income(ctx context.Context, start, end string) (calendar.IncomeSnapshot, error) {
	events, err := s.Events(ctx, start, end)
	if err != nil {
		return calendar.IncomeSnapshot{}, err
	}

	return calendar.CalculateIncome(events, calendar.Period{Start: start, End: end}), nil
}

// Draft строит черновик урока по URL события календаря.
// Для слота существующего урока данные дочитываются из БД.
func (s *CalendarService) Draft(ctx context.Context, rawURL string) (*model.LessonDraft, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, ErrBadSlot
	}

	switch calendar.ClassifySlot(u) {
	case calendar.SlotBooked:
		draft := calendar.ParseBookedSlot(u.Query())
		if draft == nil {
			return nil, ErrBadSlot
		}
		return draft, nil

	case calendar.SlotFree:
		draft := calendar.ParseFreeSlot(u.Query(), s.lessonMinutes)
		if draft == nil {
			return nil, ErrBadSlot
		}
		return draft, nil

	case calendar.SlotLesson:
		id, _ := calendar.LessonIDFromPath(calendar.PathParts(u.Path))
		lesson, err := s.lessonRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if lesson == nil {
			return nil, ErrNotFound
		}
		return calendar.NormalizeLesson(lesson), nil

	default:
		return nil, ErrBadSlot
	}
}

// WeekImage рисует PNG расписания недели, в которую попадает date
func (s *CalendarService) WeekImage(ctx context.Context, date time.Time) ([]byte, error) {
	// Неделя Пн-Вс вокруг запрошенной даты
	weekday := (int(date.Weekday()) + 6) % 7
	start := date.AddDate(0, 0, -weekday)
	end := start.AddDate(0, 0, 6)

	events, err := s.Events(ctx, start.Format(model.DateLayout), end.Format(model.DateLayout))
	if err != nil {
		return nil, err
	}

	return calendar.RenderWeekImage(date, events)
}
