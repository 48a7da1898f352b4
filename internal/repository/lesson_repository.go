package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository/base"
)

type LessonRepository struct {
	*base.Repository
}

func NewLessonRepository(pool *pgxpool.Pool) *LessonRepository {
	return &LessonRepository{Repository: base.NewRepository(pool)}
}

const lessonColumns = `
	l.id, l.name, l.start_date, l.end_date, l.price, l.comment, l.lesson_format,
	l.created_at, l.book_id,
	l.student_id, s.name, l.category_id, c.name,
	st.id, st.name, st.slug
`

const lessonJoins = `
	FROM lessons l
	JOIN students s ON s.id = l.student_id
	JOIN categories c ON c.id = l.category_id
	LEFT JOIN statuses st ON st.id = l.status_id
`

// List возвращает все уроки с учеником, категорией и статусом
func (r *LessonRepository) List(ctx context.Context) ([]*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + lessonJoins + `ORDER BY l.start_date DESC`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

// ListByRange возвращает уроки, начинающиеся в [from, to] (даты YYYY-MM-DD,
// правая граница включает весь день)
func (r *LessonRepository) ListByRange(ctx context.Context, from, to string) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + lessonJoins + `
		WHERE l.start_date >= $1::date AND l.start_date < ($2::date + INTERVAL '1 day')
		ORDER BY l.start_date ASC
	`

	rows, err := r.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list lessons by range: %w", err)
	}
	defer rows.Close()

	return collectLessons(rows)
}

// GetByID получает урок по ID
func (r *LessonRepository) GetByID(ctx context.Context, id int64) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + lessonJoins + `WHERE l.id = $1`

	lesson, err := scanLesson(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// Create создаёт новый урок
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (name, start_date, end_date, price, comment, lesson_format, status_id, student_id, category_id, book_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		lesson.Name,
		lesson.StartDate,
		lesson.EndDate,
		lesson.Price,
		lesson.Comment,
		lesson.LessonFormat,
		statusID(lesson),
		lesson.Student.ID,
		lesson.Category.ID,
		bookID(lesson),
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// Update обновляет урок
func (r *LessonRepository) Update(ctx context.Context, lesson *model.Lesson) error {
	query := `
		UPDATE lessons
		SET name = $1, start_date = $2, end_date = $3, price = $4, comment = $5,
		    lesson_format = $6, status_id = $7, student_id = $8, category_id = $9, book_id = $10
		WHERE id = $11
	`

	affected, err := r.ExecAffected(
		ctx, query,
		lesson.Name,
		lesson.StartDate,
		lesson.EndDate,
		lesson.Price,
		lesson.Comment,
		lesson.LessonFormat,
		statusID(lesson),
		lesson.Student.ID,
		lesson.Category.ID,
		bookID(lesson),
		lesson.ID,
	)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson: %w", base.ErrNotFound)
	}

	return nil
}

// Delete удаляет урок
func (r *LessonRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson: %w", base.ErrNotFound)
	}

	return nil
}

func collectLessons(rows pgx.Rows) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, err
		}
		lessons = append(lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lessons: %w", err)
	}
	return lessons, nil
}

func scanLesson(row pgx.Row) (*model.Lesson, error) {
	var lesson model.Lesson
	var student model.StudentRef
	var category model.CategoryRef
	var startDate, endDate time.Time
	var bookIDValue *int64
	var statusIDValue *int64
	var statusName, statusSlug *string

	err := row.Scan(
		&lesson.ID,
		&lesson.Name,
		&startDate,
		&endDate,
		&lesson.Price,
		&lesson.Comment,
		&lesson.LessonFormat,
		&lesson.CreatedAt,
		&bookIDValue,
		&student.ID,
		&student.Name,
		&category.ID,
		&category.Name,
		&statusIDValue,
		&statusName,
		&statusSlug,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan lesson: %w", err)
	}

	lesson.StartDate = startDate.Format(model.DateTimeLayout)
	lesson.EndDate = endDate.Format(model.DateTimeLayout)
	lesson.Student = &student
	lesson.Category = &category

	if bookIDValue != nil {
		lesson.Book = &model.BookRef{ID: *bookIDValue}
	}
	if statusIDValue != nil {
		lesson.Status = &model.Status{
			ID:   *statusIDValue,
			Name: deref(statusName),
			Slug: deref(statusSlug),
		}
	}

	return &lesson, nil
}

func statusID(lesson *model.Lesson) *int64 {
	if lesson.Status == nil {
		return nil
	}
	return &lesson.Status.ID
}

func bookID(lesson *model.Lesson) *int64 {
	if lesson.Book == nil {
		return nil
	}
	return &lesson.Book.ID
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
