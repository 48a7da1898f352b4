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

type BookRepository struct {
	*base.Repository
}

func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{Repository: base.NewRepository(pool)}
}

const bookColumns = `
	b.id, b.time_from, b.time_to, b.start_date, b.end_date,
	b.book_status, b.lesson_format, b.created_at,
	b.student_id, s.name, b.category_id, c.name,
	(SELECT COUNT(*) FROM lessons l WHERE l.book_id = b.id) AS lessons_count
`

// List возвращает все брони с именами ученика и категории
func (r *BookRepository) List(ctx context.Context) ([]*model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN students s ON s.id = b.student_id
		JOIN categories c ON c.id = b.category_id
		ORDER BY b.start_date DESC, b.time_from ASC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	var books []*model.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

// GetByID получает бронь по ID
func (r *BookRepository) GetByID(ctx context.Context, id int64) (*model.Book, error) {
	query := `
		SELECT ` + bookColumns + `
		FROM books b
		JOIN students s ON s.id = b.student_id
		JOIN categories c ON c.id = b.category_id
		WHERE b.id = $1
	`

	book, err := scanBook(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book by id: %w", err)
	}

	return book, nil
}

// Create создаёт новую бронь
func (r *BookRepository) Create(ctx context.Context, book *model.Book) error {
	query := `
		INSERT INTO books (time_from, time_to, start_date, end_date, book_status, lesson_format, student_id, category_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		book.TimeFrom,
		book.TimeTo,
		book.StartDate,
		book.EndDate,
		book.BookStatus,
		book.LessonFormat,
		book.Student.ID,
		book.LessonCategory.ID,
	).Scan(&book.ID, &book.CreatedAt)

	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	return nil
}

// Update обновляет бронь
func (r *BookRepository) Update(ctx context.Context, book *model.Book) error {
	query := `
		UPDATE books
		SET time_from = $1, time_to = $2, start_date = $3, end_date = $4,
		    book_status = $5, lesson_format = $6, student_id = $7, category_id = $8
		WHERE id = $9
	`

	affected, err := r.ExecAffected(
		ctx, query,
		book.TimeFrom,
		book.TimeTo,
		book.StartDate,
		book.EndDate,
		book.BookStatus,
		book.LessonFormat,
		book.Student.ID,
		book.LessonCategory.ID,
		book.ID,
	)
	if err != nil {
		return fmt.Errorf("update book: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("book: %w", base.ErrNotFound)
	}

	return nil
}

// Delete удаляет бронь
func (r *BookRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("book: %w", base.ErrNotFound)
	}

	return nil
}

func scanBook(row pgx.Row) (*model.Book, error) {
	var book model.Book
	var student model.StudentRef
	var category model.CategoryRef
	var startDate time.Time
	var endDate *time.Time

	err := row.Scan(
		&book.ID,
		&book.TimeFrom,
		&book.TimeTo,
		&startDate,
		&endDate,
		&book.BookStatus,
		&book.LessonFormat,
		&book.CreatedAt,
		&student.ID,
		&student.Name,
		&category.ID,
		&category.Name,
		&book.LessonsCount,
	)
	if err != nil {
		if base.IsNotFound(err) {
			return nil, err
		}
		return nil, fmt.Errorf("scan book: %w", err)
	}

	book.StartDate = startDate.Format(model.DateLayout)
	if endDate != nil {
		formatted := endDate.Format(model.DateLayout)
		book.EndDate = &formatted
	}
	book.Student = &student
	book.LessonCategory = &category

	return &book, nil
}
