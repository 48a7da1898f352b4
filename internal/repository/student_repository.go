package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository/base"
)

type StudentRepository struct {
	*base.Repository
}

func NewStudentRepository(pool *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{Repository: base.NewRepository(pool)}
}

// List возвращает всех учеников со счётчиками броней и уроков
func (r *StudentRepository) List(ctx context.Context) ([]*model.Student, error) {
	query := `
		SELECT s.id, s.name, s.comment, s.created_at,
		       (SELECT COUNT(*) FROM books b WHERE b.student_id = s.id) AS bookings_count,
		       (SELECT COUNT(*) FROM lessons l WHERE l.student_id = s.id) AS lessons_count
		FROM students s
		ORDER BY s.name ASC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var students []*model.Student
	for rows.Next() {
		var student model.Student
		err := rows.Scan(
			&student.ID,
			&student.Name,
			&student.Comment,
			&student.CreatedAt,
			&student.BookingsCount,
			&student.LessonsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, &student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate students: %w", err)
	}

	return students, nil
}

// GetByID получает ученика по ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	query := `
		SELECT s.id, s.name, s.comment, s.created_at,
		       (SELECT COUNT(*) FROM books b WHERE b.student_id = s.id) AS bookings_count,
		       (SELECT COUNT(*) FROM lessons l WHERE l.student_id = s.id) AS lessons_count
		FROM students s
		WHERE s.id = $1
	`

	var student model.Student
	err := r.QueryRow(ctx, query, id).Scan(
		&student.ID,
		&student.Name,
		&student.Comment,
		&student.CreatedAt,
		&student.BookingsCount,
		&student.LessonsCount,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get student by id: %w", err)
	}

	return &student, nil
}

// Create создаёт нового ученика
func (r *StudentRepository) Create(ctx context.Context, student *model.Student) error {
	query := `
		INSERT INTO students (name, comment)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, student.Name, student.Comment).
		Scan(&student.ID, &student.CreatedAt)
	if err != nil {
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

// Update обновляет данные ученика
func (r *StudentRepository) Update(ctx context.Context, student *model.Student) error {
	query := `
		UPDATE students
		SET name = $1, comment = $2
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, student.Name, student.Comment, student.ID)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student: %w", base.ErrNotFound)
	}

	return nil
}

// Delete удаляет ученика
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("student: %w", base.ErrNotFound)
	}

	return nil
}
