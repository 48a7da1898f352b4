package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository/base"
)

type StatusRepository struct {
	*base.Repository
}

func NewStatusRepository(pool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{Repository: base.NewRepository(pool)}
}

// List возвращает все статусы со счётчиком уроков
func (r *StatusRepository) List(ctx context.Context) ([]*model.Status, error) {
	query := `
		SELECT s.id, s.name, s.slug, s.created_at,
		       (SELECT COUNT(*) FROM lessons l WHERE l.status_id = s.id) AS lessons_count
		FROM statuses s
		ORDER BY s.id ASC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*model.Status
	for rows.Next() {
		var status model.Status
		err := rows.Scan(
			&status.ID,
			&status.Name,
			&status.Slug,
			&status.CreatedAt,
			&status.LessonsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		statuses = append(statuses, &status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate statuses: %w", err)
	}

	return statuses, nil
}

// GetByID получает статус по ID
func (r *StatusRepository) GetByID(ctx context.Context, id int64) (*model.Status, error) {
	query := `
		SELECT s.id, s.name, s.slug, s.created_at,
		       (SELECT COUNT(*) FROM lessons l WHERE l.status_id = s.id) AS lessons_count
		FROM statuses s
		WHERE s.id = $1
	`

	var status model.Status
	err := r.QueryRow(ctx, query, id).Scan(
		&status.ID,
		&status.Name,
		&status.Slug,
		&status.CreatedAt,
		&status.LessonsCount,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get status by id: %w", err)
	}

	return &status, nil
}

// Create создаёт новый статус
func (r *StatusRepository) Create(ctx context.Context, status *model.Status) error {
	query := `
		INSERT INTO statuses (name, slug)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, status.Name, status.Slug).
		Scan(&status.ID, &status.CreatedAt)
	if err != nil {
		return fmt.Errorf("create status: %w", err)
	}

	return nil
}

// Update обновляет статус
func (r *StatusRepository) Update(ctx context.Context, status *model.Status) error {
	query := `
		UPDATE statuses
		SET name = $1, slug = $2
		WHERE id = $3
	`

	affected, err := r.ExecAffected(ctx, query, status.Name, status.Slug, status.ID)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("status: %w", base.ErrNotFound)
	}

	return nil
}

// Delete удаляет статус
func (r *StatusRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM statuses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("status: %w", base.ErrNotFound)
	}

	return nil
}
