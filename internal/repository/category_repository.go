package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tutor-crm/backend/internal/model"
	"github.com/tutor-crm/backend/internal/repository/base"
)

type CategoryRepository struct {
	*base.Repository
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{Repository: base.NewRepository(pool)}
}

// List возвращает все категории со счётчиками броней и уроков
func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	query := `
		SELECT c.id, c.name, c.price, c.slug, c.created_at,
		       (SELECT COUNT(*) FROM books b WHERE b.category_id = c.id) AS books_count,
		       (SELECT COUNT(*) FROM lessons l WHERE l.category_id = c.id) AS lessons_count
		FROM categories c
		ORDER BY c.name ASC
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*model.Category
	for rows.Next() {
		var category model.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.Price,
			&category.Slug,
			&category.CreatedAt,
			&category.BooksCount,
			&category.LessonsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, &category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	return categories, nil
}

// GetByID получает категорию по ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `
		SELECT c.id, c.name, c.price, c.slug, c.created_at,
		       (SELECT COUNT(*) FROM books b WHERE b.category_id = c.id) AS books_count,
		       (SELECT COUNT(*) FROM lessons l WHERE l.category_id = c.id) AS lessons_count
		FROM categories c
		WHERE c.id = $1
	`

	var category model.Category
	err := r.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.Name,
		&category.Price,
		&category.Slug,
		&category.CreatedAt,
		&category.BooksCount,
		&category.LessonsCount,
	)

	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category by id: %w", err)
	}

	return &category, nil
}

// Create создаёт новую категорию
func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (name, price, slug)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.QueryRow(ctx, query, category.Name, category.Price, category.Slug).
		Scan(&category.ID, &category.CreatedAt)
	if err != nil {
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

// Update обновляет категорию
func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET name = $1, price = $2, slug = $3
		WHERE id = $4
	`

	affected, err := r.ExecAffected(ctx, query, category.Name, category.Price, category.Slug, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category: %w", base.ErrNotFound)
	}

	return nil
}

// Delete удаляет категорию
func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("category: %w", base.ErrNotFound)
	}

	return nil
}
