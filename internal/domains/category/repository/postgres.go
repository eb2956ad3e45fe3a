package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/category"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
)

// postgresRepository implements category.Repository with pgxpool plus a Redis
// read-through cache on single-category lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) category.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	categoryCacheKeyPrefix = "category:"
	cacheTTL               = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, c *category.Category) (*category.Category, error) {
	query := `
        INSERT INTO categories (name)
        VALUES ($1)
        RETURNING id, name, books, created_at, updated_at
    `

	var created category.Category
	err := r.pool.QueryRow(ctx, query, c.Name).Scan(
		&created.ID,
		&created.Name,
		&created.Books,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, category.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*category.Category, error) {
	cacheKey := categoryCacheKeyPrefix + id.String()

	var c category.Category
	if found, err := r.cache.Get(ctx, cacheKey, &c); err == nil && found {
		return &c, nil
	}

	query := `
        SELECT id, name, books, created_at, updated_at
        FROM categories
        WHERE id = $1
    `

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&c.ID,
		&c.Name,
		&c.Books,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &c, cacheTTL)

	return &c, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]category.Category, error) {
	query := `
        SELECT id, name, books, created_at, updated_at
        FROM categories
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []category.Category
	for rows.Next() {
		var c category.Category
		err := rows.Scan(&c.ID, &c.Name, &c.Books, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func (r *postgresRepository) UpdateName(ctx context.Context, id uuid.UUID, name string) (*category.Category, error) {
	query := `
        UPDATE categories
        SET name = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, name, books, created_at, updated_at
    `

	var updated category.Category
	err := r.pool.QueryRow(ctx, query, name, id).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Books,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, category.ErrCategoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, category.ErrDuplicateName
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	r.invalidate(ctx, id)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return category.ErrCategoryNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

// Missing resolves the given ids and reports the ones with no matching row.
func (r *postgresRepository) Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id FROM categories WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve categories: %w", err)
	}
	defer rows.Close()

	found := make(map[uuid.UUID]bool, len(ids))
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan category id: %w", err)
		}
		found[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category ids: %w", err)
	}

	var missing []uuid.UUID
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id)
		}
	}

	return missing, nil
}

func (r *postgresRepository) AttachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
        UPDATE categories
        SET books = array_append(books, $2), updated_at = NOW()
        WHERE id = ANY($1) AND NOT (books @> ARRAY[$2]::uuid[])
    `

	if _, err := r.pool.Exec(ctx, query, categoryIDs, bookID); err != nil {
		return fmt.Errorf("failed to attach book to categories: %w", err)
	}

	r.invalidate(ctx, categoryIDs...)

	return nil
}

func (r *postgresRepository) DetachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error {
	if len(categoryIDs) == 0 {
		return nil
	}

	query := `
        UPDATE categories
        SET books = array_remove(books, $2), updated_at = NOW()
        WHERE id = ANY($1) AND books @> ARRAY[$2]::uuid[]
    `

	if _, err := r.pool.Exec(ctx, query, categoryIDs, bookID); err != nil {
		return fmt.Errorf("failed to detach book from categories: %w", err)
	}

	r.invalidate(ctx, categoryIDs...)

	return nil
}

func (r *postgresRepository) Refs(ctx context.Context, ids []uuid.UUID) ([]shared.CategoryRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name FROM categories WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query category refs: %w", err)
	}
	defer rows.Close()

	var refs []shared.CategoryRef
	for rows.Next() {
		var ref shared.CategoryRef
		if err := rows.Scan(&ref.ID, &ref.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category refs: %w", err)
	}

	return refs, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, ids ...uuid.UUID) {
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, categoryCacheKeyPrefix+id.String())
	}
	_ = r.cache.Delete(ctx, keys...)
}
