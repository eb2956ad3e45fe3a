package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/author"
	"library-catalog/internal/shared"
	"library-catalog/pkg/cache"
)

// postgresRepository implements author.Repository with pgxpool plus a Redis
// read-through cache on single-author lookups.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{
		pool:  pool,
		cache: cache,
	}
}

const (
	authorCacheKeyPrefix = "author:"
	cacheTTL             = 15 * time.Minute
)

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (name, country)
        VALUES ($1, $2)
        RETURNING id, name, country, books, created_at, updated_at
    `

	var created author.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Country).Scan(
		&created.ID,
		&created.Name,
		&created.Country,
		&created.Books,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	return &created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `
        SELECT id, name, country, books, created_at, updated_at
        FROM authors
        WHERE id = $1
    `

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Name,
		&a.Country,
		&a.Books,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, &a, cacheTTL)

	return &a, nil
}

func (r *postgresRepository) GetAll(ctx context.Context) ([]author.Author, error) {
	query := `
        SELECT id, name, country, books, created_at, updated_at
        FROM authors
        ORDER BY created_at DESC
    `

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors: %w", err)
	}
	defer rows.Close()

	var authors []author.Author
	for rows.Next() {
		var a author.Author
		err := rows.Scan(&a.ID, &a.Name, &a.Country, &a.Books, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        UPDATE authors
        SET name = $1, country = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING id, name, country, books, created_at, updated_at
    `

	var updated author.Author
	err := r.pool.QueryRow(ctx, query, a.Name, a.Country, a.ID).Scan(
		&updated.ID,
		&updated.Name,
		&updated.Country,
		&updated.Books,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.invalidate(ctx, a.ID)

	return &updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete author: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return author.ErrAuthorNotFound
	}

	r.invalidate(ctx, id)

	return nil
}

func (r *postgresRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM authors WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check author existence: %w", err)
	}
	return exists, nil
}

// AttachBook appends a book id to the books array. The @> guard makes the
// operation idempotent: appending a present member matches zero rows.
func (r *postgresRepository) AttachBook(ctx context.Context, authorID, bookID uuid.UUID) error {
	query := `
        UPDATE authors
        SET books = array_append(books, $2), updated_at = NOW()
        WHERE id = $1 AND NOT (books @> ARRAY[$2]::uuid[])
    `

	if _, err := r.pool.Exec(ctx, query, authorID, bookID); err != nil {
		return fmt.Errorf("failed to attach book to author: %w", err)
	}

	r.invalidate(ctx, authorID)

	return nil
}

// DetachBook removes a book id from the books array; removing an absent
// member is a no-op.
func (r *postgresRepository) DetachBook(ctx context.Context, authorID, bookID uuid.UUID) error {
	query := `
        UPDATE authors
        SET books = array_remove(books, $2), updated_at = NOW()
        WHERE id = $1 AND books @> ARRAY[$2]::uuid[]
    `

	if _, err := r.pool.Exec(ctx, query, authorID, bookID); err != nil {
		return fmt.Errorf("failed to detach book from author: %w", err)
	}

	r.invalidate(ctx, authorID)

	return nil
}

func (r *postgresRepository) Refs(ctx context.Context, ids []uuid.UUID) ([]shared.AuthorRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, name, country FROM authors WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query author refs: %w", err)
	}
	defer rows.Close()

	var refs []shared.AuthorRef
	for rows.Next() {
		var ref shared.AuthorRef
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.Country); err != nil {
			return nil, fmt.Errorf("failed to scan author ref: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating author refs: %w", err)
	}

	return refs, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
}
