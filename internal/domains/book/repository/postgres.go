package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"library-catalog/internal/domains/book"
	"library-catalog/internal/shared"
)

// postgresRepository implements book.Repository. The categories column is a
// uuid[] holding the book's own category references; the reverse indexes live
// on the authors/categories tables.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{
		pool: pool,
	}
}

const bookColumns = `id, title, author_id, categories, cover_image, deleted, created_at, updated_at`

func scanBook(row pgx.Row) (*book.Book, error) {
	var b book.Book
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Categories,
		&b.CoverImage,
		&b.Deleted,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        INSERT INTO books (title, author_id, categories, cover_image)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + bookColumns

	categories := b.Categories
	if categories == nil {
		categories = []uuid.UUID{}
	}

	created, err := scanBook(r.pool.QueryRow(ctx, query, b.Title, b.AuthorID, categories, b.CoverImage))
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*book.Book, error) {
	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE id = $1 AND (deleted = false OR $2)
    `

	b, err := scanBook(r.pool.QueryRow(ctx, query, id, includeDeleted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}

	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, filter book.ListFilter) ([]book.Book, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + bookColumns + ` FROM books WHERE 1=1`)

	args := []interface{}{}
	argPos := 1

	if !filter.IncludeDeleted {
		queryBuilder.WriteString(" AND deleted = false")
	}

	if filter.AuthorID != nil {
		queryBuilder.WriteString(fmt.Sprintf(" AND author_id = $%d", argPos))
		args = append(args, *filter.AuthorID)
		argPos++
	}

	if len(filter.CategoryIDs) > 0 {
		// Set membership: any overlap between the book's categories and
		// the requested ids matches.
		queryBuilder.WriteString(fmt.Sprintf(" AND categories && $%d::uuid[]", argPos))
		args = append(args, filter.CategoryIDs)
		argPos++
	}

	if filter.Title != "" {
		queryBuilder.WriteString(fmt.Sprintf(" AND title ILIKE $%d", argPos))
		args = append(args, "%"+filter.Title+"%")
		argPos++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	rows, err := r.pool.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query books: %w", err)
	}
	defer rows.Close()

	var books []book.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating books: %w", err)
	}

	return books, nil
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	query := `
        UPDATE books
        SET title = $1, author_id = $2, categories = $3, cover_image = $4, updated_at = NOW()
        WHERE id = $5
        RETURNING ` + bookColumns

	categories := b.Categories
	if categories == nil {
		categories = []uuid.UUID{}
	}

	updated, err := scanBook(r.pool.QueryRow(ctx, query, b.Title, b.AuthorID, categories, b.CoverImage, b.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}

	return updated, nil
}

func (r *postgresRepository) SoftDelete(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	// No deleted guard: repeating the delete matches the row again and
	// returns it, making the operation idempotent end to end (the index
	// detaches that follow are set ops).
	query := `
        UPDATE books
        SET deleted = true, updated_at = NOW()
        WHERE id = $1
        RETURNING ` + bookColumns

	deleted, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to soft-delete book: %w", err)
	}

	return deleted, nil
}

func (r *postgresRepository) Summaries(ctx context.Context, ids []uuid.UUID) ([]shared.BookRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT id, title, cover_image FROM books WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query book summaries: %w", err)
	}
	defer rows.Close()

	var refs []shared.BookRef
	for rows.Next() {
		var ref shared.BookRef
		if err := rows.Scan(&ref.ID, &ref.Title, &ref.CoverImage); err != nil {
			return nil, fmt.Errorf("failed to scan book summary: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating book summaries: %w", err)
	}

	return refs, nil
}

// ClearAuthor unsets the author reference on every book pointing at the
// author. Used by the author-deletion cascade; the books survive.
func (r *postgresRepository) ClearAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	query := `UPDATE books SET author_id = NULL, updated_at = NOW() WHERE author_id = $1`

	cmdTag, err := r.pool.Exec(ctx, query, authorID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear author on books: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}

// RemoveCategory pulls the category id from every book's categories list.
// Used by the category-deletion cascade.
func (r *postgresRepository) RemoveCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	query := `
        UPDATE books
        SET categories = array_remove(categories, $1), updated_at = NOW()
        WHERE categories @> ARRAY[$1]::uuid[]
    `

	cmdTag, err := r.pool.Exec(ctx, query, categoryID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove category from books: %w", err)
	}

	return cmdTag.RowsAffected(), nil
}
