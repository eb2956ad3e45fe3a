package book

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// AuthorDirectory is the slice of the author domain the book service needs:
// existence checks at write time, reverse-index maintenance, and projections
// for response expansion. Implemented by the author repository.
type AuthorDirectory interface {
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	AttachBook(ctx context.Context, authorID, bookID uuid.UUID) error
	DetachBook(ctx context.Context, authorID, bookID uuid.UUID) error
	Refs(ctx context.Context, ids []uuid.UUID) ([]shared.AuthorRef, error)
}

// CategoryDirectory is the corresponding slice of the category domain.
// Implemented by the category repository.
type CategoryDirectory interface {
	Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)
	AttachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error
	DetachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error
	Refs(ctx context.Context, ids []uuid.UUID) ([]shared.CategoryRef, error)
}

// CoverStore persists cover-image binaries. Implemented by the MinIO storage.
type CoverStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
	Delete(ctx context.Context, key string) error
}

// Service defines Book business logic, including the reference maintenance
// that keeps the Author/Category reverse indexes consistent across writes.
type Service interface {
	// List returns books matching the filter, expanded.
	List(ctx context.Context, filter ListFilter) ([]BookResponse, error)

	// GetByID fetches one book, expanded. Soft-deleted books are only
	// visible with includeDeleted.
	// Errors: ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*BookResponse, error)

	// Create validates in order: required fields, author existence,
	// category existence, cover upload; then persists and attaches the new
	// book id to its author's and categories' books arrays. Any failure
	// short-circuits the later steps, so a rejected create performs no
	// reference writes.
	Create(ctx context.Context, in *CreateBookInput) (*BookResponse, error)

	// Update applies a partial update. An author change moves the book id
	// between the old and new authors' books arrays; a categories change
	// is a full replace of the reverse-index memberships.
	Update(ctx context.Context, id uuid.UUID, in *UpdateBookInput) (*BookResponse, error)

	// SoftDelete flips the deleted flag and detaches the book id from its
	// author's and categories' books arrays. The book's own author and
	// categories fields are left intact.
	// Errors: ErrBookNotFound.
	SoftDelete(ctx context.Context, id uuid.UUID) (*BookResponse, error)
}
