package author

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// Repository defines Author data access. The postgres implementation enforces
// the schema invariants (required fields, timestamps); the reverse-index
// membership operations are idempotent set operations.
type Repository interface {
	// Create inserts a new author with an empty books array.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetAll returns every author, newest first.
	GetAll(ctx context.Context) ([]Author, error)

	// Update persists name/country changes.
	// Returns ErrAuthorNotFound when absent.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete hard-deletes the author row.
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists reports whether the author exists, without fetching it.
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// AttachBook adds a book id to the author's books array.
	// Set semantics: adding a present member is a no-op.
	AttachBook(ctx context.Context, authorID, bookID uuid.UUID) error

	// DetachBook removes a book id from the author's books array.
	// Removing an absent member is a no-op.
	DetachBook(ctx context.Context, authorID, bookID uuid.UUID) error

	// Refs returns shallow projections for the given author ids.
	// Missing ids are silently skipped.
	Refs(ctx context.Context, ids []uuid.UUID) ([]shared.AuthorRef, error)
}
