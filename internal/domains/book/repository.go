package book

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// Repository defines Book data access. Soft deletion is a flag flip; the row
// is never removed by this system. The implementation also provides the two
// cascade operations the author and category services need (it satisfies
// author.BookIndex and category.BookIndex).
type Repository interface {
	// Create inserts a new book with deleted = false.
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID fetches a book. Soft-deleted books are reported as
	// ErrBookNotFound unless includeDeleted is set.
	GetByID(ctx context.Context, id uuid.UUID, includeDeleted bool) (*Book, error)

	// List returns books matching the filter, newest first. Soft-deleted
	// books are excluded unless the filter says otherwise.
	List(ctx context.Context, filter ListFilter) ([]Book, error)

	// Update persists the book's mutable fields.
	// Returns ErrBookNotFound when absent.
	Update(ctx context.Context, b *Book) (*Book, error)

	// SoftDelete flips the deleted flag and returns the book with its
	// author/categories fields intact for later inspection. Repeating the
	// delete matches the row again and is a harmless no-op.
	SoftDelete(ctx context.Context, id uuid.UUID) (*Book, error)

	// Summaries returns {id, title, coverImage} projections for book ids.
	Summaries(ctx context.Context, ids []uuid.UUID) ([]shared.BookRef, error)

	// ClearAuthor unsets author_id on every book referencing the author.
	ClearAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)

	// RemoveCategory pulls the category id from every book listing it.
	RemoveCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}
