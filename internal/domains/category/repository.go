package category

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// Repository defines Category data access. Name uniqueness is enforced by the
// storage layer; concurrent writers racing on the same name are serialized by
// the unique index and the loser gets ErrDuplicateName.
type Repository interface {
	// Create inserts a new category with an empty books array.
	// Errors: ErrDuplicateName.
	Create(ctx context.Context, c *Category) (*Category, error)

	// GetByID returns ErrCategoryNotFound when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// GetAll returns every category, newest first.
	GetAll(ctx context.Context) ([]Category, error)

	// UpdateName renames the category.
	// Errors: ErrCategoryNotFound, ErrDuplicateName.
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*Category, error)

	// Delete hard-deletes the category row.
	Delete(ctx context.Context, id uuid.UUID) error

	// Missing returns the subset of ids that do not resolve to a category.
	Missing(ctx context.Context, ids []uuid.UUID) ([]uuid.UUID, error)

	// AttachBook adds a book id to each listed category's books array.
	// Set semantics: present members are left alone.
	AttachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error

	// DetachBook removes a book id from each listed category's books array.
	// Absent members are a no-op.
	DetachBook(ctx context.Context, categoryIDs []uuid.UUID, bookID uuid.UUID) error

	// Refs returns shallow projections for the given category ids.
	Refs(ctx context.Context, ids []uuid.UUID) ([]shared.CategoryRef, error)
}
