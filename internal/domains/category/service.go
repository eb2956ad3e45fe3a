package category

import (
	"context"

	"github.com/google/uuid"
)

// BookIndex is the slice of the book domain the category service needs for
// the deletion cascade. Implemented by the book repository.
type BookIndex interface {
	// RemoveCategory pulls the category id out of every book's categories
	// list. Returns the number of books touched.
	RemoveCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
}

// Service defines Category business logic.
type Service interface {
	// Create creates a category.
	// Errors: ErrDuplicateName, validation errors.
	Create(ctx context.Context, req *CreateCategoryRequest) (*Category, error)

	// GetAll lists all categories (books arrays stay as raw ids).
	GetAll(ctx context.Context) ([]Category, error)

	// GetByID fetches one category.
	// Errors: ErrCategoryNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// Update renames the category.
	// Errors: ErrCategoryNotFound, ErrDuplicateName, validation errors.
	Update(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*Category, error)

	// Delete pulls the category from every referencing book's categories
	// list, then hard-deletes the category. The books survive otherwise
	// unchanged.
	// Errors: ErrCategoryNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
