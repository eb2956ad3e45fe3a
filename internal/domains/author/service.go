package author

import (
	"context"

	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// BookIndex is the slice of the book domain the author service needs:
// book summaries for response expansion, and the author-deletion cascade.
// Implemented by the book repository; wired in the container.
type BookIndex interface {
	// Summaries returns {id, title, coverImage} projections for book ids.
	// Missing ids are skipped.
	Summaries(ctx context.Context, ids []uuid.UUID) ([]shared.BookRef, error)

	// ClearAuthor unsets the author field on every book referencing the
	// author. Returns the number of books touched.
	ClearAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

// Service defines Author business logic.
type Service interface {
	// Create creates an author with an empty books list.
	Create(ctx context.Context, req *CreateAuthorRequest) (*AuthorResponse, error)

	// GetAll lists authors with their books expanded.
	GetAll(ctx context.Context) ([]AuthorResponse, error)

	// GetByID fetches one author with books expanded.
	// Errors: ErrAuthorNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*AuthorResponse, error)

	// Update applies a partial update (only provided fields change).
	// Errors: ErrAuthorNotFound, validation errors.
	Update(ctx context.Context, id uuid.UUID, req *UpdateAuthorRequest) (*AuthorResponse, error)

	// Delete unsets the author reference on every book pointing at this
	// author, then hard-deletes the author. The books themselves survive.
	// Errors: ErrAuthorNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}
