package book

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// CoverUpload carries an extracted multipart file from the handler into the
// service. The binary never reaches the database; it goes to the file store
// and only the generated filename is persisted.
type CoverUpload struct {
	Data        []byte
	ContentType string
	Ext         string // original extension including the dot, may be empty
}

// CreateBookInput - POST /api/books (multipart form).
// AuthorID arrives as the raw form string; Categories is the normalized list
// produced by ParseCategoriesField. Identifier syntax is checked here,
// existence in the service.
type CreateBookInput struct {
	Title    string
	AuthorID string
	// Categories are normalized but not yet validated identifiers.
	Categories []string
	Cover      *CoverUpload
}

func (in *CreateBookInput) Validate() error {
	in.Title = strings.TrimSpace(in.Title)
	in.AuthorID = strings.TrimSpace(in.AuthorID)

	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.Required.Error("Title and author are required")),
		validation.Field(&in.AuthorID, validation.Required.Error("Title and author are required")),
	)
}

// UpdateBookInput - PUT /api/books/:id (multipart form, all fields optional).
// Nil means "field not provided, leave unchanged". A non-nil empty Categories
// slice clears the book's category list.
type UpdateBookInput struct {
	Title      *string
	AuthorID   *string
	Categories *[]string
	Cover      *CoverUpload
}

func (in *UpdateBookInput) Validate() error {
	if in.Title != nil {
		trimmed := strings.TrimSpace(*in.Title)
		in.Title = &trimmed
	}
	if in.AuthorID != nil {
		trimmed := strings.TrimSpace(*in.AuthorID)
		in.AuthorID = &trimmed
	}

	return validation.ValidateStruct(in,
		validation.Field(&in.Title, validation.NilOrNotEmpty.Error("title must not be empty")),
		validation.Field(&in.AuthorID, validation.NilOrNotEmpty.Error("author must not be empty")),
	)
}

// ListFilter - GET /api/books query parameters, already parsed.
type ListFilter struct {
	AuthorID       *uuid.UUID
	CategoryIDs    []uuid.UUID // set membership: any overlap matches
	Title          string      // case-insensitive substring
	IncludeDeleted bool
}

// BookResponse carries the book with author/categories expanded to shallow
// projections. Author is nil when the referenced author has been deleted.
type BookResponse struct {
	ID         uuid.UUID            `json:"id"`
	Title      string               `json:"title"`
	Author     *shared.AuthorRef    `json:"author"`
	Categories []shared.CategoryRef `json:"categories"`
	CoverImage *string              `json:"coverImage,omitempty"`
	Deleted    bool                 `json:"deleted"`
	CreatedAt  time.Time            `json:"createdAt"`
	UpdatedAt  time.Time            `json:"updatedAt"`
}
