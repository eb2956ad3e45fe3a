package book

import (
	"time"

	"github.com/google/uuid"
)

// Book is the domain entity. AuthorID and Categories are the source of truth
// for the book's relationships; the books arrays on Author and Category are
// derived reverse indexes kept in step by the reference maintainer.
//
// AuthorID is required at write time but nullable in storage: deleting an
// author clears the field on its books without deleting them.
type Book struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	Title      string      `json:"title" db:"title"` // required, trimmed, indexed
	AuthorID   *uuid.UUID  `json:"author" db:"author_id"`
	Categories []uuid.UUID `json:"categories" db:"categories"`
	CoverImage *string     `json:"coverImage,omitempty" db:"cover_image"`
	Deleted    bool        `json:"deleted" db:"deleted"` // soft-delete marker
	CreatedAt  time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time   `json:"updatedAt" db:"updated_at"`
}
