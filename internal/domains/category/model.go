package category

import (
	"time"

	"github.com/google/uuid"
)

// Category is the domain entity. Name is globally unique. Books is the
// reverse-index array of non-deleted books listing this category, maintained
// by the book domain's reference maintainer.
type Category struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"` // required, trimmed, unique
	Books     []uuid.UUID `json:"books" db:"books"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}
