package author

import (
	"time"

	"github.com/google/uuid"
)

// Author is the domain entity. Books is the reverse-index array: it lists the
// ids of every non-deleted book whose author field points here. It is a
// derived cache maintained by the book domain's reference maintainer, not a
// source of truth.
type Author struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Name      string      `json:"name" db:"name"`       // required, trimmed
	Country   string      `json:"country" db:"country"` // required, trimmed
	Books     []uuid.UUID `json:"books" db:"books"`
	CreatedAt time.Time   `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time   `json:"updatedAt" db:"updated_at"`
}
