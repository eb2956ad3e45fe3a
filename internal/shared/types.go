package shared

import "github.com/google/uuid"

// Shallow projections used when a response expands a stored identifier into
// the referenced entity's fields. They are shared across domains so that the
// book domain can name author/category projections (and vice versa) without
// importing the other domain.

// BookRef is the projection of a Book attached to author responses.
type BookRef struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	CoverImage *string   `json:"coverImage,omitempty"`
}

// AuthorRef is the projection of an Author attached to book responses.
type AuthorRef struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Country string    `json:"country"`
}

// CategoryRef is the projection of a Category attached to book responses.
type CategoryRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}
