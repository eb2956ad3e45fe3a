package author

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-catalog/internal/shared"
)

// CreateAuthorRequest - POST /api/authors
type CreateAuthorRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (req *CreateAuthorRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Country = strings.TrimSpace(req.Country)

	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required.Error("name is required"), validation.Length(1, 255)),
		validation.Field(&req.Country, validation.Required.Error("country is required"), validation.Length(1, 255)),
	)
}

// UpdateAuthorRequest - PUT /api/authors/:id
// Both fields optional; only provided fields change.
type UpdateAuthorRequest struct {
	Name    *string `json:"name,omitempty"`
	Country *string `json:"country,omitempty"`
}

func (req *UpdateAuthorRequest) Validate() error {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	if req.Country != nil {
		trimmed := strings.TrimSpace(*req.Country)
		req.Country = &trimmed
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty.Error("name must not be empty"), validation.Length(1, 255)),
		validation.Field(&req.Country, validation.NilOrNotEmpty.Error("country must not be empty"), validation.Length(1, 255)),
	)
}

// ApplyToEntity applies the partial update to an existing author.
func (req *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Country != nil {
		a.Country = *req.Country
	}
}

// AuthorResponse carries the author with its books expanded to shallow
// {title, coverImage} projections.
type AuthorResponse struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Country   string           `json:"country"`
	Books     []shared.BookRef `json:"books"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// ToResponse builds the expanded response. books must already be resolved
// projections of a.Books.
func (a *Author) ToResponse(books []shared.BookRef) *AuthorResponse {
	if books == nil {
		books = []shared.BookRef{}
	}
	return &AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Country:   a.Country,
		Books:     books,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
