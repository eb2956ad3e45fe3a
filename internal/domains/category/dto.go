package category

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateCategoryRequest - POST /api/categories
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

func (req *CreateCategoryRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required.Error("Category name is required"), validation.Length(1, 255)),
	)
}

// UpdateCategoryRequest - PUT /api/categories/:id
// Unlike the author update, name is mandatory here.
type UpdateCategoryRequest struct {
	Name string `json:"name"`
}

func (req *UpdateCategoryRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)

	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required.Error("Category name is required"), validation.Length(1, 255)),
	)
}
