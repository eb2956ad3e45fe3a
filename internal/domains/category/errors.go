package category

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrCategoryNotFound = errors.New("Category not found")
	ErrDuplicateName    = errors.New("Category name already exists")
	ErrInvalidID        = errors.New("Invalid category ID")
)

// ToHTTPStatus maps domain errors to HTTP status codes. Duplicate names are
// 400, not 409, matching the API's status table.
func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrCategoryNotFound):
		return 404
	case errors.Is(err, ErrDuplicateName), errors.Is(err, ErrInvalidID), errors.As(err, &verrs):
		return 400
	default:
		return 500
	}
}
