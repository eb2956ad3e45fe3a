package author

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrAuthorNotFound = errors.New("Author not found")
	ErrInvalidID      = errors.New("Invalid author ID")
)

// ToHTTPStatus maps domain errors to HTTP status codes.
func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrInvalidID), errors.As(err, &verrs):
		return 400
	default:
		return 500
	}
}
