package book

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrBookNotFound = errors.New("Book not found")

	// Cross-entity reference failures at write time. These are client
	// mistakes in the payload, so they map to 400, not 404.
	ErrAuthorNotFound   = errors.New("Author not found")
	ErrCategoryNotFound = errors.New("One or more categories not found")

	ErrInvalidID         = errors.New("Invalid book ID")
	ErrInvalidAuthorID   = errors.New("Invalid author ID")
	ErrInvalidCategoryID = errors.New("Invalid category ID(s)")

	ErrFileTooLarge = errors.New("Cover image exceeds the maximum allowed size")
	ErrFileUpload   = errors.New("Failed to store cover image")
)

// ToHTTPStatus maps domain errors to HTTP status codes.
func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.Is(err, ErrBookNotFound):
		return 404
	case errors.Is(err, ErrAuthorNotFound),
		errors.Is(err, ErrCategoryNotFound),
		errors.Is(err, ErrInvalidID),
		errors.Is(err, ErrInvalidAuthorID),
		errors.Is(err, ErrInvalidCategoryID),
		errors.Is(err, ErrFileTooLarge),
		errors.Is(err, ErrFileUpload),
		errors.As(err, &verrs):
		return 400
	default:
		return 500
	}
}
