package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/extract"
	"github.com/jonathan/jobmatch/internal/recommender"
	"github.com/jonathan/jobmatch/internal/schemas"
)

// ErrInput indicates a malformed or missing required request field.
type ErrInput struct {
	Message string
}

func (e *ErrInput) Error() string {
	return e.Message
}

// ErrUserNotFound indicates a referenced user does not exist.
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrEmailAlreadyExists indicates email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var (
		input        *ErrInput
		notFound     *ErrUserNotFound
		emailExists  *ErrEmailAlreadyExists
		badCreds     *ErrInvalidCredentials
		validation   *schemas.ValidationError
		unsupported  *extract.UnsupportedFormatError
		corpusFailed *recommender.CorpusError
	)
	switch {
	case errors.As(err, &input), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &badCreds):
		return http.StatusUnauthorized
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &emailExists):
		return http.StatusConflict
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &corpusFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
