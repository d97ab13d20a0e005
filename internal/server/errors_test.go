package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/jobmatch/internal/extract"
	"github.com/jonathan/jobmatch/internal/recommender"
	"github.com/jonathan/jobmatch/internal/schemas"
)

func TestHTTPStatus_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"input", &ErrInput{Message: "bad"}, http.StatusBadRequest},
		{"validation", &schemas.ValidationError{}, http.StatusBadRequest},
		{"credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"unsupported format", &extract.UnsupportedFormatError{Extension: ".rtf"}, http.StatusUnsupportedMediaType},
		{"empty corpus", &recommender.CorpusError{Reason: "no jobs loaded"}, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_WrappedError(t *testing.T) {
	err := fmt.Errorf("handling request: %w", &ErrUserNotFound{UserID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}
