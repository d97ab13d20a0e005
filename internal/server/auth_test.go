package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/jobmatch/internal/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateToken(uuid.New())
	require.NoError(t, err)

	other := NewJWTService(&config.JWTConfig{Secret: "different", ExpirationHours: 1})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not.a.token")
	assert.Error(t, err)
}

func TestBearerToken_Parsing(t *testing.T) {
	tests := []struct {
		name   string
		header string
		token  string
		ok     bool
	}{
		{"standard", "Bearer abc123", "abc123", true},
		{"lowercase scheme", "bearer abc123", "abc123", true},
		{"missing", "", "", false},
		{"no token", "Bearer", "", false},
		{"wrong scheme", "Basic abc123", "", false},
		{"extra parts", "Bearer a b", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			token, ok := bearerToken(r)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func newAuthTestServer() *Server {
	return &Server{
		jwtService: newTestJWTService(),
		validate:   validator.New(),
	}
}

func requireUserRequest(t *testing.T, s *Server, pathID string, authorization string) *httptest.ResponseRecorder {
	t.Helper()
	called := false
	handler := s.requireUser(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusNoContent)
	})

	mux := http.NewServeMux()
	mux.HandleFunc("PUT /api/users/{id}/resume", handler)

	r := httptest.NewRequest(http.MethodPut, "/api/users/"+pathID+"/resume", nil)
	if authorization != "" {
		r.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, r)

	if w.Code == http.StatusNoContent {
		require.True(t, called)
	}
	return w
}

func TestRequireUser_AllowsMatchingToken(t *testing.T) {
	s := newAuthTestServer()
	userID := uuid.New()
	token, err := s.jwtService.GenerateToken(userID)
	require.NoError(t, err)

	w := requireUserRequest(t, s, userID.String(), "Bearer "+token)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireUser_RejectsMissingHeader(t *testing.T) {
	s := newAuthTestServer()
	w := requireUserRequest(t, s, uuid.New().String(), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_RejectsOtherUsersToken(t *testing.T) {
	s := newAuthTestServer()
	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	w := requireUserRequest(t, s, uuid.New().String(), "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireUser_RejectsBadPathID(t *testing.T) {
	s := newAuthTestServer()
	token, err := s.jwtService.GenerateToken(uuid.New())
	require.NoError(t, err)

	w := requireUserRequest(t, s, "not-a-uuid", "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
