package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/extract"
)

// maxResumeUpload bounds uploaded resume files.
const maxResumeUpload = 8 << 20 // 8 MiB

// CreateUserRequest is the body of POST /api/users. This endpoint
// stores a profile without credentials; use /api/auth/register for an
// account that can authenticate.
type CreateUserRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role" validate:"omitempty,oneof=candidate employer"`
	ResumeText string `json:"resume_text"`
}

// UpdateResumeRequest is the body of PUT /api/users/{id}/resume.
type UpdateResumeRequest struct {
	ResumeText string `json:"resume_text" validate:"required"`
}

// handleCreateUser creates a user profile, optionally with an initial
// resume.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	existing, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing != nil {
		conflictErr := &ErrEmailAlreadyExists{Email: req.Email}
		s.errorResponse(w, HTTPStatus(conflictErr), conflictErr.Error())
		return
	}

	id, err := s.db.CreateUser(ctx, req.Email, req.Name, req.Role, "")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if req.ResumeText != "" {
		if _, err := s.db.UpdateUserResume(ctx, id, req.ResumeText); err != nil {
			s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
			return
		}
	}

	s.jsonResponse(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

// handleUpdateResume replaces the stored resume text for a user.
func (s *Server) handleUpdateResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req UpdateResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	updated, err := s.db.UpdateUserResume(ctx, userID, req.ResumeText)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !updated {
		notFound := &ErrUserNotFound{UserID: userID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "updated"})
}

// handleUploadResume accepts a multipart resume file (PDF, DOCX or
// plain text), extracts its text and stores it as the user's resume.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := r.ParseMultipartForm(maxResumeUpload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Missing resume file: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxResumeUpload))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read resume file: "+err.Error())
		return
	}

	text, err := extract.FromBytes(header.Filename, data)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if text == "" {
		inputErr := &ErrInput{Message: "resume file contains no extractable text"}
		s.errorResponse(w, HTTPStatus(inputErr), inputErr.Error())
		return
	}

	updated, err := s.db.UpdateUserResume(ctx, userID, text)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !updated {
		notFound := &ErrUserNotFound{UserID: userID}
		s.errorResponse(w, HTTPStatus(notFound), notFound.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":     "updated",
		"filename":   header.Filename,
		"characters": len(text),
	})
}
