package server

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/db"
	"github.com/jonathan/jobmatch/internal/ingestion"
	"github.com/jonathan/jobmatch/internal/schemas"
	"github.com/jonathan/jobmatch/internal/types"
)

// maxImportBody bounds bulk import payloads.
const maxImportBody = 16 << 20 // 16 MiB

// defaultSeedCSV is the CSV used by POST /api/jobs/seed when the
// request names no path.
const defaultSeedCSV = "data/jobs_sample.csv"

// ListJobsResponse is a paginated jobs listing.
type ListJobsResponse struct {
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Limit int      `json:"limit"`
	Items []db.Job `json:"items"`
}

// CreateJobRequest is the body of POST /api/jobs. Skills use the
// semicolon-delimited transport form. When DescriptionHTML is set it is
// cleaned to plain text and takes precedence over Description.
type CreateJobRequest struct {
	JobID           string `json:"job_id" validate:"required"`
	Title           string `json:"title" validate:"required"`
	Company         string `json:"company" validate:"required"`
	Location        string `json:"location"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"description_html"`
	Skills          string `json:"skills"`
}

// handleListJobs lists stored jobs with page/limit pagination.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	page := parseQueryInt(r, "page", 1, 0)
	if page < 1 {
		page = 1
	}
	limit := parseQueryInt(r, "limit", 20, 100)

	jobs, total, err := s.db.ListJobs(r.Context(), limit, (page-1)*limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if jobs == nil {
		jobs = []db.Job{}
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Total: total,
		Page:  page,
		Limit: limit,
		Items: jobs,
	})
}

// handleCreateJob stores a single job posting and refreshes the engine.
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	description := req.Description
	if req.DescriptionHTML != "" {
		text, err := ingestion.DescriptionFromHTML(req.DescriptionHTML)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid description_html: "+err.Error())
			return
		}
		description = text
	}
	if description == "" {
		err := &ErrInput{Message: "description or description_html is required"}
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	id, err := s.db.CreateJob(ctx, types.JobRecord{
		JobID:       req.JobID,
		Title:       req.Title,
		Company:     req.Company,
		Location:    req.Location,
		Description: description,
		Skills:      types.ParseSkills(req.Skills),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.reloadEngine(ctx); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to rebuild engine: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]uuid.UUID{"id": id})
}

// importJob mirrors the job import schema's transport form.
type importJob struct {
	JobID       string `json:"job_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
}

// handleImportJobs bulk-imports a schema-validated JSON array of jobs.
func (s *Server) handleImportJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBody))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Failed to read request body: "+err.Error())
		return
	}
	if err := schemas.ValidateJobsImport(payload); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	var imports []importJob
	if err := json.Unmarshal(payload, &imports); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	records := make([]types.JobRecord, len(imports))
	for i, job := range imports {
		records[i] = types.JobRecord{
			JobID:       job.JobID,
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			Description: job.Description,
			Skills:      types.ParseSkills(job.Skills),
		}
	}

	count, err := s.db.CreateJobs(ctx, records)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.reloadEngine(ctx); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to rebuild engine: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, map[string]int{"imported": count})
}

// SeedJobsRequest is the body of POST /api/jobs/seed.
type SeedJobsRequest struct {
	CSVPath string `json:"csv_path"`
}

// handleSeedJobs loads the corpus from a CSV file on the server host.
func (s *Server) handleSeedJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SeedJobsRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
			return
		}
	}

	csvPath := req.CSVPath
	if csvPath == "" {
		csvPath = defaultSeedCSV
	}
	if _, err := os.Stat(csvPath); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "CSV not found: "+filepath.Clean(csvPath))
		return
	}

	records, err := ingestion.LoadJobsCSV(csvPath)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	count, err := s.db.CreateJobs(ctx, records)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	if err := s.reloadEngine(ctx); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to rebuild engine: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"status": "seeded", "jobs": count, "csv": csvPath})
}
