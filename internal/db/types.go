package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/types"
)

// User role constants.
const (
	RoleCandidate = "candidate"
	RoleEmployer  = "employer"
)

// Job is a stored job posting row. Skills keep their semicolon-delimited
// transport form in the database.
type Job struct {
	ID          uuid.UUID `json:"id"`
	JobID       string    `json:"job_id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Skills      string    `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
}

// Record converts a stored row into the engine's corpus record form.
func (j Job) Record() types.JobRecord {
	return types.JobRecord{
		JobID:       j.JobID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Description: j.Description,
		Skills:      types.ParseSkills(j.Skills),
	}
}

// User is a stored user row.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	ResumeText   *string   `json:"resume_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
