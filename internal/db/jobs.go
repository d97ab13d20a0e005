package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/jobmatch/internal/types"
)

// CreateJob inserts a job posting and returns its row ID. An existing
// row with the same job_id is updated in place, so reseeding the same
// corpus is idempotent.
func (db *DB) CreateJob(ctx context.Context, job types.JobRecord) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (job_id, title, company, location, description, skills)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (job_id) DO UPDATE
		 SET title = $2, company = $3, location = $4, description = $5, skills = $6
		 RETURNING id`,
		job.JobID, job.Title, job.Company, job.Location, job.Description,
		types.JoinSkills(job.Skills),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create job %s: %w", job.JobID, err)
	}
	return id, nil
}

// CreateJobs inserts a batch of job postings inside one transaction.
func (db *DB) CreateJobs(ctx context.Context, jobs []types.JobRecord) (int, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	inserted := 0
	for _, job := range jobs {
		_, err := tx.Exec(ctx,
			`INSERT INTO jobs (job_id, title, company, location, description, skills)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (job_id) DO UPDATE
			 SET title = $2, company = $3, location = $4, description = $5, skills = $6`,
			job.JobID, job.Title, job.Company, job.Location, job.Description,
			types.JoinSkills(job.Skills),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert job %s: %w", job.JobID, err)
		}
		inserted++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit job batch: %w", err)
	}
	return inserted, nil
}

// ListJobs returns a page of jobs, newest first, plus the total count.
func (db *DB) ListJobs(ctx context.Context, limit, offset int) ([]Job, int, error) {
	var total int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_id, title, company, location, description, skills, created_at
		 FROM jobs ORDER BY created_at DESC, job_id DESC LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.JobID, &j.Title, &j.Company, &j.Location,
			&j.Description, &j.Skills, &j.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate job rows: %w", err)
	}
	return jobs, total, nil
}

// AllJobRecords loads the whole corpus in insertion order for engine
// construction.
func (db *DB) AllJobRecords(ctx context.Context) ([]types.JobRecord, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT job_id, title, company, location, description, skills
		 FROM jobs ORDER BY created_at ASC, job_id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load job corpus: %w", err)
	}
	defer rows.Close()

	var records []types.JobRecord
	for rows.Next() {
		var rec types.JobRecord
		var skills string
		if err := rows.Scan(&rec.JobID, &rec.Title, &rec.Company, &rec.Location,
			&rec.Description, &skills); err != nil {
			return nil, fmt.Errorf("failed to scan job record: %w", err)
		}
		rec.Skills = types.ParseSkills(skills)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate job records: %w", err)
	}
	return records, nil
}

// GetJobRowID returns the row ID for a corpus job_id, or uuid.Nil when
// the job is unknown.
func (db *DB) GetJobRowID(ctx context.Context, jobID string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx, `SELECT id FROM jobs WHERE job_id = $1`, jobID).Scan(&id)
	if err != nil {
		if isNoRows(err) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("failed to look up job %s: %w", jobID, err)
	}
	return id, nil
}
