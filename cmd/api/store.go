package main

import (
	"database/sql"
	"time"

	_ "github.com/glebarez/go-sqlite"
)

// JobStore keeps a local history of triggered workflows so the job list
// survives Temporal's retention window.
type JobStore struct {
	db *sql.DB
}

type Job struct {
	WorkflowID string    `json:"workflowId"`
	Workflow   string    `json:"workflow"`
	TitleID    string    `json:"titleId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func NewJobStore(path string) (*JobStore, error) {
	if path == "" {
		path = "jobs.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS jobs (
		workflow_id TEXT PRIMARY KEY,
		workflow TEXT NOT NULL,
		title_id TEXT,
		created_at TIMESTAMP NOT NULL
	)`)
	if err != nil {
		return nil, err
	}

	return &JobStore{db: db}, nil
}

func (s *JobStore) RecordJob(workflowID, workflow, titleID string) error {
	_, err := s.db.Exec(
		"INSERT INTO jobs (workflow_id, workflow, title_id, created_at) VALUES (?, ?, ?, ?)",
		workflowID, workflow, titleID, time.Now().UTC(),
	)
	return err
}

func (s *JobStore) ListJobs(limit int) ([]Job, error) {
	rows, err := s.db.Query(
		"SELECT workflow_id, workflow, title_id, created_at FROM jobs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []Job{}
	for rows.Next() {
		var job Job
		err = rows.Scan(&job.WorkflowID, &job.Workflow, &job.TitleID, &job.CreatedAt)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func (s *JobStore) Close() error {
	return s.db.Close()
}
