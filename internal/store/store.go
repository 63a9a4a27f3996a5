// Package store provides resume persistence and ranking history for the
// ranking engine: a PostgreSQL implementation for the server and an in-memory
// implementation for the CLI and tests.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// Fetcher resolves resume ids to stored raw texts. An empty id list returns
// the full available set. Ids that do not resolve are silently omitted from
// the result; the caller decides whether that matters.
type Fetcher interface {
	FetchResumes(ctx context.Context, ids []string) ([]types.StoredResume, error)
}

// RankingRecord is one persisted ranking run, kept for the history view.
type RankingRecord struct {
	ID             uuid.UUID         `json:"id"`
	JobDescription string            `json:"job_description"`
	JobAnalysis    types.JobAnalysis `json:"job_analysis"`
	Ranked         []types.Candidate `json:"ranked"`
	CreatedAt      time.Time         `json:"created_at"`
}
