package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/InnoShay/HireSight-sub000/internal/types"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// CreateResume stores an extracted resume text and returns its id.
func (db *DB) CreateResume(ctx context.Context, filename, rawText string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO resumes (filename, raw_text)
		 VALUES ($1, $2)
		 RETURNING id`,
		filename, rawText,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return id, nil
}

// GetResume retrieves a resume by id. Returns nil when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*types.StoredResume, error) {
	var r types.StoredResume
	err := db.pool.QueryRow(ctx,
		`SELECT id, filename, raw_text FROM resumes WHERE id = $1`,
		id,
	).Scan(&r.ID, &r.Filename, &r.RawText)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return &r, nil
}

// DeleteResume removes a resume by id. Returns true when a row was deleted.
func (db *DB) DeleteResume(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete resume: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// FetchResumes resolves resume ids to stored texts, preserving the order of
// the requested ids. Ids that are not valid UUIDs or do not exist are omitted.
// An empty id list returns the full set, oldest first.
func (db *DB) FetchResumes(ctx context.Context, ids []string) ([]types.StoredResume, error) {
	if len(ids) == 0 {
		return db.listResumes(ctx)
	}

	uuids := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		uuids = append(uuids, id)
	}
	if len(uuids) == 0 {
		return []types.StoredResume{}, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, raw_text FROM resumes WHERE id = ANY($1)`,
		uuids,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resumes: %w", err)
	}
	defer rows.Close()

	byID := make(map[string]types.StoredResume)
	for rows.Next() {
		var r types.StoredResume
		if err := rows.Scan(&r.ID, &r.Filename, &r.RawText); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		byID[r.ID] = r
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resumes: %w", err)
	}

	// Reassemble in request order; duplicate marking downstream depends on a
	// single consistent ordering.
	out := make([]types.StoredResume, 0, len(uuids))
	for _, id := range uuids {
		if r, ok := byID[id.String()]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (db *DB) listResumes(ctx context.Context) ([]types.StoredResume, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, filename, raw_text FROM resumes ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	out := make([]types.StoredResume, 0)
	for rows.Next() {
		var r types.StoredResume
		if err := rows.Scan(&r.ID, &r.Filename, &r.RawText); err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read resumes: %w", err)
	}
	return out, nil
}

// SaveRanking persists one completed ranking run for the history view.
func (db *DB) SaveRanking(ctx context.Context, jobDescription string, analysis types.JobAnalysis, ranked []types.Candidate) (uuid.UUID, error) {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal job analysis: %w", err)
	}
	rankedJSON, err := json.Marshal(ranked)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal ranked list: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO rankings (job_description, job_analysis, ranked)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		jobDescription, analysisJSON, rankedJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save ranking: %w", err)
	}
	return id, nil
}

// GetRanking retrieves a persisted ranking run by id. Returns nil when not found.
func (db *DB) GetRanking(ctx context.Context, id uuid.UUID) (*RankingRecord, error) {
	var rec RankingRecord
	var analysisJSON, rankedJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_description, job_analysis, ranked, created_at
		 FROM rankings WHERE id = $1`,
		id,
	).Scan(&rec.ID, &rec.JobDescription, &analysisJSON, &rankedJSON, &rec.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}

	if err := json.Unmarshal(analysisJSON, &rec.JobAnalysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job analysis: %w", err)
	}
	if err := json.Unmarshal(rankedJSON, &rec.Ranked); err != nil {
		return nil, fmt.Errorf("failed to unmarshal ranked list: %w", err)
	}
	return &rec, nil
}

// ListRankings returns ranking history metadata, newest first. The ranked
// payloads are not loaded; use GetRanking for the full record.
func (db *DB) ListRankings(ctx context.Context, limit int) ([]RankingRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, job_description, created_at
		 FROM rankings ORDER BY created_at DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list rankings: %w", err)
	}
	defer rows.Close()

	out := make([]RankingRecord, 0)
	for rows.Next() {
		var rec RankingRecord
		if err := rows.Scan(&rec.ID, &rec.JobDescription, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ranking: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rankings: %w", err)
	}
	return out, nil
}
