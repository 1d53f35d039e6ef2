package database

import (
	"context"
	_ "embed"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-glints-harvester/internal/export"
)

//go:embed schema.sql
var schema string

type Repository struct {
	db *pgxpool.Pool
}

// StoredJob is one persisted listing row.
type StoredJob struct {
	ID string `json:"id"`
	export.Record
	CreatedAt time.Time `json:"created_at"`
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// IMPORTANT: pooled Postgres endpoints (PgBouncer in transaction mode)
	// do not support prepared statements easily. We MUST disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	// Ping to ensure connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// EnsureSchema applies the embedded DDL. Everything in it is IF NOT EXISTS,
// so running it on every start is safe.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveJob inserts a new listing or refreshes an existing one.
// The jobs table carries a unique constraint on (source, link).
func (r *Repository) SaveJob(ctx context.Context, rec export.Record) (*StoredJob, error) {
	query := `
		INSERT INTO jobs (source, link, title, company, location, salary, tags, posted, keyword,
			cluster, category, seniority, work_mode, languages, confidence)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (source, link)
		DO UPDATE SET title = EXCLUDED.title, company = EXCLUDED.company, location = EXCLUDED.location,
			salary = EXCLUDED.salary, tags = EXCLUDED.tags, posted = EXCLUDED.posted,
			cluster = EXCLUDED.cluster, category = EXCLUDED.category, seniority = EXCLUDED.seniority,
			work_mode = EXCLUDED.work_mode, languages = EXCLUDED.languages, confidence = EXCLUDED.confidence
		RETURNING id, created_at`

	stored := StoredJob{Record: rec}
	err := r.db.QueryRow(ctx, query,
		rec.Source, rec.Link, rec.Title, rec.Company, rec.Location, rec.Salary, rec.Tags, rec.Posted, rec.Keyword,
		rec.Cluster, rec.Category, rec.Seniority, rec.WorkMode, rec.Languages, rec.Confidence).
		Scan(&stored.ID, &stored.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("failed to save job: %w", err)
	}

	return &stored, nil
}

// RecentJobs returns the newest stored listings, optionally scoped to one keyword.
// An empty keyword matches everything.
func (r *Repository) RecentJobs(ctx context.Context, keyword string, limit int) ([]StoredJob, error) {
	query := `
		SELECT id, source, link, title, company, location, salary, tags, posted, keyword,
			cluster, category, seniority, work_mode, languages, confidence, created_at
		FROM jobs
		WHERE ($1 = '' OR keyword = $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.db.Query(ctx, query, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent jobs: %w", err)
	}
	defer rows.Close()

	jobs := []StoredJob{}
	for rows.Next() {
		var j StoredJob
		if err := rows.Scan(&j.ID, &j.Source, &j.Link, &j.Title, &j.Company, &j.Location, &j.Salary,
			&j.Tags, &j.Posted, &j.Keyword,
			&j.Cluster, &j.Category, &j.Seniority, &j.WorkMode, &j.Languages, &j.Confidence, &j.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job row: %w", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read job rows: %w", err)
	}

	return jobs, nil
}
