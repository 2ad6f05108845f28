package devis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs. Tests substitute
// a pgxmock pool.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores submissions in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("devis: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row. Enrichment columns stay NULL when the AI step
// produced nothing.
func (r *PostgresRepository) Create(ctx context.Context, req *SubmissionRequest, enr *Enrichment) (*Submission, error) {
	id := uuid.New()

	var summary *string
	var priority *int
	var keywords []string
	var brief []byte
	if enr != nil {
		if enr.Analysis != nil {
			summary = &enr.Analysis.Summary
			priority = &enr.Analysis.Priority
			keywords = enr.Analysis.Keywords
		}
		if len(enr.Brief) > 0 {
			brief = enr.Brief
		}
	}

	query := `
		INSERT INTO devis (id, name, email, phone, company, project_type, project_description, budget,
			analysis_summary, analysis_priority, analysis_keywords, content_brief)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Company,
		req.ProjectType,
		req.ProjectDescription,
		req.Budget,
		summary,
		priority,
		keywords,
		brief,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("devis: insert failed: %w", err)
	}

	sub := &Submission{
		ID:                 id.String(),
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Company:            req.Company,
		ProjectType:        req.ProjectType,
		ProjectDescription: req.ProjectDescription,
		Budget:             req.Budget,
		CreatedAt:          createdAt,
	}
	if enr != nil {
		sub.Analysis = enr.Analysis
		sub.Brief = enr.Brief
	}
	return sub, nil
}

// GetByID fetches a single submission.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	query := `
		SELECT id, name, email, phone, company, project_type, project_description, budget,
			analysis_summary, analysis_priority, analysis_keywords, content_brief, created_at
		FROM devis
		WHERE id = $1
	`
	sub, err := scanSubmission(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("devis: select failed: %w", err)
	}
	return sub, nil
}

// List returns submissions, newest first.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*Submission, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	query := `
		SELECT id, name, email, phone, company, project_type, project_description, budget,
			analysis_summary, analysis_priority, analysis_keywords, content_brief, created_at
		FROM devis
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.pool.Query(ctx, query, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("devis: list failed: %w", err)
	}
	defer rows.Close()

	var subs []*Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("devis: scan failed: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func scanSubmission(row pgx.Row) (*Submission, error) {
	var sub Submission
	var summary *string
	var priority *int
	var keywords []string
	var brief []byte
	if err := row.Scan(
		&sub.ID,
		&sub.Name,
		&sub.Email,
		&sub.Phone,
		&sub.Company,
		&sub.ProjectType,
		&sub.ProjectDescription,
		&sub.Budget,
		&summary,
		&priority,
		&keywords,
		&brief,
		&sub.CreatedAt,
	); err != nil {
		return nil, err
	}
	if summary != nil || priority != nil || len(keywords) > 0 {
		analysis := &AnalysisResult{Keywords: keywords}
		if summary != nil {
			analysis.Summary = *summary
		}
		if priority != nil {
			analysis.Priority = *priority
		}
		sub.Analysis = analysis
	}
	if len(brief) > 0 {
		sub.Brief = json.RawMessage(brief)
	}
	return &sub, nil
}

var _ Repository = (*PostgresRepository)(nil)
