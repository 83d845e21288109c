package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"atlas/internal/model"
	"atlas/internal/repository"
)

// AnalysisPostgres is a PostgreSQL implementation of repository.AnalysisRepository.
// Concepts are stored as a JSON array in a TEXT column.
type AnalysisPostgres struct {
	db *sql.DB
}

// NewAnalysisPostgres creates a new AnalysisPostgres repository.
func NewAnalysisPostgres(db *sql.DB) *AnalysisPostgres {
	return &AnalysisPostgres{db: db}
}

var _ repository.AnalysisRepository = (*AnalysisPostgres)(nil)

const analysisColumns = `id, domain, query, language, success, confidence, complexity,
		primary_meaning, concepts, report_key, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanAnalysis(s scanner) (*model.Analysis, error) {
	var (
		a        model.Analysis
		concepts string
	)
	if err := s.Scan(
		&a.ID,
		&a.Domain,
		&a.Query,
		&a.Language,
		&a.Success,
		&a.Confidence,
		&a.Complexity,
		&a.PrimaryMeaning,
		&concepts,
		&a.ReportKey,
		&a.DurationMS,
		&a.CreatedAt,
	); err != nil {
		return nil, err
	}
	a.Concepts = []string{}
	if concepts != "" {
		if err := json.Unmarshal([]byte(concepts), &a.Concepts); err != nil {
			return nil, fmt.Errorf("decode concepts of %s: %w", a.ID, err)
		}
	}
	return &a, nil
}

// Create inserts a new analysis row and returns the stored record.
func (r *AnalysisPostgres) Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error) {
	concepts := a.Concepts
	if concepts == nil {
		concepts = []string{}
	}
	encoded, err := json.Marshal(concepts)
	if err != nil {
		return nil, err
	}
	q := `
		INSERT INTO analyses (` + analysisColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + analysisColumns
	row := r.db.QueryRowContext(ctx, q,
		a.ID,
		a.Domain,
		a.Query,
		a.Language,
		a.Success,
		a.Confidence,
		a.Complexity,
		a.PrimaryMeaning,
		string(encoded),
		a.ReportKey,
		a.DurationMS,
		a.CreatedAt,
	)
	return scanAnalysis(row)
}

// FindByID fetches a single analysis by its ID.
func (r *AnalysisPostgres) FindByID(ctx context.Context, id string) (*model.Analysis, error) {
	q := `SELECT ` + analysisColumns + ` FROM analyses WHERE id = $1`
	return scanAnalysis(r.db.QueryRowContext(ctx, q, id))
}

// List returns analyses using LIMIT/OFFSET pagination and a total count.
// An empty Domain matches every row.
func (r *AnalysisPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Analysis], error) {
	const qCount = `SELECT COUNT(*) FROM analyses WHERE ($1 = '' OR domain = $1)`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, pq.Domain).Scan(&total); err != nil {
		return nil, err
	}

	q := `
		SELECT ` + analysisColumns + `
		FROM analyses
		WHERE ($1 = '' OR domain = $1)
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.QueryContext(ctx, q, pq.Domain, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Analysis]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes an analysis by ID. It does not return an error if the row does not exist.
func (r *AnalysisPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM analyses WHERE id = $1`
	_, err := r.db.ExecContext(ctx, q, id)
	return err
}
