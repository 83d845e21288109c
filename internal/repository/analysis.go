package repository

import (
	"context"

	"atlas/internal/model"
)

// AnalysisRepository defines data access for archived analyses.
// Strictly persistence operations.
type AnalysisRepository interface {
	// Create inserts a new analysis record and returns the stored row.
	Create(ctx context.Context, a *model.Analysis) (*model.Analysis, error)

	// FindByID returns an analysis by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Analysis, error)

	// List returns a page of analyses, newest first, and the total count for the filter.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Analysis], error)

	// Delete removes an analysis by ID. It returns nil if the row did not exist.
	Delete(ctx context.Context, id string) error
}

// PageQuery holds limit/offset pagination parameters and an optional domain filter.
type PageQuery struct {
	Limit  int
	Offset int
	Domain string
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
