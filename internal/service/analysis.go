package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"atlas/internal/atlas"
	"atlas/internal/i18n"
	"atlas/internal/logger"
	"atlas/internal/model"
	"atlas/internal/repository"
	"atlas/internal/storage"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	defaultURLExpiry = 15 * time.Minute
	maxURLExpiry     = 7 * 24 * time.Hour
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrNotFound        = errors.New("analysis not found")
	ErrReportNotFound  = errors.New("report not found")
	ErrDomainRequired  = errors.New("domain is required")
	ErrQueryRequired   = errors.New("query is required")
	ErrInvalidExpiry   = errors.New("expiry must be between 1s and 168h")
	ErrMessageRequired = errors.New("message is required")
)

// Analyzer runs a single query analysis. *atlas.Core satisfies it.
type Analyzer interface {
	AnalyzeQuery(ctx context.Context, domain, query string) *atlas.Result
}

// AnalyzeRequest is the input of AnalysisService.Analyze.
type AnalyzeRequest struct {
	Domain   string
	Query    string
	Language string
}

// AnalysisRecord pairs the stored summary with the full core result.
type AnalysisRecord struct {
	Analysis *model.Analysis `json:"analysis"`
	Result   *atlas.Result   `json:"result"`
}

// AnalysisListResult is the service-level DTO for paginated analyses.
type AnalysisListResult struct {
	Items []model.Analysis `json:"data"`
	Total int              `json:"total"`
}

// AnalysisService defines the archived analysis use cases.
type AnalysisService interface {
	// Analyze runs the core, archives the full report in object storage and
	// saves the summary row. The archived report is removed if the row cannot be saved.
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisRecord, error)

	// List returns analyses using limit/offset, optionally filtered by domain.
	List(ctx context.Context, limit, offset int, domain string) (*AnalysisListResult, error)

	// Get returns a single analysis summary by its ID.
	Get(ctx context.Context, id string) (*model.Analysis, error)

	// Report streams the archived JSON report of an analysis.
	Report(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error)

	// ReportURL returns a presigned download URL for the archived report
	// after checking that it exists. A zero expiry uses the default.
	ReportURL(ctx context.Context, id string, expiry time.Duration) (string, error)

	// Delete removes the archived report, then the summary row.
	Delete(ctx context.Context, id string) error
}

type analysisService struct {
	core    Analyzer
	store   storage.Storage
	repo    repository.AnalysisRepository
	catalog *i18n.Catalog
	metrics *AnalysisMetrics
	now     func() time.Time
	newID   func() string
}

// NewAnalysisService constructs an AnalysisService. metrics may be nil.
func NewAnalysisService(core Analyzer, store storage.Storage, repo repository.AnalysisRepository, metrics *AnalysisMetrics) AnalysisService {
	return &analysisService{
		core:    core,
		store:   store,
		repo:    repo,
		catalog: i18n.Default(),
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalysisRecord, error) {
	domain := strings.TrimSpace(req.Domain)
	if domain == "" {
		return nil, ErrDomainRequired
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrQueryRequired
	}

	res := s.core.AnalyzeQuery(ctx, domain, query)
	s.metrics.observe(domain, res.Success, res.Metrics.Duration)

	id := s.newID()
	key := storage.ReportKey(id)
	body, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}

	objInfo, err := s.store.Put(ctx, key, bytes.NewReader(body), storage.PutObjectOptions{
		Size:        int64(len(body)),
		ContentType: storage.ReportContentType,
		Metadata:    map[string]string{"domain": domain, "analysis-id": id},
	})
	if err != nil {
		return nil, fmt.Errorf("upload to storage: %w", err)
	}

	a := &model.Analysis{
		ID:         id,
		Domain:     domain,
		Query:      query,
		Language:   s.catalog.Match(req.Language),
		Success:    res.Success,
		Confidence: res.Confidence(),
		Concepts:   res.Metrics.Concepts,
		ReportKey:  objInfo.Key,
		DurationMS: res.Metrics.Duration.Milliseconds(),
		CreatedAt:  s.now().UTC(),
	}
	if sem := res.Semantic; sem != nil {
		a.Complexity = sem.Complexity
		a.PrimaryMeaning = sem.Meaning
	}

	stored, err := s.repo.Create(ctx, a)
	if err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	log := logger.FromContext(ctx, "service")
	log.Info().Str("analysis_id", id).Str("domain", domain).Bool("success", res.Success).
		Float64("confidence", a.Confidence).Msg("analysis archived")
	return &AnalysisRecord{Analysis: stored, Result: res}, nil
}

func (s *analysisService) List(ctx context.Context, limit, offset int, domain string) (*AnalysisListResult, error) {
	if limit <= 0 {
		limit = defaultPageLimit
	}
	limit = min(limit, maxPageLimit)
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset, Domain: strings.TrimSpace(domain)})
	if err != nil {
		return nil, err
	}
	return &AnalysisListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *analysisService) Get(ctx context.Context, id string) (*model.Analysis, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *analysisService) Report(ctx context.Context, id string) (io.ReadCloser, storage.ObjectInfo, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return nil, storage.ObjectInfo{}, err
	}
	rc, info, err := s.store.Get(ctx, a.ReportKey)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, storage.ObjectInfo{}, ErrReportNotFound
		}
		return nil, storage.ObjectInfo{}, fmt.Errorf("get report: %w", err)
	}
	return rc, info, nil
}

func (s *analysisService) ReportURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	if expiry == 0 {
		expiry = defaultURLExpiry
	}
	if expiry < time.Second || expiry > maxURLExpiry {
		return "", ErrInvalidExpiry
	}
	a, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if _, err := s.store.Stat(ctx, a.ReportKey); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", ErrReportNotFound
		}
		return "", fmt.Errorf("stat report: %w", err)
	}
	u, err := s.store.PresignGet(ctx, a.ReportKey, expiry)
	if err != nil {
		return "", fmt.Errorf("presign report: %w", err)
	}
	return u, nil
}

func (s *analysisService) Delete(ctx context.Context, id string) error {
	a, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	// Keep the row if the object survives so the report stays reachable.
	if err := s.store.Delete(ctx, a.ReportKey); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return s.repo.Delete(ctx, id)
}
