package stress

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"atlas/internal/atlas"
)

const defaultTimeout = 30 * time.Second

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecodeResponse   = errors.New("decode response")
)

// Stage is the observed state of an optional enhancement stage.
type Stage uint8

const (
	StageAbsent Stage = iota
	StageActive
	StageUnavailable
)

// Active reports whether the stage ran.
func (s Stage) Active() bool { return s == StageActive }

// Failed reports whether the stage was present but did not run.
func (s Stage) Failed() bool { return s == StageUnavailable }

func stage(present, processing bool) Stage {
	switch {
	case !present:
		return StageAbsent
	case processing:
		return StageActive
	default:
		return StageUnavailable
	}
}

// Outcome is the part of an analysis result the load tests score.
type Outcome struct {
	Success   bool
	Quantum   Stage
	Bio       Stage
	Temporal  Stage
	Coherence float64
}

// OutcomeOf extracts an Outcome from a core result.
func OutcomeOf(r *atlas.Result) Outcome {
	if r == nil {
		return Outcome{}
	}
	return Outcome{
		Success:   r.Success,
		Quantum:   stage(r.Quantum != nil, r.Quantum != nil && r.Quantum.Processing),
		Bio:       stage(r.Bio != nil, r.Bio != nil && r.Bio.Processing),
		Temporal:  stage(r.Temporal != nil, r.Temporal != nil && r.Temporal.Processing),
		Coherence: r.Meta.FractalCoherence,
	}
}

// Target runs one analysis.
type Target interface {
	Analyze(ctx context.Context, domain, query string) (Outcome, error)
}

// Analyzer is satisfied by *atlas.Core.
type Analyzer interface {
	AnalyzeQuery(ctx context.Context, domain, query string) *atlas.Result
}

type coreTarget struct{ core Analyzer }

// NewCoreTarget drives an in-process core.
func NewCoreTarget(core Analyzer) Target { return coreTarget{core: core} }

func (t coreTarget) Analyze(ctx context.Context, domain, query string) (Outcome, error) {
	return OutcomeOf(t.core.AnalyzeQuery(ctx, domain, query)), nil
}

// HTTPTarget drives a remote API through POST /analyze.
type HTTPTarget struct {
	endpoint string
	client   *http.Client
}

// NewHTTPTarget returns a target for the API at baseURL. A nil client is
// replaced by one with a traced transport.
func NewHTTPTarget(baseURL string, client *http.Client) (*HTTPTarget, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid target URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid target URL %q: scheme must be http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{
			Timeout:   defaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	return &HTTPTarget{endpoint: u.String() + "/analyze", client: client}, nil
}

type analyzeRequest struct {
	Domain string `json:"domain"`
	Query  string `json:"query"`
}

type analyzeResponse struct {
	Success bool `json:"success"`
	Meta    struct {
		FractalCoherence float64 `json:"fractal_coherence"`
	} `json:"meta_cognitive"`
	Quantum *struct {
		Processing bool `json:"quantum_processing"`
	} `json:"quantum_enhancement"`
	Bio *struct {
		Processing bool `json:"bio_processing"`
	} `json:"bio_enhancement"`
	Temporal *struct {
		Processing bool `json:"temporal_processing"`
	} `json:"temporal_enhancement"`
}

func (t *HTTPTarget) Analyze(ctx context.Context, domain, query string) (Outcome, error) {
	body, err := json.Marshal(analyzeRequest{Domain: domain, Query: query})
	if err != nil {
		return Outcome{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return Outcome{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return Outcome{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Outcome{}, fmt.Errorf("analyze: %w %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var r analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Outcome{}, fmt.Errorf("analyze: %w: %w", ErrDecodeResponse, err)
	}
	return Outcome{
		Success:   r.Success,
		Quantum:   stage(r.Quantum != nil, r.Quantum != nil && r.Quantum.Processing),
		Bio:       stage(r.Bio != nil, r.Bio != nil && r.Bio.Processing),
		Temporal:  stage(r.Temporal != nil, r.Temporal != nil && r.Temporal.Processing),
		Coherence: r.Meta.FractalCoherence,
	}, nil
}
