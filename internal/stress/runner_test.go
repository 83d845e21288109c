package stress

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/time/rate"

	"atlas/internal/atlas"
)

type recordingTarget struct {
	mu      sync.Mutex
	domains map[string]int
	queries []string
	out     Outcome
	err     error
}

func (r *recordingTarget) Analyze(_ context.Context, domain, query string) (Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.domains == nil {
		r.domains = map[string]int{}
	}
	r.domains[domain]++
	r.queries = append(r.queries, query)
	return r.out, r.err
}

func quietRunner(workers int, d time.Duration) Runner {
	nop := zerolog.Nop()
	return Runner{Workers: workers, Duration: d, Seed: 7, Log: &nop}
}

func TestVerdict(t *testing.T) {
	tests := []struct {
		qps, rate float64
		want      string
	}{
		{1500, 99, "ELITE PERFORMANCE"},
		{1500, 94, "HIGH PERFORMANCE"},
		{600, 90, "HIGH PERFORMANCE"},
		{499, 99, "GOOD PERFORMANCE"},
		{100, 80, "GOOD PERFORMANCE"},
		{99, 100, "NEEDS OPTIMIZATION"},
		{2000, 50, "NEEDS OPTIMIZATION"},
	}
	for _, tt := range tests {
		got, verdict := Verdict(tt.qps, tt.rate)
		assert.Equal(t, tt.want, got, "qps=%v rate=%v", tt.qps, tt.rate)
		assert.NotEmpty(t, verdict)
	}
}

func TestLoadIndicator(t *testing.T) {
	assert.Equal(t, "🌋", LoadIndicator(1001))
	assert.Equal(t, "🔥", LoadIndicator(1000))
	assert.Equal(t, "⚡", LoadIndicator(101))
	assert.Equal(t, "💥", LoadIndicator(100))
}

func TestQuery(t *testing.T) {
	assert.Equal(t, "neural plasticity worker_3_query_12", Query("neural plasticity", 3, 12))
}

func TestRun_CountsOutcomes(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &recordingTarget{out: Outcome{Success: true, Quantum: StageUnavailable, Bio: StageActive, Coherence: 1}}
	rep, err := quietRunner(4, 80*time.Millisecond).Run(context.Background(), target)
	require.NoError(t, err)

	assert.Positive(t, rep.Total)
	assert.Equal(t, int64(len(target.queries)), rep.Total)
	assert.Equal(t, rep.Total, rep.Successful)
	assert.Zero(t, rep.Failed)
	assert.Equal(t, rep.Total, rep.QuantumFailures)
	assert.Zero(t, rep.BioFailures)
	assert.Zero(t, rep.TemporalFailures)
	assert.InDelta(t, 100, rep.SuccessRate, 1e-9)
	assert.Positive(t, rep.QPS)
	assert.Equal(t, 4, rep.Workers)

	suffix := regexp.MustCompile(` worker_[0-3]_query_\d+$`)
	for _, q := range target.queries {
		assert.Regexp(t, suffix, q)
		assert.True(t, slices.ContainsFunc(baseQueries, func(b string) bool { return len(q) > len(b) && q[:len(b)] == b }), q)
	}
	for d := range target.domains {
		assert.Contains(t, loadDomains, d)
	}
}

func TestRun_ErrorsCountAsFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &recordingTarget{err: errors.New("connection refused"), out: Outcome{Success: true}}
	rep, err := quietRunner(2, 50*time.Millisecond).Run(context.Background(), target)
	require.NoError(t, err)

	assert.Zero(t, rep.Total)
	assert.Positive(t, rep.Failed)
	assert.Zero(t, rep.Successful)
	assert.Zero(t, rep.SuccessRate)
	assert.Equal(t, map[string]int64{"other": rep.Failed}, rep.ErrorTypes)
	assert.Equal(t, "NEEDS OPTIMIZATION", rep.Status)
}

func TestRun_UnsuccessfulResultsCountInTotal(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &recordingTarget{out: Outcome{Success: false}}
	rep, err := quietRunner(2, 50*time.Millisecond).Run(context.Background(), target)
	require.NoError(t, err)

	assert.Positive(t, rep.Total)
	assert.Equal(t, rep.Total, rep.Failed)
	assert.Empty(t, rep.ErrorTypes)
}

func TestRun_SamplesStability(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := quietRunner(2, 200*time.Millisecond)
	r.SampleInterval = 20 * time.Millisecond
	r.PhaseInterval = 60 * time.Millisecond
	rep, err := r.Run(context.Background(), &recordingTarget{out: Outcome{Success: true}})
	require.NoError(t, err)

	require.NotEmpty(t, rep.History)
	for i := 1; i < len(rep.History); i++ {
		assert.Greater(t, rep.History[i].Elapsed, rep.History[i-1].Elapsed)
		assert.GreaterOrEqual(t, rep.History[i].Total, rep.History[i-1].Total)
	}
	require.NotEmpty(t, rep.Phases)
	assert.Equal(t, 1, rep.Phases[0].Number)
	assert.Zero(t, rep.Phases[0].ErrorRate)

	require.NotNil(t, rep.Stability)
	assert.Equal(t, len(rep.Phases), rep.Stability.Phases)
	assert.GreaterOrEqual(t, rep.Stability.Score, 0.0)
	assert.LessOrEqual(t, rep.Stability.Score, 100.0)
	assert.NotEmpty(t, rep.Stability.Level)

	_, err = Runner{Workers: 1, Duration: time.Second, SampleInterval: -1}.Run(context.Background(), &recordingTarget{})
	assert.ErrorIs(t, err, ErrInvalidRunner)
}

func TestRun_RateLimited(t *testing.T) {
	defer goleak.VerifyNone(t)

	r := quietRunner(3, 250*time.Millisecond)
	r.Limit = rate.Limit(20)
	r.Burst = 1
	target := &recordingTarget{out: Outcome{Success: true}}

	rep, err := r.Run(context.Background(), target)
	require.NoError(t, err)
	assert.Positive(t, rep.Total)
	assert.LessOrEqual(t, rep.Total, int64(8))
}

func TestRun_Invalid(t *testing.T) {
	_, err := quietRunner(0, time.Second).Run(context.Background(), &recordingTarget{})
	assert.ErrorIs(t, err, ErrInvalidRunner)

	_, err = quietRunner(1, 0).Run(context.Background(), &recordingTarget{})
	assert.ErrorIs(t, err, ErrInvalidRunner)
}

func TestRun_ParentCanceled(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	target := &recordingTarget{}

	rep, err := quietRunner(2, time.Second).Run(ctx, target)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, rep)
	assert.Zero(t, rep.Total)
	assert.Empty(t, target.queries)
}

func TestRun_WithCore(t *testing.T) {
	defer goleak.VerifyNone(t)

	core := atlas.New(atlas.WithLogger(zerolog.Nop()))
	rep, err := quietRunner(2, 100*time.Millisecond).Run(context.Background(), NewCoreTarget(core))
	require.NoError(t, err)

	assert.Positive(t, rep.Total)
	assert.Equal(t, rep.Total, rep.Successful)
	assert.Zero(t, rep.QuantumFailures+rep.BioFailures+rep.TemporalFailures)
}

func TestReport_WriteTo_Stability(t *testing.T) {
	rep := &Report{
		Failed:     4,
		ErrorTypes: map[string]int64{"timeout": 3, "transport": 1},
		Phases:     []Phase{{Number: 1, QPS: 420, Stability: "STABLE", ErrorRate: 0.5}},
		Stability:  &Stability{Score: 92.5, Level: "EXCELLENT", MaxVariance: 31.5, Trend: "STABLE", Phases: 1, Status: "PRODUCTION READY"},
	}

	var buf bytes.Buffer
	_, err := rep.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "🎯 EXCELLENT (Score: 92.5/100)")
	assert.Contains(t, out, "📈 Maximum QPS Variance: 31.5")
	assert.Contains(t, out, "   timeout: 3 (75.0%)")
	assert.Contains(t, out, "   transport: 1 (25.0%)")
	assert.Contains(t, out, "Phase 1:  420.0 QPS | 🟢 STABLE | Err: 0.5%")
	assert.Contains(t, out, "🏁 STABILITY VERDICT: PRODUCTION READY")
}

func TestReport_WriteTo(t *testing.T) {
	rep := &Report{Total: 1200, Successful: 1140, Failed: 60, Duration: 2 * time.Second, QPS: 600, SuccessRate: 95}
	rep.Status, rep.Verdict = Verdict(rep.QPS, rep.SuccessRate)

	var buf bytes.Buffer
	n, err := rep.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	out := buf.String()
	assert.Contains(t, out, "✅ Total Queries: 1200")
	assert.Contains(t, out, "❌ Failed Queries: 60")
	assert.Contains(t, out, "🚀 Average QPS: 600.0 🔥")
	assert.Contains(t, out, "📈 Success Rate: 95.0%")
	assert.Contains(t, out, "🎯 STATUS: HIGH PERFORMANCE")
}
