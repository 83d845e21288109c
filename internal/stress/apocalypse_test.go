package stress

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atlas/internal/atlas"
)

type domainTarget map[string]struct {
	out Outcome
	err error
}

func (d domainTarget) Analyze(_ context.Context, domain, _ string) (Outcome, error) {
	r, ok := d[domain]
	if !ok {
		return Outcome{Success: true, Quantum: StageActive, Bio: StageActive, Temporal: StageActive, Coherence: 1}, nil
	}
	return r.out, r.err
}

func TestResilience(t *testing.T) {
	tests := []struct {
		name string
		in   Outcome
		want float64
	}{
		{"healthy clamps at 100", Outcome{Success: true, Quantum: StageActive, Coherence: 1}, 100},
		{"absent stages are not penalized", Outcome{Success: true}, 100},
		{"failure without coherence", Outcome{}, 60},
		{"quantum down, medium coherence", Outcome{Success: true, Quantum: StageUnavailable, Coherence: 0.6}, 85},
		{"everything down", Outcome{Quantum: StageUnavailable, Bio: StageUnavailable, Temporal: StageUnavailable, Coherence: 0.5}, 10},
		{"failure with low coherence", Outcome{Coherence: 0.5}, 60},
		{"failure with partial coherence", Outcome{Coherence: 0.51}, 65},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Resilience(tt.in), 1e-9)
		})
	}
}

func TestStatuses(t *testing.T) {
	assert.Equal(t, "SURVIVED", ScenarioStatus(70))
	assert.Equal(t, "DAMAGED", ScenarioStatus(69.9))
	assert.Equal(t, "DAMAGED", ScenarioStatus(40))
	assert.Equal(t, "COLLAPSED", ScenarioStatus(39))

	assert.Equal(t, "APOCALYPSE SURVIVOR", OverallStatus(80))
	assert.Equal(t, "QUANTUM RESILIENT", OverallStatus(60))
	assert.Equal(t, "REALITY COLLAPSE", OverallStatus(59.9))
}

func TestRunScenarios(t *testing.T) {
	target := domainTarget{
		"neuroscience": {out: Outcome{Success: true, Quantum: StageUnavailable, Bio: StageActive, Coherence: 0.7}},
		"cosmology":    {err: errors.New("boom")},
	}

	rep, err := RunScenarios(context.Background(), target)
	require.NoError(t, err)

	want := []ScenarioResult{
		{Scenario: "quantum_decoherence_cascade", Success: true, QuantumActive: true, BioActive: true, TemporalActive: true, Coherence: 1, Resilience: 100, Status: "SURVIVED"},
		{Scenario: "neural_entanglement_overload", Success: true, BioActive: true, Coherence: 0.7, Resilience: 85, Status: "SURVIVED"},
		{Scenario: "temporal_paradox_cascade", Success: true, QuantumActive: true, BioActive: true, TemporalActive: true, Coherence: 1, Resilience: 100, Status: "SURVIVED"},
		{Scenario: "cognitive_singularity_collapse", Success: true, QuantumActive: true, BioActive: true, TemporalActive: true, Coherence: 1, Resilience: 100, Status: "SURVIVED"},
		{Scenario: "multiversal_reality_breach", Error: "boom", Status: "COLLAPSED"},
	}
	if diff := cmp.Diff(want, rep.Scenarios, cmpopts.IgnoreFields(ScenarioResult{}, "Duration")); diff != "" {
		t.Fatalf("scenarios mismatch (-want +got):\n%s", diff)
	}
	assert.InDelta(t, 77, rep.Score, 1e-9)
	assert.Equal(t, "QUANTUM RESILIENT", rep.Status)
}

func TestRunScenarios_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := RunScenarios(ctx, domainTarget{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunScenarios_WithCore(t *testing.T) {
	core := atlas.New(atlas.WithLogger(zerolog.Nop()))
	rep, err := RunScenarios(context.Background(), NewCoreTarget(core))
	require.NoError(t, err)

	require.Len(t, rep.Scenarios, len(Scenarios))
	for _, s := range rep.Scenarios {
		assert.True(t, s.Success, s.Scenario)
		assert.Equal(t, "SURVIVED", s.Status, s.Scenario)
	}
	assert.Equal(t, "APOCALYPSE SURVIVOR", rep.Status)

	var buf bytes.Buffer
	_, err = rep.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Quantum Decoherence Cascade")
	assert.Contains(t, buf.String(), "🏆 STATUS: APOCALYPSE SURVIVOR")
}
