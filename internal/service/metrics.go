package service

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalysisMetrics records archived analyses.
type AnalysisMetrics struct {
	analyses *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewAnalysisMetrics creates the analysis collectors and registers them on reg.
func NewAnalysisMetrics(reg prometheus.Registerer) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{
		analyses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "atlas_analyses_total",
				Help: "Total number of analyses processed.",
			},
			[]string{"domain", "success"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "atlas_analysis_duration_seconds",
				Help:    "Duration of core analyses.",
				Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
			},
			[]string{"domain"},
		),
	}
	for _, c := range []prometheus.Collector{m.analyses, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *AnalysisMetrics) observe(domain string, success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.analyses.WithLabelValues(domain, strconv.FormatBool(success)).Inc()
	m.duration.WithLabelValues(domain).Observe(d.Seconds())
}
