package model

import "time"

// Analysis is the persisted summary of one archived query analysis.
// The full report lives in object storage under ReportKey.
type Analysis struct {
	ID             string    `json:"id"`
	Domain         string    `json:"domain"`
	Query          string    `json:"query"`
	Language       string    `json:"language"`
	Success        bool      `json:"success"`
	Confidence     float64   `json:"confidence"`
	Complexity     int       `json:"complexity"`
	PrimaryMeaning string    `json:"primary_meaning"`
	Concepts       []string  `json:"concepts"`
	ReportKey      string    `json:"report_key"`
	DurationMS     int64     `json:"duration_ms"`
	CreatedAt      time.Time `json:"created_at"`
}
