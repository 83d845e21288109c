package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type diagnosticsResponse struct {
	SystemHealth      string    `json:"system_health"`
	ModulesLoaded     int       `json:"modules_loaded"`
	QuantumProcessing string    `json:"quantum_processing"`
	BioIntegration    string    `json:"bio_integration"`
	TemporalMemory    string    `json:"temporal_memory"`
	PerformanceLevel  string    `json:"performance_level"`
	AnalysisTimestamp time.Time `json:"analysis_timestamp"`
}

// SystemStatus godoc
// @Summary  Full engine status
// @Tags     system
// @Produce  json
// @Success  200 {object} atlas.Status
// @Router   /status [get]
func SystemStatus(core Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(core.Status(c.UserContext()))
	}
}

// Diagnostics godoc
// @Summary  Short engine health summary
// @Tags     system
// @Produce  json
// @Success  200 {object} diagnosticsResponse
// @Router   /diagnostics [get]
func Diagnostics(core Core) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st := core.Status(c.UserContext())
		health := "optimal"
		if !st.State.Operational {
			health = "degraded"
		}
		return c.JSON(diagnosticsResponse{
			SystemHealth:      health,
			ModulesLoaded:     st.ModulesLoaded,
			QuantumProcessing: st.State.Quantum,
			BioIntegration:    st.State.Bio,
			TemporalMemory:    st.State.Temporal,
			PerformanceLevel:  st.State.PerformanceLevel,
			AnalysisTimestamp: time.Now().UTC().Truncate(time.Second),
		})
	}
}
