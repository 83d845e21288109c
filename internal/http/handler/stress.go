package handler

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"atlas/internal/stress"
)

const (
	defaultStressWorkers  = 10
	defaultStressDuration = 10 * time.Second
)

// StressLimits caps what a single POST /stress may request.
type StressLimits struct {
	MaxWorkers  int
	MaxDuration time.Duration
}

func (l StressLimits) withDefaults() StressLimits {
	if l.MaxWorkers <= 0 {
		l.MaxWorkers = 50
	}
	if l.MaxDuration <= 0 {
		l.MaxDuration = time.Minute
	}
	return l
}

type stressBody struct {
	Workers     int     `json:"workers"`
	DurationSec float64 `json:"duration_sec"`
	RateLimit   float64 `json:"rate_limit"`
	Scenarios   bool    `json:"scenarios"`
}

// RunStress godoc
// @Summary  Run an in-process load test or the apocalypse scenarios
// @Tags     system
// @Accept   json
// @Produce  json
// @Param    body body stressBody false "Load parameters"
// @Success  200 {object} stress.Report
// @Failure  400 {object} errorPayload
// @Router   /stress [post]
func RunStress(core Core, limits StressLimits) fiber.Handler {
	limits = limits.withDefaults()
	return func(c *fiber.Ctx) error {
		var body stressBody
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&body); err != nil {
				return invalidBody(c)
			}
		}
		target := stress.NewCoreTarget(core)

		if body.Scenarios {
			rep, err := stress.RunScenarios(c.UserContext(), target)
			if err != nil {
				return internalError(c, err)
			}
			return c.JSON(rep)
		}

		if body.Workers < 0 || body.Workers > limits.MaxWorkers {
			return writeError(c, fiber.StatusBadRequest, "INVALID_WORKERS", "workers out of range")
		}
		if body.RateLimit < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_RATE_LIMIT", "rate_limit must not be negative")
		}
		d := time.Duration(body.DurationSec * float64(time.Second))
		if d < 0 || d > limits.MaxDuration {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DURATION", "duration out of range")
		}
		if body.Workers == 0 {
			body.Workers = defaultStressWorkers
		}
		if d == 0 {
			d = min(defaultStressDuration, limits.MaxDuration)
		}

		r := stress.Runner{
			Workers:  body.Workers,
			Duration: d,
			Limit:    rate.Limit(body.RateLimit),
			Burst:    1,
			Log:      loggerFor(c),
		}
		rep, err := r.Run(c.UserContext(), target)
		if err != nil {
			if errors.Is(err, stress.ErrInvalidRunner) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_STRESS", err.Error())
			}
			return internalError(c, err)
		}
		return c.JSON(rep)
	}
}
