package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"atlas/internal/memory"
)

// MemoryMetrics godoc
// @Summary  Temporal memory statistics
// @Tags     memories
// @Produce  json
// @Success  200 {object} memory.Metrics
// @Failure  503 {object} errorPayload
// @Router   /memories/metrics [get]
func MemoryMetrics(store memory.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "MEMORY_DISABLED", "temporal memory disabled")
		}
		m, err := store.Metrics(c.UserContext())
		if err != nil {
			return internalError(c, err)
		}
		return c.JSON(m)
	}
}

// GetMemory godoc
// @Summary  Recall a stored memory
// @Tags     memories
// @Produce  json
// @Param    id path string true "Memory ID"
// @Success  200 {object} memory.Recall
// @Failure  404 {object} errorPayload
// @Router   /memories/{id} [get]
func GetMemory(store memory.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if store == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "MEMORY_DISABLED", "temporal memory disabled")
		}
		r, err := store.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			if errors.Is(err, memory.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "memory not found")
			}
			return internalError(c, err)
		}
		return c.JSON(r)
	}
}
