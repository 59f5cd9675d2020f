package handlers

import (
	"perkpay/internal/repositories"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck reports service liveness and cache reachability.
func HealthCheck(c *fiber.Ctx) error {
	cacheStatus := "disabled"
	if repositories.CacheService != nil {
		cacheStatus = "ok"
		if err := repositories.CacheService.HealthCheck(c.Context()); err != nil {
			cacheStatus = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"status": "ok",
		"cache":  cacheStatus,
	})
}
