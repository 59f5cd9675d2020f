// Package main is the entry point for the perkpay API server.
package main

import (
	"log"
	"time"

	"perkpay/internal/config"
	"perkpay/internal/repositories"
	"perkpay/internal/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadEnv()

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			if err := repositories.CacheService.Close(); err != nil {
				log.Printf("Failed to close redis connection: %v", err)
			}
		}
	}()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, Stripe-Signature",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// Throttle credential endpoints.
	for _, path := range []string{"/api/register", "/api/login"} {
		app.Use(path, limiter.New(limiter.Config{
			Max:        5,
			Expiration: 1 * time.Minute,
			KeyGenerator: func(c *fiber.Ctx) string {
				return c.IP()
			},
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Too many requests. Please try again later.",
				})
			},
		}))
	}

	routes.SetupRoutes(app, repositories.DB)

	// Expiry is enforced locally: sweep still-active cards past their
	// expiry so mirrored records don't stay active forever.
	cardRepo := repositories.NewCardRepository(repositories.DB)
	go func() {
		interval := config.GetDurationEnv("CARD_EXPIRY_SWEEP_INTERVAL", time.Minute)
		for range time.Tick(interval) {
			n, err := cardRepo.MarkExpired(time.Now())
			if err != nil {
				log.Printf("card expiry sweep failed: %v", err)
			} else if n > 0 {
				log.Printf("card expiry sweep: %d cards expired", n)
			}
		}
	}()

	log.Fatal(app.Listen(":" + config.GetEnv("PORT", "3000")))
}
