// Package routes wires repositories, services, and handlers into the
// application's HTTP routing table.
package routes

import (
	"perkpay/internal/config"
	"perkpay/internal/handlers"
	"perkpay/internal/middleware"
	"perkpay/internal/repositories"
	"perkpay/internal/services/auth"
	"perkpay/internal/services/issuing"
	"perkpay/internal/services/points"
	"perkpay/internal/services/user"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	profileRepo := repositories.NewProfileRepository(db)
	cardholderRepo := repositories.NewCardholderRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	pointsRepo := repositories.NewPointsRepository(db)

	// Card-issuing provider, selected once at startup.
	providers := issuing.SelectProvider(
		config.Env(),
		config.GetEnv("STRIPE_SECRET_KEY", ""),
		config.GetEnv("STRIPE_WEBHOOK_SECRET", ""),
		config.GetEnv("MOCK_WEBHOOK_SECRET", "perkpay-dev-secret"),
	)
	lifecycle := issuing.NewLifecycleController(providers.Cards, providers.Verifier)

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, profileRepo, cardholderRepo, pointsRepo, providers.Cardholders, providers.Provider)
	pointsService := points.NewService(pointsRepo, repositories.CacheService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	profileHandler := handlers.NewProfileHandler(profileRepo)
	pointsHandler := handlers.NewPointsHandler(pointsService)
	rewardsHandler := handlers.NewRewardsHandler(pointsService)
	cardHandler := handlers.NewCardHandler(providers.Cards, providers.Provider, cardRepo, cardholderRepo)
	webhookHandler := handlers.NewWebhookHandler(lifecycle, cardRepo)

	app.Get("/health", handlers.HealthCheck)

	// Provider webhooks authenticate by signature, not bearer token.
	app.Post("/webhooks/stripe", webhookHandler.HandleIssuingEvent)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected endpoints
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Post("/logout", authHandler.LogoutUser)
	protected.Post("/change-password", authHandler.ChangePassword)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	protected.Get("/points", pointsHandler.GetPoints)
	protected.Post("/points/add", pointsHandler.AddPoints)

	protected.Get("/rewards/redeemed", rewardsHandler.ListRedeemed)
	protected.Post("/rewards/redeem", rewardsHandler.RedeemReward)

	protected.Post("/cards", cardHandler.CreateCard)
	protected.Get("/cards", cardHandler.ListCards)
	protected.Get("/cards/:id", cardHandler.GetCard)
}
