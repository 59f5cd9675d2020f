package handlers

import (
	"errors"
	"log"

	"perkpay/internal/models"
	"perkpay/internal/services/issuing"
	"perkpay/internal/services/user"
	"perkpay/internal/utils"
	"perkpay/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService user.Service
}

func NewUserHandler(userService user.Service) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// RegisterUser creates the user, profile, points row, and a cardholder at
// the selected card-issuing provider.
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	v := validation.New()
	v.UserRegistration(&input)
	if !v.Valid() {
		return utils.BadRequest(c, v.First())
	}

	created, cardholder, err := h.userService.Register(c.Context(), input)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return utils.Conflict(c, "Email already registered")
		}
		var provErr *issuing.ProviderError
		if errors.As(err, &provErr) {
			log.Printf("cardholder creation failed: %v", err)
			return utils.BadGateway(c, "Failed to create cardholder with provider")
		}
		log.Printf("registration failed: %v", err)
		return utils.InternalError(c, "Registration failed")
	}

	return utils.Created(c, fiber.Map{
		"message":       "User registered successfully",
		"user":          created,
		"cardholder_id": cardholder.CardholderID,
		"provider":      cardholder.Provider,
	})
}
