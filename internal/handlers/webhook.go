package handlers

import (
	"errors"
	"log"

	"perkpay/internal/models"
	"perkpay/internal/repositories"
	"perkpay/internal/services/issuing"
	"perkpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// WebhookHandler receives card usage events from the issuing provider and
// feeds them to the lifecycle controller.
type WebhookHandler struct {
	controller *issuing.LifecycleController
	cards      repositories.CardRepository
}

func NewWebhookHandler(controller *issuing.LifecycleController, cards repositories.CardRepository) *WebhookHandler {
	return &WebhookHandler{
		controller: controller,
		cards:      cards,
	}
}

// HandleIssuingEvent processes a provider webhook delivery. Invalid
// signatures get a 400 with no state change. Cancellation failures get a
// 502 so the provider redelivers the event.
func (h *WebhookHandler) HandleIssuingEvent(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	canceledID, err := h.controller.HandleAuthorizationEvent(c.Context(), payload, signature)
	if err != nil {
		if errors.Is(err, issuing.ErrInvalidSignature) {
			return utils.BadRequest(c, "Invalid signature")
		}
		log.Printf("webhook processing failed: %v", err)
		return utils.BadGateway(c, "Event processing failed")
	}

	if canceledID != "" {
		// Mirror the provider-side cancellation locally. Cards issued
		// outside this system have no record; that is not an error.
		if err := h.cards.UpdateStatus(canceledID, models.CardStatusCanceled); err != nil &&
			!errors.Is(err, repositories.ErrCardNotFound) {
			log.Printf("failed to mirror cancellation of card %s: %v", canceledID, err)
		}
	}

	return utils.Success(c, fiber.Map{"status": "success"})
}
