package handlers

import (
	"errors"
	"log"

	"perkpay/internal/middleware"
	"perkpay/internal/models"
	"perkpay/internal/repositories"
	"perkpay/internal/services/issuing"
	"perkpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// CardHandler exposes disposable card issuance and lookup.
type CardHandler struct {
	issuer      issuing.CardIssuer
	provider    issuing.Provider
	cards       repositories.CardRepository
	cardholders repositories.CardholderRepository
}

func NewCardHandler(
	issuer issuing.CardIssuer,
	provider issuing.Provider,
	cards repositories.CardRepository,
	cardholders repositories.CardholderRepository,
) *CardHandler {
	return &CardHandler{
		issuer:      issuer,
		provider:    provider,
		cards:       cards,
		cardholders: cardholders,
	}
}

// CreateCard issues a one-time virtual card scoped to a single purchase.
// The cardholder id defaults to the caller's mapping for the selected
// provider when the request omits it.
func (h *CardHandler) CreateCard(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var req issuing.CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if req.Currency == "" {
		req.Currency = "usd"
	}

	if req.CardholderID == "" {
		mapping, err := h.cardholders.GetByUserAndProvider(claims.UserID, string(h.provider))
		if err != nil {
			if errors.Is(err, repositories.ErrCardholderNotFound) {
				return utils.BadRequest(c, "No cardholder registered for this user")
			}
			return utils.InternalError(c, "Failed to resolve cardholder")
		}
		req.CardholderID = mapping.CardholderID
	}

	card, err := h.issuer.CreateCard(c.Context(), req)
	if err != nil {
		var valErr *issuing.ValidationError
		if errors.As(err, &valErr) {
			return utils.BadRequest(c, valErr.Error())
		}
		var provErr *issuing.ProviderError
		if errors.As(err, &provErr) {
			log.Printf("card creation failed: %v", err)
			return utils.BadGateway(c, "Card creation failed at provider")
		}
		return utils.InternalError(c, "Card creation failed")
	}

	record := &models.DisposableCard{
		UserID:        claims.UserID,
		CardID:        card.ID,
		CardholderID:  card.CardholderID,
		Currency:      card.Currency,
		PurchaseLimit: card.PurchaseLimit,
		MerchantID:    card.MerchantID,
		LastFour:      card.Last4,
		Status:        string(card.Status),
		ExpiresAt:     card.ExpiresAt,
		Provider:      string(card.Provider),
	}
	if err := h.cards.Create(record); err != nil {
		// The provider card exists either way; the local mirror failing
		// should not hide the card from the caller.
		log.Printf("failed to persist card %s: %v", card.ID, err)
	}

	return utils.Created(c, card)
}

// GetCard returns the issuer's detail for one of the caller's cards.
func (h *CardHandler) GetCard(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	cardID := c.Params("id")

	record, err := h.cards.GetByCardID(cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return utils.NotFound(c, "Card not found")
		}
		return utils.InternalError(c, "Failed to fetch card")
	}
	if record.UserID != claims.UserID {
		return utils.NotFound(c, "Card not found")
	}

	details, err := h.issuer.GetCardDetails(c.Context(), cardID)
	if err != nil {
		if errors.Is(err, issuing.ErrNotFound) {
			return utils.NotFound(c, "Card not found")
		}
		log.Printf("card detail lookup failed: %v", err)
		return utils.BadGateway(c, "Failed to fetch card details")
	}

	return utils.Success(c, details)
}

// ListCards returns the caller's persisted card records.
func (h *CardHandler) ListCards(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	cards, err := h.cards.ListByUserID(claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch cards")
	}
	return utils.Success(c, cards)
}
