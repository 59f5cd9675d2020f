package issuing

import (
	"context"
	"fmt"
)

// EventAuthorizationCreated is the provider event emitted when a card sees
// its first authorization attempt.
const EventAuthorizationCreated = "issuing.authorization.created"

// AuthorizationEvent is a verified, decoded provider usage event.
type AuthorizationEvent struct {
	Type   string
	CardID string
}

// EventVerifier authenticates a raw webhook payload and decodes it into an
// AuthorizationEvent. Verification failures return ErrInvalidSignature.
type EventVerifier interface {
	VerifyEvent(payload []byte, signature string) (*AuthorizationEvent, error)
}

// authorizationPayload is the wire shape shared by the mock and live
// providers for issuing.authorization.created events.
type authorizationPayload struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Card struct {
				ID string `json:"id"`
			} `json:"card"`
		} `json:"object"`
	} `json:"data"`
}

// LifecycleController closes the one-time-use gap: spending limits are
// per-authorization, not cumulative, so the provider alone cannot stop a
// second charge within the limit. The controller cancels a card as soon as
// its first authorization is observed. This is a compensating control, not
// a hard guarantee; authorizations racing the cancellation can still land.
type LifecycleController struct {
	issuer   CardIssuer
	verifier EventVerifier
}

func NewLifecycleController(issuer CardIssuer, verifier EventVerifier) *LifecycleController {
	return &LifecycleController{
		issuer:   issuer,
		verifier: verifier,
	}
}

// HandleAuthorizationEvent verifies and processes one provider event. It
// returns the id of the card it canceled, or an empty id for events that
// need no action. Cancellation errors are returned to the caller so the
// provider's delivery system can redeliver; the controller does not retry.
// Redelivered events for an already-canceled card are a no-op because
// CancelCard is idempotent in effect.
func (c *LifecycleController) HandleAuthorizationEvent(ctx context.Context, payload []byte, signature string) (string, error) {
	event, err := c.verifier.VerifyEvent(payload, signature)
	if err != nil {
		return "", err
	}

	if event.Type != EventAuthorizationCreated || event.CardID == "" {
		return "", nil
	}

	if err := c.issuer.CancelCard(ctx, event.CardID); err != nil {
		return "", fmt.Errorf("cancel card %s: %w", event.CardID, err)
	}
	return event.CardID, nil
}
