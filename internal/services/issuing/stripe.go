package issuing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/issuing/card"
	"github.com/stripe/stripe-go/v72/issuing/cardholder"
	"github.com/stripe/stripe-go/v72/webhook"
)

// StripeCardholderIssuer creates cardholders through Stripe Issuing. Local
// identities map to the "individual" cardholder type and the billing
// address is passed as a single line.
type StripeCardholderIssuer struct{}

func NewStripeCardholderIssuer(apiKey string) *StripeCardholderIssuer {
	stripe.Key = apiKey
	return &StripeCardholderIssuer{}
}

func (s *StripeCardholderIssuer) CreateCardholder(ctx context.Context, req CreateCardholderRequest) (*Cardholder, error) {
	params := &stripe.IssuingCardholderParams{
		Type:        stripe.String("individual"),
		Name:        stripe.String(req.Name),
		Email:       stripe.String(req.Email),
		PhoneNumber: stripe.String(req.Phone),
		Billing: &stripe.IssuingCardholderBillingParams{
			Address: &stripe.AddressParams{
				Line1: stripe.String(req.Address),
			},
		},
	}
	params.Context = ctx

	ch, err := cardholder.New(params)
	if err != nil {
		return nil, &ProviderError{Op: "create cardholder", Err: err}
	}

	return &Cardholder{
		ID:       ch.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Provider: ProviderStripe,
	}, nil
}

// StripeMerchantRegistry validates merchant ids against the provider's
// issuing merchant endpoint.
type StripeMerchantRegistry struct {
	backend stripe.Backend
	key     string
}

func NewStripeMerchantRegistry(apiKey string) *StripeMerchantRegistry {
	return &StripeMerchantRegistry{
		backend: stripe.GetBackend(stripe.APIBackend),
		key:     apiKey,
	}
}

type issuingMerchant struct {
	stripe.APIResource
	ID string `json:"id"`
}

func (r *StripeMerchantRegistry) ValidateMerchant(ctx context.Context, merchantID string) (bool, error) {
	if merchantID == "" {
		return false, nil
	}

	merchant := &issuingMerchant{}
	params := &stripe.Params{Context: ctx}
	err := r.backend.Call(http.MethodGet, "/v1/issuing/merchants/"+merchantID, r.key, params, merchant)
	if err != nil {
		return false, err
	}
	return merchant.ID != "", nil
}

// StripeCardIssuer issues one-time virtual cards through Stripe Issuing.
type StripeCardIssuer struct {
	registry MerchantRegistry
	now      func() time.Time
}

// NewStripeCardIssuer builds the live issuer. Passing a nil registry uses
// the provider-backed merchant registry.
func NewStripeCardIssuer(apiKey string, registry MerchantRegistry) *StripeCardIssuer {
	stripe.Key = apiKey
	if registry == nil {
		registry = NewStripeMerchantRegistry(apiKey)
	}
	return &StripeCardIssuer{
		registry: registry,
		now:      time.Now,
	}
}

func (s *StripeCardIssuer) CreateCard(ctx context.Context, req CreateCardRequest) (*DisposableCard, error) {
	if req.PurchaseAmount <= 0 {
		return nil, &ValidationError{Reason: "purchase amount must be positive"}
	}

	control := resolveSpendingControl(ctx, s.registry, req)
	now := s.now()
	expiresAt := now.Add(time.Duration(normalizeExpiration(req.ExpirationSeconds)) * time.Second)

	controls := &stripe.IssuingCardSpendingControlsParams{
		SpendingLimits: []*stripe.IssuingCardSpendingControlsSpendingLimitParams{
			{
				Amount:   stripe.Int64(req.PurchaseAmount),
				Interval: stripe.String("per_authorization"),
			},
		},
	}
	if len(control.AllowedCategories) > 0 {
		controls.AllowedCategories = stripe.StringSlice(control.AllowedCategories)
	}
	if len(control.BlockedCategories) > 0 {
		controls.BlockedCategories = stripe.StringSlice(control.BlockedCategories)
	}

	params := &stripe.IssuingCardParams{
		Cardholder:       stripe.String(req.CardholderID),
		Currency:         stripe.String(req.Currency),
		Type:             stripe.String("virtual"),
		Status:           stripe.String("active"),
		SpendingControls: controls,
	}
	params.Context = ctx

	// The provider has no second-granularity expiry and no native merchant
	// pin, so both ride along as metadata; expiry is enforced locally and
	// the authorization webhook enforces single use.
	params.AddMetadata("expires_at", expiresAt.UTC().Format(time.RFC3339))
	params.AddMetadata("one_time_use", "true")
	if len(control.AllowedMerchants) > 0 {
		params.AddMetadata("allowed_merchant", control.AllowedMerchants[0])
	}

	c, err := card.New(params)
	if err != nil {
		return nil, &ProviderError{Op: "create card", Err: err}
	}

	return &DisposableCard{
		ID:            c.ID,
		CardholderID:  req.CardholderID,
		Currency:      req.Currency,
		PurchaseLimit: req.PurchaseAmount,
		MerchantID:    req.MerchantID,
		Controls:      control,
		Last4:         c.Last4,
		CreatedAt:     now,
		ExpiresAt:     expiresAt,
		Status:        CardStatusActive,
		Provider:      ProviderStripe,
	}, nil
}

// GetCardDetails returns what the provider discloses for a card: id,
// last-4 and status. Full numbers are never available on this path.
func (s *StripeCardIssuer) GetCardDetails(ctx context.Context, cardID string) (*CardDetails, error) {
	c, err := s.getCard(ctx, cardID)
	if err != nil {
		return nil, err
	}

	details := &CardDetails{DisposableCard: cardFromStripe(c)}
	return details, nil
}

// CancelCard cancels a card at the provider. Cards already canceled are
// left alone; the provider rejects status updates on canceled cards, and
// redelivered events must stay a no-op.
func (s *StripeCardIssuer) CancelCard(ctx context.Context, cardID string) error {
	c, err := s.getCard(ctx, cardID)
	if err != nil {
		return err
	}
	if c.Status == stripe.IssuingCardStatusCanceled {
		return nil
	}

	params := &stripe.IssuingCardParams{
		Status: stripe.String(string(stripe.IssuingCardStatusCanceled)),
	}
	params.Context = ctx

	if _, err := card.Update(cardID, params); err != nil {
		return &ProviderError{Op: "cancel card", Err: err}
	}
	return nil
}

func (s *StripeCardIssuer) getCard(ctx context.Context, cardID string) (*stripe.IssuingCard, error) {
	params := &stripe.IssuingCardParams{}
	params.Context = ctx

	c, err := card.Get(cardID, params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Code == stripe.ErrorCodeResourceMissing {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, cardID)
		}
		return nil, &ProviderError{Op: "get card", Err: err}
	}
	return c, nil
}

func cardFromStripe(c *stripe.IssuingCard) DisposableCard {
	dc := DisposableCard{
		ID:        c.ID,
		Currency:  string(c.Currency),
		Last4:     c.Last4,
		CreatedAt: time.Unix(c.Created, 0),
		Status:    cardStatusFromStripe(c.Status),
		Provider:  ProviderStripe,
	}
	if c.Cardholder != nil {
		dc.CardholderID = c.Cardholder.ID
	}
	if raw, ok := c.Metadata["expires_at"]; ok {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			dc.ExpiresAt = t
		}
	}
	return dc
}

func cardStatusFromStripe(status stripe.IssuingCardStatus) CardStatus {
	switch status {
	case stripe.IssuingCardStatusActive:
		return CardStatusActive
	case stripe.IssuingCardStatusCanceled:
		return CardStatusCanceled
	default:
		return CardStatus(status)
	}
}

// StripeEventVerifier authenticates provider webhook deliveries using the
// endpoint's signing secret.
type StripeEventVerifier struct {
	secret string
}

func NewStripeEventVerifier(secret string) *StripeEventVerifier {
	return &StripeEventVerifier{secret: secret}
}

func (v *StripeEventVerifier) VerifyEvent(payload []byte, signature string) (*AuthorizationEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, v.secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	decoded := &AuthorizationEvent{Type: event.Type}
	if event.Type == EventAuthorizationCreated && event.Data != nil {
		var auth struct {
			Card struct {
				ID string `json:"id"`
			} `json:"card"`
		}
		if err := json.Unmarshal(event.Data.Raw, &auth); err != nil {
			return nil, fmt.Errorf("%w: malformed authorization object", ErrInvalidSignature)
		}
		decoded.CardID = auth.Card.ID
	}
	return decoded, nil
}
