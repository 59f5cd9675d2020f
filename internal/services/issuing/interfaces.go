package issuing

import "context"

// CardholderIssuer creates a billing identity with a card-issuing
// provider. The caller is responsible for persisting the returned id.
type CardholderIssuer interface {
	CreateCardholder(ctx context.Context, req CreateCardholderRequest) (*Cardholder, error)
}

// CardIssuer creates and manages constrained single-use virtual cards.
//
// CreateCard issues a card capped at the request's purchase amount per
// authorization and scoped by the resolved spending control. It returns a
// *ValidationError for non-positive amounts and a *ProviderError when the
// provider call fails. Retried calls mint a second card; callers must
// deduplicate if they retry.
//
// CancelCard is idempotent in effect: canceling an already-canceled card
// is a no-op, so webhook redelivery is safe.
type CardIssuer interface {
	CreateCard(ctx context.Context, req CreateCardRequest) (*DisposableCard, error)
	GetCardDetails(ctx context.Context, cardID string) (*CardDetails, error)
	CancelCard(ctx context.Context, cardID string) error
}

// MerchantRegistry answers whether a merchant id is known to the provider.
// Lookup failures are treated by callers as "merchant invalid", not as
// errors; see resolveSpendingControl.
type MerchantRegistry interface {
	ValidateMerchant(ctx context.Context, merchantID string) (bool, error)
}
