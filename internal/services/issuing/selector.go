package issuing

// ProviderSet bundles the issuer pair and event verifier selected for a
// deployment environment.
type ProviderSet struct {
	Provider    Provider
	Cardholders CardholderIssuer
	Cards       CardIssuer
	Verifier    EventVerifier
}

// SelectProvider chooses the concrete implementations for an environment.
// Only an environment of exactly "production" gets the live pair; every
// other value selects the simulated one. The selection happens once at
// startup, never per request.
func SelectProvider(env, stripeKey, stripeWebhookSecret, mockWebhookSecret string) ProviderSet {
	if env == "production" {
		return ProviderSet{
			Provider:    ProviderStripe,
			Cardholders: NewStripeCardholderIssuer(stripeKey),
			Cards:       NewStripeCardIssuer(stripeKey, nil),
			Verifier:    NewStripeEventVerifier(stripeWebhookSecret),
		}
	}
	return ProviderSet{
		Provider:    ProviderMock,
		Cardholders: NewMockCardholderIssuer(),
		Cards:       NewMockCardIssuer(),
		Verifier:    NewMockEventVerifier(mockWebhookSecret),
	}
}
