package issuing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCardholderIssuer_CreateCardholder(t *testing.T) {
	issuer := NewMockCardholderIssuer()

	ch, err := issuer.CreateCardholder(context.Background(), CreateCardholderRequest{
		Name:    "Ada Lovelace",
		Email:   "ada@example.com",
		Phone:   "+15550001111",
		Address: "12 Analytical Way",
	})
	require.NoError(t, err)

	assert.Contains(t, ch.ID, "mock_cardholder_")
	assert.Equal(t, "Ada Lovelace", ch.Name)
	assert.Equal(t, ProviderMock, ch.Provider)

	other, err := issuer.CreateCardholder(context.Background(), CreateCardholderRequest{Name: "Second"})
	require.NoError(t, err)
	assert.NotEqual(t, ch.ID, other.ID)
}

func TestMockCardIssuer_CreateCard(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateCardRequest
		wantErr bool
	}{
		{
			name: "zero amount is rejected",
			req:  CreateCardRequest{CardholderID: "ch_1", PurchaseAmount: 0, Currency: "usd"},

			wantErr: true,
		},
		{
			name:    "negative amount is rejected",
			req:     CreateCardRequest{CardholderID: "ch_1", PurchaseAmount: -100, Currency: "usd"},
			wantErr: true,
		},
		{
			name: "valid request issues an active card",
			req:  CreateCardRequest{CardholderID: "ch_1", PurchaseAmount: 1000, Currency: "usd", MerchantID: "m_1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := NewMockCardIssuer()
			card, err := issuer.CreateCard(context.Background(), tt.req)

			if tt.wantErr {
				var valErr *ValidationError
				assert.ErrorAs(t, err, &valErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.PurchaseAmount, card.PurchaseLimit)
			assert.Equal(t, tt.req.Currency, card.Currency)
			assert.Equal(t, CardStatusActive, card.Status)
			assert.Equal(t, ProviderMock, card.Provider)
			assert.Len(t, card.Last4, 4)
		})
	}
}

func TestMockCardIssuer_ExpiryWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewMockCardIssuer()
	issuer.now = func() time.Time { return now }

	card, err := issuer.CreateCard(context.Background(), CreateCardRequest{
		CardholderID:      "ch_1",
		PurchaseAmount:    1000,
		Currency:          "usd",
		ExpirationSeconds: 60,
	})
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, card.ExpiresAt.Sub(card.CreatedAt))

	defaulted, err := issuer.CreateCard(context.Background(), CreateCardRequest{
		CardholderID:   "ch_1",
		PurchaseAmount: 1000,
		Currency:       "usd",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Duration(DefaultExpirationSeconds)*time.Second, defaulted.ExpiresAt.Sub(defaulted.CreatedAt))
}

func TestMockCardIssuer_GetCardDetails(t *testing.T) {
	issuer := NewMockCardIssuer()

	_, err := issuer.GetCardDetails(context.Background(), "mock_card_unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	card, err := issuer.CreateCard(context.Background(), CreateCardRequest{
		CardholderID:   "ch_1",
		PurchaseAmount: 1000,
		Currency:       "usd",
	})
	require.NoError(t, err)

	details, err := issuer.GetCardDetails(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, card.ID, details.ID)
	assert.Len(t, details.Number, 16)
	assert.Len(t, details.CVC, 3)
	assert.Equal(t, mockHolderName, details.HolderName)
	assert.Equal(t, details.Number[12:], details.Last4)
}

func TestMockCardIssuer_CancelCard(t *testing.T) {
	issuer := NewMockCardIssuer()

	err := issuer.CancelCard(context.Background(), "mock_card_unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	card, err := issuer.CreateCard(context.Background(), CreateCardRequest{
		CardholderID:   "ch_1",
		PurchaseAmount: 1000,
		Currency:       "usd",
	})
	require.NoError(t, err)

	require.NoError(t, issuer.CancelCard(context.Background(), card.ID))

	details, err := issuer.GetCardDetails(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, CardStatusCanceled, details.Status)

	// Second cancellation is a no-op, not an error.
	require.NoError(t, issuer.CancelCard(context.Background(), card.ID))
}

func TestMockCardIssuer_LocalExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewMockCardIssuer()
	issuer.now = func() time.Time { return now }

	card, err := issuer.CreateCard(context.Background(), CreateCardRequest{
		CardholderID:      "ch_1",
		PurchaseAmount:    1000,
		Currency:          "usd",
		ExpirationSeconds: 60,
	})
	require.NoError(t, err)

	issuer.now = func() time.Time { return now.Add(2 * time.Minute) }

	details, err := issuer.GetCardDetails(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, CardStatusExpired, details.Status)

	// Canceling an expired card is a no-op; it stays expired.
	require.NoError(t, issuer.CancelCard(context.Background(), card.ID))
	details, err = issuer.GetCardDetails(context.Background(), card.ID)
	require.NoError(t, err)
	assert.Equal(t, CardStatusExpired, details.Status)
}

func TestMockCardIssuer_ConcurrentCreates(t *testing.T) {
	issuer := NewMockCardIssuer()

	var wg sync.WaitGroup
	ids := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			card, err := issuer.CreateCard(context.Background(), CreateCardRequest{
				CardholderID:   "ch_1",
				PurchaseAmount: 1000,
				Currency:       "usd",
			})
			if err == nil {
				ids <- card.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		assert.False(t, seen[id], "duplicate card id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 50)
}

// Matches the documented end-to-end scenario: merchant validation fails, so
// the card falls back to the supplied category with the purchase amount as
// the per-authorization limit.
func TestMockCardIssuer_MerchantFallbackScenario(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := NewMockCardIssuer()
	issuer.now = func() time.Time { return now }
	issuer.registry = fakeRegistry{err: errors.New("lookup failed")}

	card, err := issuer.CreateCard(context.Background(), CreateCardRequest{
		CardholderID:      "ch_1",
		PurchaseAmount:    1000,
		Currency:          "usd",
		MerchantID:        "m_bad",
		AllowedCategories: []string{"grocery"},
		ExpirationSeconds: 60,
	})
	require.NoError(t, err)

	assert.Equal(t, CardStatusActive, card.Status)
	assert.Empty(t, card.Controls.AllowedMerchants)
	assert.Equal(t, []string{"grocery"}, card.Controls.AllowedCategories)
	assert.Equal(t, int64(1000), card.Controls.PerAuthorizationLimit)
	assert.Equal(t, now.Add(60*time.Second), card.ExpiresAt)
}
