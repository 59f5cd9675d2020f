package issuing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Fixed fixture identity for simulated card details.
const (
	mockHolderName = "PERKPAY TEST CARDHOLDER"
)

// MockCardholderIssuer is the simulated cardholder backend. It generates
// opaque local ids and always succeeds.
type MockCardholderIssuer struct{}

func NewMockCardholderIssuer() *MockCardholderIssuer {
	return &MockCardholderIssuer{}
}

func (m *MockCardholderIssuer) CreateCardholder(_ context.Context, req CreateCardholderRequest) (*Cardholder, error) {
	return &Cardholder{
		ID:       "mock_cardholder_" + shortID(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Address:  req.Address,
		Provider: ProviderMock,
	}, nil
}

// allowAllRegistry accepts every non-empty merchant id. It stands in for
// the provider merchant registry in simulated environments.
type allowAllRegistry struct{}

func (allowAllRegistry) ValidateMerchant(_ context.Context, merchantID string) (bool, error) {
	return merchantID != "", nil
}

// MockCardIssuer is the simulated card backend. Issued cards live in an
// owned, mutex-guarded table so a single shared instance is safe under
// concurrent requests.
type MockCardIssuer struct {
	mu       sync.Mutex
	cards    map[string]*CardDetails
	registry MerchantRegistry
	now      func() time.Time
}

func NewMockCardIssuer() *MockCardIssuer {
	return &MockCardIssuer{
		cards:    make(map[string]*CardDetails),
		registry: allowAllRegistry{},
		now:      time.Now,
	}
}

func (m *MockCardIssuer) CreateCard(ctx context.Context, req CreateCardRequest) (*DisposableCard, error) {
	if req.PurchaseAmount <= 0 {
		return nil, &ValidationError{Reason: "purchase amount must be positive"}
	}

	control := resolveSpendingControl(ctx, m.registry, req)
	now := m.now()

	card := DisposableCard{
		ID:            "mock_card_" + shortID(),
		CardholderID:  req.CardholderID,
		Currency:      req.Currency,
		PurchaseLimit: req.PurchaseAmount,
		MerchantID:    req.MerchantID,
		Controls:      control,
		Last4:         fmt.Sprintf("%04d", rand.Intn(10000)),
		CreatedAt:     now,
		ExpiresAt:     now.Add(time.Duration(normalizeExpiration(req.ExpirationSeconds)) * time.Second),
		Status:        CardStatusActive,
		Provider:      ProviderMock,
	}

	details := &CardDetails{
		DisposableCard: card,
		Number:         "400000" + fmt.Sprintf("%06d", rand.Intn(1000000)) + card.Last4,
		CVC:            fmt.Sprintf("%03d", rand.Intn(1000)),
		HolderName:     mockHolderName,
	}

	m.mu.Lock()
	m.cards[card.ID] = details
	m.mu.Unlock()

	return &card, nil
}

// GetCardDetails returns the stored synthetic detail for a card, including
// the fake full number and CVC for test flows.
func (m *MockCardIssuer) GetCardDetails(_ context.Context, cardID string) (*CardDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	details, ok := m.cards[cardID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, cardID)
	}
	m.refreshExpiry(details)

	copied := *details
	return &copied, nil
}

// CancelCard moves a card to canceled. Canceling a card that is already in
// a terminal state is a no-op so event redelivery stays safe.
func (m *MockCardIssuer) CancelCard(_ context.Context, cardID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	details, ok := m.cards[cardID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, cardID)
	}
	m.refreshExpiry(details)

	if details.Status != CardStatusActive && details.Status != CardStatusUsed {
		return nil
	}
	details.Status = CardStatusCanceled
	return nil
}

// refreshExpiry enforces expiration locally. The simulated provider, like
// the live one, is not trusted to expire cards on time. Caller holds the
// lock.
func (m *MockCardIssuer) refreshExpiry(details *CardDetails) {
	if details.Status == CardStatusActive && m.now().After(details.ExpiresAt) {
		details.Status = CardStatusExpired
	}
}

// MockEventVerifier authenticates simulated webhook deliveries with an
// HMAC-SHA256 hex signature over the raw payload.
type MockEventVerifier struct {
	secret []byte
}

func NewMockEventVerifier(secret string) *MockEventVerifier {
	return &MockEventVerifier{secret: []byte(secret)}
}

func (v *MockEventVerifier) VerifyEvent(payload []byte, signature string) (*AuthorizationEvent, error) {
	if !hmac.Equal([]byte(v.SignPayload(payload)), []byte(signature)) {
		return nil, fmt.Errorf("%w: signature mismatch", ErrInvalidSignature)
	}

	var body authorizationPayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: malformed payload", ErrInvalidSignature)
	}

	return &AuthorizationEvent{
		Type:   body.Type,
		CardID: body.Data.Object.Card.ID,
	}, nil
}

// SignPayload computes the signature VerifyEvent expects for a payload.
// Used by tests and local webhook tooling.
func (v *MockEventVerifier) SignPayload(payload []byte) string {
	mac := hmac.New(sha256.New, v.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func shortID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
