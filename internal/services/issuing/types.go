package issuing

import "time"

// Provider identifies which card-issuing backend produced an entity.
type Provider string

const (
	ProviderMock   Provider = "mock"
	ProviderStripe Provider = "stripe"
)

// CardStatus is the lifecycle state of a disposable card. Statuses only
// move forward: active -> used/canceled/expired.
type CardStatus string

const (
	CardStatusActive   CardStatus = "active"
	CardStatusUsed     CardStatus = "used"
	CardStatusCanceled CardStatus = "canceled"
	CardStatusExpired  CardStatus = "expired"
)

// DefaultExpirationSeconds is the expiry window applied when a card request
// does not specify one.
const DefaultExpirationSeconds = 3600

// Cardholder is the billing identity a card is issued against.
type Cardholder struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Address  string   `json:"address"`
	Provider Provider `json:"provider"`
}

// CreateCardholderRequest carries the identity fields for cardholder
// creation. Address is a single billing line.
type CreateCardholderRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CreateCardRequest describes a single purchase intent. PurchaseAmount is
// in minor units of Currency and caps each individual authorization.
type CreateCardRequest struct {
	CardholderID      string   `json:"cardholder_id"`
	PurchaseAmount    int64    `json:"purchase_amount"`
	Currency          string   `json:"currency"`
	MerchantID        string   `json:"merchant_id"`
	AllowedCategories []string `json:"allowed_categories,omitempty"`
	BlockedCategories []string `json:"blocked_categories,omitempty"`
	ExpirationSeconds int      `json:"expiration_seconds,omitempty"`
}

// SpendingControl is the set of restrictions attached to a card at
// issuance. Exactly one of AllowedMerchants or AllowedCategories is
// populated (or neither); BlockedCategories applies unconditionally.
type SpendingControl struct {
	AllowedMerchants      []string `json:"allowed_merchants,omitempty"`
	AllowedCategories     []string `json:"allowed_categories,omitempty"`
	BlockedCategories     []string `json:"blocked_categories,omitempty"`
	PerAuthorizationLimit int64    `json:"per_authorization_limit"`
}

// DisposableCard is a one-time virtual card. One card answers exactly one
// purchase attempt; it is never reused.
type DisposableCard struct {
	ID            string          `json:"id"`
	CardholderID  string          `json:"cardholder_id"`
	Currency      string          `json:"currency"`
	PurchaseLimit int64           `json:"purchase_limit"`
	MerchantID    string          `json:"merchant_id"`
	Controls      SpendingControl `json:"controls"`
	Last4         string          `json:"last4"`
	CreatedAt     time.Time       `json:"created_at"`
	ExpiresAt     time.Time       `json:"expires_at"`
	Status        CardStatus      `json:"status"`
	Provider      Provider        `json:"provider"`
}

// CardDetails is the full disclosure for a card. The simulated issuer
// returns a synthetic number and CVC for test flows; the live issuer only
// fills what the provider discloses.
type CardDetails struct {
	DisposableCard
	Number     string `json:"number,omitempty"`
	CVC        string `json:"cvc,omitempty"`
	HolderName string `json:"holder_name,omitempty"`
}
