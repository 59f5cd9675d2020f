package models

import (
	"time"

	"gorm.io/gorm"
)

// Disposable card statuses. A card only moves forward through these, never
// back to active.
const (
	CardStatusActive   = "active"
	CardStatusUsed     = "used"
	CardStatusCanceled = "canceled"
	CardStatusExpired  = "expired"
)

// DisposableCard is the persisted record of a one-time virtual card issued
// for a single purchase. The provider owns the card; this row mirrors it so
// the lifecycle controller and the API can reason about it locally.
type DisposableCard struct {
	gorm.Model
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	CardID        string    `gorm:"uniqueIndex;not null" json:"card_id"`
	CardholderID  string    `gorm:"not null;index" json:"cardholder_id"`
	Currency      string    `gorm:"not null" json:"currency"`
	PurchaseLimit int64     `gorm:"not null" json:"purchase_limit"`
	MerchantID    string    `json:"merchant_id"`
	LastFour      string    `json:"last_four"`
	Status        string    `gorm:"default:'active';index" json:"status"`
	ExpiresAt     time.Time `gorm:"not null" json:"expires_at"`
	Provider      string    `gorm:"not null" json:"provider"`
}
