package models

import "gorm.io/gorm"

// Cardholder maps a local user to a billing identity at a card-issuing
// provider. A user has at most one cardholder per provider.
type Cardholder struct {
	gorm.Model
	UserID       uint   `gorm:"not null;uniqueIndex:idx_cardholder_user_provider" json:"user_id"`
	CardholderID string `gorm:"uniqueIndex;not null" json:"cardholder_id"`
	Provider     string `gorm:"not null;uniqueIndex:idx_cardholder_user_provider" json:"provider"`
}
