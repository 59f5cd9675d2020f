package models

import (
	"time"

	"gorm.io/gorm"
)

type UserPoints struct {
	gorm.Model
	UserID uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Points float64 `gorm:"default:0" json:"points"`
}

type RedeemedReward struct {
	gorm.Model
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	RewardName   string    `gorm:"not null" json:"reward_name"`
	RewardAmount float64   `gorm:"not null" json:"reward_amount"`
	NeededPoints float64   `gorm:"not null" json:"needed_points"`
	RedeemedAt   time.Time `gorm:"not null" json:"redeemed_at"`
}
