package models

import (
	"time"

	"gorm.io/gorm"
)

type Profile struct {
	gorm.Model
	UserID          uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	Name            string    `gorm:"not null" json:"name"`
	Mobile          string    `json:"mobile"`
	DOB             time.Time `json:"dob"`
	Address         string    `json:"address"`
	JobTitle        string    `json:"job_title"`
	MonthlyIncome   float64   `json:"monthly_income"`
	MonthlyExpenses float64   `json:"monthly_expenses"`
}

// UpdateProfileInput carries the mutable profile fields.
type UpdateProfileInput struct {
	Name            string  `json:"name"`
	Mobile          string  `json:"mobile"`
	Address         string  `json:"address"`
	JobTitle        string  `json:"job_title"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
}
