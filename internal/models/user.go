package models

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null" json:"-"`
	Role         string `gorm:"default:'user'"`
	Status       string `gorm:"default:'active'"`
	TokenVersion int    `gorm:"default:1"`

	Profile     *Profile     `gorm:"foreignKey:UserID"`
	Cardholders []Cardholder `gorm:"foreignKey:UserID"`
}

// CreateUserInput is the registration payload. The profile fields are
// collected up front so the cardholder can be created in the same flow.
type CreateUserInput struct {
	Email           string  `json:"email"`
	Password        string  `json:"password"`
	Name            string  `json:"name"`
	Mobile          string  `json:"mobile"`
	DOB             string  `json:"dob"`
	Address         string  `json:"address"`
	JobTitle        string  `json:"job_title"`
	MonthlyIncome   float64 `json:"monthly_income"`
	MonthlyExpenses float64 `json:"monthly_expenses"`
}
