package repositories

import (
	"errors"

	"perkpay/internal/models"

	"gorm.io/gorm"
)

// CardholderRepository persists the user-to-provider cardholder mapping.
type CardholderRepository interface {
	Create(ch *models.Cardholder) error
	GetByUserAndProvider(userID uint, provider string) (*models.Cardholder, error)
}

type cardholderRepository struct {
	db *gorm.DB
}

func NewCardholderRepository(db *gorm.DB) CardholderRepository {
	return &cardholderRepository{db: db}
}

func (r *cardholderRepository) Create(ch *models.Cardholder) error {
	if err := r.db.Create(ch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *cardholderRepository) GetByUserAndProvider(userID uint, provider string) (*models.Cardholder, error) {
	var ch models.Cardholder
	err := r.db.Where("user_id = ? AND provider = ?", userID, provider).First(&ch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardholderNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &ch, nil
}
