package repositories

import (
	"errors"
	"time"

	"perkpay/internal/models"

	"gorm.io/gorm"
)

// CardRepository persists disposable card records mirrored from the
// card-issuing provider.
type CardRepository interface {
	Create(card *models.DisposableCard) error
	GetByCardID(cardID string) (*models.DisposableCard, error)
	ListByUserID(userID uint) ([]models.DisposableCard, error)
	UpdateStatus(cardID, status string) error
	MarkExpired(now time.Time) (int64, error)
}

type cardRepository struct {
	db *gorm.DB
}

func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// statusRank orders card statuses so transitions only move forward.
// Terminal states share a rank; moving between them is rejected, except
// that re-applying the current status is treated as a no-op by callers.
var statusRank = map[string]int{
	models.CardStatusActive:   0,
	models.CardStatusUsed:     1,
	models.CardStatusCanceled: 1,
	models.CardStatusExpired:  1,
}

func (r *cardRepository) Create(card *models.DisposableCard) error {
	if err := r.db.Create(card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

func (r *cardRepository) GetByCardID(cardID string) (*models.DisposableCard, error) {
	var card models.DisposableCard
	if err := r.db.Where("card_id = ?", cardID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &card, nil
}

func (r *cardRepository) ListByUserID(userID uint) ([]models.DisposableCard, error) {
	var cards []models.DisposableCard
	if err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, ErrDatabaseOperation
	}
	return cards, nil
}

// UpdateStatus moves a card to a new status. Statuses only move forward:
// a card never returns to active, and re-applying the current status is a
// no-op rather than an error so webhook redelivery stays idempotent.
func (r *cardRepository) UpdateStatus(cardID, status string) error {
	if _, ok := statusRank[status]; !ok {
		return ErrInvalidTransition
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var card models.DisposableCard
		if err := tx.Where("card_id = ?", cardID).First(&card).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCardNotFound
			}
			return ErrDatabaseOperation
		}

		if card.Status == status {
			return nil
		}
		if statusRank[status] <= statusRank[card.Status] {
			return ErrInvalidTransition
		}

		if err := tx.Model(&card).Update("status", status).Error; err != nil {
			return ErrDatabaseOperation
		}
		return nil
	})
}

// MarkExpired flips still-active cards whose expiry has elapsed to expired
// and reports how many were affected.
func (r *cardRepository) MarkExpired(now time.Time) (int64, error) {
	result := r.db.Model(&models.DisposableCard{}).
		Where("status = ? AND expires_at < ?", models.CardStatusActive, now).
		Update("status", models.CardStatusExpired)
	if result.Error != nil {
		return 0, ErrDatabaseOperation
	}
	return result.RowsAffected, nil
}
