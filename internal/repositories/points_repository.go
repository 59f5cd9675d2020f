package repositories

import (
	"errors"

	"perkpay/internal/models"

	"gorm.io/gorm"
)

// PointsRepository persists loyalty point balances and reward redemptions.
type PointsRepository interface {
	GetByUserID(userID uint) (*models.UserPoints, error)
	Create(points *models.UserPoints) error
	AddPoints(userID uint, points float64) (*models.UserPoints, error)
	RedeemReward(userID uint, reward *models.RedeemedReward) error
	ListRedeemed(userID uint) ([]models.RedeemedReward, error)
}

// ErrInsufficientPoints is returned when a redemption costs more than the
// user's balance.
var ErrInsufficientPoints = errors.New("not enough points to redeem this reward")

type pointsRepository struct {
	db *gorm.DB
}

func NewPointsRepository(db *gorm.DB) PointsRepository {
	return &pointsRepository{db: db}
}

func (r *pointsRepository) GetByUserID(userID uint) (*models.UserPoints, error) {
	var points models.UserPoints
	if err := r.db.Where("user_id = ?", userID).First(&points).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPointsNotFound
		}
		return nil, ErrDatabaseOperation
	}
	return &points, nil
}

func (r *pointsRepository) Create(points *models.UserPoints) error {
	if err := r.db.Create(points).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateRecord
		}
		return ErrDatabaseOperation
	}
	return nil
}

// AddPoints credits a balance, creating the row on first accrual.
func (r *pointsRepository) AddPoints(userID uint, points float64) (*models.UserPoints, error) {
	var balance models.UserPoints
	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&balance).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			balance = models.UserPoints{UserID: userID}
			if err := tx.Create(&balance).Error; err != nil {
				return ErrDatabaseOperation
			}
		} else if err != nil {
			return ErrDatabaseOperation
		}

		balance.Points += points
		if err := tx.Save(&balance).Error; err != nil {
			return ErrDatabaseOperation
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &balance, nil
}

// RedeemReward deducts the reward's point cost and records the redemption
// in a single transaction.
func (r *pointsRepository) RedeemReward(userID uint, reward *models.RedeemedReward) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var balance models.UserPoints
		if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientPoints
			}
			return ErrDatabaseOperation
		}

		if balance.Points < reward.NeededPoints {
			return ErrInsufficientPoints
		}

		balance.Points -= reward.NeededPoints
		if err := tx.Save(&balance).Error; err != nil {
			return ErrDatabaseOperation
		}
		if err := tx.Create(reward).Error; err != nil {
			return ErrDatabaseOperation
		}
		return nil
	})
}

func (r *pointsRepository) ListRedeemed(userID uint) ([]models.RedeemedReward, error) {
	var rewards []models.RedeemedReward
	err := r.db.Where("user_id = ?", userID).Order("redeemed_at DESC").Find(&rewards).Error
	if err != nil {
		return nil, ErrDatabaseOperation
	}
	return rewards, nil
}
