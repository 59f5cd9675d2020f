// Package points manages loyalty point balances and reward redemptions.
package points

import (
	"context"
	"errors"
	"log"
	"time"

	"perkpay/internal/models"
	"perkpay/internal/repositories"
	"perkpay/internal/repositories/cache"
)

var (
	ErrInvalidPoints      = errors.New("points must be positive")
	ErrInsufficientPoints = repositories.ErrInsufficientPoints
)

// RedeemInput describes a reward redemption request.
type RedeemInput struct {
	RewardName   string  `json:"reward_name"`
	RewardAmount float64 `json:"reward_amount"`
	NeededPoints float64 `json:"needed_points"`
}

type Service interface {
	GetBalance(ctx context.Context, userID uint) (float64, error)
	AddPoints(ctx context.Context, userID uint, points float64) (float64, error)
	RedeemReward(ctx context.Context, userID uint, input RedeemInput) (*models.RedeemedReward, error)
	ListRedeemed(ctx context.Context, userID uint) ([]models.RedeemedReward, error)
}

type service struct {
	repo  repositories.PointsRepository
	cache *cache.CacheService
}

// NewService builds a points service. The cache may be nil, in which case
// every read hits the database.
func NewService(repo repositories.PointsRepository, cacheService *cache.CacheService) Service {
	return &service{
		repo:  repo,
		cache: cacheService,
	}
}

func (s *service) GetBalance(ctx context.Context, userID uint) (float64, error) {
	if s.cache != nil {
		var cached float64
		if err := s.cache.Get(ctx, cache.PointsKey(userID), &cached); err == nil {
			return cached, nil
		}
	}

	balance, err := s.repo.GetByUserID(userID)
	if err != nil {
		return 0, err
	}

	s.cacheBalance(ctx, userID, balance.Points)
	return balance.Points, nil
}

func (s *service) AddPoints(ctx context.Context, userID uint, points float64) (float64, error) {
	if points <= 0 {
		return 0, ErrInvalidPoints
	}

	balance, err := s.repo.AddPoints(userID, points)
	if err != nil {
		return 0, err
	}

	s.cacheBalance(ctx, userID, balance.Points)
	return balance.Points, nil
}

func (s *service) RedeemReward(ctx context.Context, userID uint, input RedeemInput) (*models.RedeemedReward, error) {
	if input.NeededPoints <= 0 {
		return nil, ErrInvalidPoints
	}

	reward := &models.RedeemedReward{
		UserID:       userID,
		RewardName:   input.RewardName,
		RewardAmount: input.RewardAmount,
		NeededPoints: input.NeededPoints,
		RedeemedAt:   time.Now(),
	}
	if err := s.repo.RedeemReward(userID, reward); err != nil {
		return nil, err
	}

	s.invalidateBalance(ctx, userID)
	return reward, nil
}

func (s *service) ListRedeemed(ctx context.Context, userID uint) ([]models.RedeemedReward, error) {
	return s.repo.ListRedeemed(userID)
}

func (s *service) cacheBalance(ctx context.Context, userID uint, points float64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cache.PointsKey(userID), points); err != nil {
		log.Printf("failed to cache points for user %d: %v", userID, err)
	}
}

func (s *service) invalidateBalance(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.PointsKey(userID)); err != nil {
		log.Printf("failed to invalidate points cache for user %d: %v", userID, err)
	}
}
