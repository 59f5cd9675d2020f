package handlers

import (
	"errors"

	"perkpay/internal/middleware"
	"perkpay/internal/services/points"
	"perkpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RewardsHandler struct {
	pointsService points.Service
}

func NewRewardsHandler(pointsService points.Service) *RewardsHandler {
	return &RewardsHandler{
		pointsService: pointsService,
	}
}

func (h *RewardsHandler) ListRedeemed(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	rewards, err := h.pointsService.ListRedeemed(c.Context(), claims.UserID)
	if err != nil {
		return utils.InternalError(c, "Failed to fetch redeemed rewards")
	}
	return utils.Success(c, rewards)
}

func (h *RewardsHandler) RedeemReward(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input points.RedeemInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}
	if input.RewardName == "" {
		return utils.BadRequest(c, "Reward name is required")
	}

	reward, err := h.pointsService.RedeemReward(c.Context(), claims.UserID, input)
	if err != nil {
		if errors.Is(err, points.ErrInsufficientPoints) {
			return utils.BadRequest(c, "Not enough points to redeem this reward")
		}
		if errors.Is(err, points.ErrInvalidPoints) {
			return utils.BadRequest(c, "Needed points must be positive")
		}
		return utils.InternalError(c, "Failed to redeem reward")
	}

	return utils.Success(c, fiber.Map{
		"message": "Reward redeemed successfully",
		"reward":  reward,
	})
}
