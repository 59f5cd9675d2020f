package handlers

import (
	"errors"

	"perkpay/internal/middleware"
	"perkpay/internal/repositories"
	"perkpay/internal/services/points"
	"perkpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type PointsHandler struct {
	pointsService points.Service
}

func NewPointsHandler(pointsService points.Service) *PointsHandler {
	return &PointsHandler{
		pointsService: pointsService,
	}
}

func (h *PointsHandler) GetPoints(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	balance, err := h.pointsService.GetBalance(c.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrPointsNotFound) {
			return utils.NotFound(c, "User points not found")
		}
		return utils.InternalError(c, "Failed to fetch points")
	}

	return utils.Success(c, fiber.Map{
		"user_id": claims.UserID,
		"points":  balance,
	})
}

func (h *PointsHandler) AddPoints(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input struct {
		PointsToAdd float64 `json:"points_to_add"`
	}
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	balance, err := h.pointsService.AddPoints(c.Context(), claims.UserID, input.PointsToAdd)
	if err != nil {
		if errors.Is(err, points.ErrInvalidPoints) {
			return utils.BadRequest(c, "Points to add must be positive")
		}
		return utils.InternalError(c, "Failed to add points")
	}

	return utils.Success(c, fiber.Map{
		"user_id":    claims.UserID,
		"new_points": balance,
	})
}
