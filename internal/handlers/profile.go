package handlers

import (
	"errors"

	"perkpay/internal/middleware"
	"perkpay/internal/models"
	"perkpay/internal/repositories"
	"perkpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	profiles repositories.ProfileRepository
}

func NewProfileHandler(profiles repositories.ProfileRepository) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
	}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	profile, err := h.profiles.GetByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to fetch profile")
	}
	return utils.Success(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return utils.Unauthorized(c, "Invalid claims")
	}

	var input models.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.BadRequest(c, "Invalid request body")
	}

	profile, err := h.profiles.GetByUserID(claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return utils.NotFound(c, "Profile not found")
		}
		return utils.InternalError(c, "Failed to fetch profile")
	}

	if input.Name != "" {
		profile.Name = input.Name
	}
	if input.Mobile != "" {
		profile.Mobile = input.Mobile
	}
	if input.Address != "" {
		profile.Address = input.Address
	}
	if input.JobTitle != "" {
		profile.JobTitle = input.JobTitle
	}
	if input.MonthlyIncome > 0 {
		profile.MonthlyIncome = input.MonthlyIncome
	}
	if input.MonthlyExpenses > 0 {
		profile.MonthlyExpenses = input.MonthlyExpenses
	}

	if err := h.profiles.Update(profile); err != nil {
		return utils.InternalError(c, "Failed to update profile")
	}
	return utils.Success(c, profile)
}
