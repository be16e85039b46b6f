package api

import (
	"errors"

	"lifetrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

type profileUpdateInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(user)
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input profileUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	update := services.ProfileUpdate{Password: input.Password}
	if input.Name != "" {
		name, err := services.NormalizeAuthName(input.Name)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
		update.Name = name
	}
	if input.Email != "" {
		email := services.NormalizeAuthEmail(input.Email)
		if email == "" {
			return apiError(c, fiber.StatusBadRequest, services.ErrEmailInvalid.Error())
		}
		update.Email = email
	}
	if input.Password != "" {
		if err := services.ValidatePasswordStrength(input.Password); err != nil {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	updated, err := handler.settingsService.UpdateProfile(user.ID, update)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNameTaken):
			return apiError(c, fiber.StatusConflict, "name already taken")
		case errors.Is(err, services.ErrEmailTaken):
			return apiError(c, fiber.StatusConflict, "email already taken")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
		}
	}
	return c.JSON(updated)
}

func (handler *Handler) DeleteAccount(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.settingsService.DeleteAccount(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete account")
	}
	return c.JSON(fiber.Map{"status": "deleted", "id": user.ID})
}
