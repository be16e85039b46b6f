package api

import (
	"errors"
	"time"

	"lifetrack/internal/services"

	"github.com/gofiber/fiber/v2"
)

type registerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type verifyInput struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	var input registerInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	name, err := services.NormalizeAuthName(input.Name)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	email := services.NormalizeAuthEmail(input.Email)
	if email == "" {
		return apiError(c, fiber.StatusBadRequest, services.ErrEmailInvalid.Error())
	}
	if err := services.ValidatePasswordStrength(input.Password); err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := handler.authService.Register(c.Context(), name, email, input.Password, time.Now().In(handler.location))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserExists):
			return apiError(c, fiber.StatusConflict, "name or email already taken")
		case errors.Is(err, services.ErrRegistrationPending):
			return apiError(c, fiber.StatusConflict, "registration already started, check your email or wait")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to create account")
		}
	}

	if err := handler.seedService.SeedDefaultCategories(user.ID); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to seed categories")
	}

	if !user.IsActive {
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"success": true,
			"message": "check your email and enter the verification code",
			"name":    user.Name,
		})
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"token":   token,
		"name":    user.Name,
	})
}

func (handler *Handler) VerifyEmail(c *fiber.Ctx) error {
	var input verifyInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	email := services.NormalizeAuthEmail(input.Email)
	if email == "" || input.Code == "" {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	alreadyActive, err := handler.authService.Verify(email, input.Code)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrWrongCode):
			return apiError(c, fiber.StatusBadRequest, "wrong verification code")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to verify account")
		}
	}

	if alreadyActive {
		return c.JSON(fiber.Map{"success": true, "message": "already activated"})
	}
	return c.JSON(fiber.Map{"success": true, "message": "account activated, please log in"})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	name, password, err := services.NormalizeCredentialsInput(input.Name, input.Password)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(name, password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
		case errors.Is(err, services.ErrAccountInactive):
			return apiError(c, fiber.StatusUnauthorized, "account not activated, please verify your email")
		default:
			return apiError(c, fiber.StatusInternalServerError, "failed to log in")
		}
	}

	token, err := handler.buildToken(&user)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"name":    user.Name,
	})
}
