package api

import (
	"errors"
	"strings"

	"lifetrack/internal/forms"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func (handler *Handler) ListCategories(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	categories, err := handler.repositories.Categories.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}
	return c.JSON(categories)
}

func (handler *Handler) CreateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input categoryInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	category, err := validateCategoryInput(input)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}
	category.UserID = user.ID

	if err := handler.repositories.Categories.Create(&category); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create category")
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// UpdateCategory patches name and description only; the field schema is
// immutable once entries may reference it.
func (handler *Handler) UpdateCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid category id")
	}

	var input categoryUpdateInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	category, err := handler.repositories.Categories.FindByIDForUser(categoryID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "category not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load category")
	}

	if category.IsSystemDefault {
		return apiError(c, fiber.StatusBadRequest, "system default categories cannot be edited")
	}

	name := category.Name
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if name == "" {
			return apiError(c, fiber.StatusBadRequest, errCategoryNameRequired.Error())
		}
		if len([]rune(name)) > maxCategoryNameLength {
			return apiError(c, fiber.StatusBadRequest, errCategoryNameTooLong.Error())
		}
	}
	description := category.Description
	if input.Description != nil {
		description = strings.TrimSpace(*input.Description)
	}

	if err := handler.repositories.Categories.UpdateNameAndDescription(category.ID, name, description); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update category")
	}

	category.Name = name
	category.Description = description
	return c.JSON(category)
}

func (handler *Handler) DeleteCategory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid category id")
	}

	category, err := handler.repositories.Categories.FindByIDForUser(categoryID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "category not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load category")
	}

	if category.IsSystemDefault {
		return apiError(c, fiber.StatusBadRequest, "system default categories cannot be deleted")
	}

	if err := handler.repositories.Categories.Delete(&category); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete category")
	}
	return c.JSON(fiber.Map{"status": "deleted", "id": category.ID})
}

// GetCategoryForm returns the synthesized entry form for a category: one
// control per field, in schema order.
func (handler *Handler) GetCategoryForm(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	categoryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid category id")
	}

	category, err := handler.repositories.Categories.FindByIDForUser(categoryID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "category not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load category")
	}

	return c.JSON(fiber.Map{
		"category_id": category.ID,
		"controls":    forms.Synthesize(category),
	})
}
