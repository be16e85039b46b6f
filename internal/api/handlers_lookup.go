package api

import (
	"errors"
	"strconv"
	"strings"

	"lifetrack/internal/nutrition"

	"github.com/gofiber/fiber/v2"
)

// LookupFood proxies a product search so the entry form can prefill
// calories. A miss is not an error, the form just stays empty.
func (handler *Handler) LookupFood(c *fiber.Ctx) error {
	if _, ok := currentUser(c); !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if handler.foodLookup == nil {
		return apiError(c, fiber.StatusNotFound, "food lookup is not configured")
	}

	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		return apiError(c, fiber.StatusBadRequest, "q is required")
	}

	product, err := handler.foodLookup.Search(c.Context(), query)
	if err != nil {
		if errors.Is(err, nutrition.ErrNoProduct) {
			return c.JSON(fiber.Map{"found": false})
		}
		return apiError(c, fiber.StatusBadGateway, "food lookup failed")
	}

	response := fiber.Map{
		"found":         true,
		"name":          product.Name,
		"kcal_per_100g": product.KcalPer100g,
	}
	if raw := c.Query("weight"); raw != "" {
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil || weight < 0 {
			return apiError(c, fiber.StatusBadRequest, "invalid weight")
		}
		response["kcal"] = nutrition.ScaleEnergy(product.KcalPer100g, weight)
	}
	return c.JSON(response)
}
