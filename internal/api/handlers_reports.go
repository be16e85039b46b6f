package api

import (
	"strconv"
	"time"

	"lifetrack/internal/db"
	"lifetrack/internal/reporting"

	"github.com/gofiber/fiber/v2"
)

const defaultRollingWindowDays = 5

// ReportOverview counts entries per category name. Entries whose category
// was deleted are grouped under the unknown bucket instead of dropped.
func (handler *Handler) ReportOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entries, err := handler.repositories.Entries.ListByUser(user.ID, db.EntryFilter{})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	categories, err := handler.repositories.Categories.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}

	return c.JSON(fiber.Map{
		"counts": reporting.CountByCategory(entries, categories),
		"total":  len(entries),
	})
}

// ReportRolling returns zero-filled daily sums over the trailing window.
// The target category is picked by role keyword, the summed field likewise.
func (handler *Handler) ReportRolling(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	windowDays := defaultRollingWindowDays
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 365 {
			return apiError(c, fiber.StatusBadRequest, "invalid days")
		}
		windowDays = parsed
	}

	categoryRole, ok := reporting.ParseCategoryRole(c.Query("category_role", "burn"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid category_role")
	}
	fieldRole, ok := reporting.ParseFieldRole(c.Query("field_role", "energy"))
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid field_role")
	}

	categories, err := handler.repositories.Categories.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}
	category, found := handler.vocabulary.FindCategoryByRole(categories, categoryRole)
	if !found {
		return apiError(c, fiber.StatusNotFound, "no category matches the requested role")
	}

	entries, err := handler.repositories.Entries.ListByUser(user.ID, db.EntryFilter{CategoryID: &category.ID})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}

	series := handler.vocabulary.RollingDailySums(entries, category.ID, fieldRole, windowDays, time.Now(), handler.location)
	return c.JSON(fiber.Map{
		"category": category.Name,
		"days":     series.Days,
		"total":    series.Total,
		"average":  series.Average,
	})
}

// ReportBalance reports today's energy intake minus energy burned. The day
// can be overridden with ?day=YYYY-MM-DD.
func (handler *Handler) ReportBalance(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	day := time.Now()
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid day")
		}
		day = parsed
	}

	entries, err := handler.repositories.Entries.ListByUser(user.ID, db.EntryFilter{})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	categories, err := handler.repositories.Categories.ListByUser(user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load categories")
	}

	balance := handler.vocabulary.SameDayBalance(entries, categories, day, handler.location)
	return c.JSON(fiber.Map{
		"day":     reporting.DateAtLocation(day, handler.location).Format("2006-01-02"),
		"intake":  balance.Intake,
		"burned":  balance.Burned,
		"balance": balance.Value,
		"signed":  balance.Signed(),
	})
}
