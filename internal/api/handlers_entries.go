package api

import (
	"errors"
	"strconv"
	"time"

	"lifetrack/internal/db"
	"lifetrack/internal/forms"
	"lifetrack/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type entryInput struct {
	CategoryID uint           `json:"category_id"`
	OccurredAt string         `json:"occurred_at"`
	Note       string         `json:"note"`
	Values     map[string]any `json:"values"`
}

func (handler *Handler) ListEntries(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	filter := db.EntryFilter{}
	if raw := c.Query("category_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid category_id")
		}
		categoryID := uint(parsed)
		filter.CategoryID = &categoryID
	}
	if raw := c.Query("start"); raw != "" {
		start, err := forms.ResolveTimestamp(raw, time.Now(), handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid start")
		}
		filter.Start = &start
	}
	if raw := c.Query("end"); raw != "" {
		end, err := forms.ResolveTimestamp(raw, time.Now(), handler.location)
		if err != nil {
			return apiError(c, fiber.StatusBadRequest, "invalid end")
		}
		filter.End = &end
	}

	entries, err := handler.repositories.Entries.ListByUser(user.ID, filter)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load entries")
	}
	return c.JSON(entries)
}

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input, occurredAt, err := handler.parseEntryInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	owned, err := handler.repositories.Categories.ExistsForUser(input.CategoryID, user.ID)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load category")
	}
	if !owned {
		return apiError(c, fiber.StatusNotFound, "category not found")
	}

	entry := models.Entry{
		UserID:     user.ID,
		CategoryID: input.CategoryID,
		OccurredAt: occurredAt,
		Note:       input.Note,
		Data:       input.Values,
	}
	if err := handler.repositories.Entries.Create(&entry); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create entry")
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) UpdateEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	input, occurredAt, err := handler.parseEntryInput(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, err.Error())
	}

	entry, err := handler.repositories.Entries.FindByIDForUser(entryID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "entry not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load entry")
	}

	if input.CategoryID != entry.CategoryID {
		owned, err := handler.repositories.Categories.ExistsForUser(input.CategoryID, user.ID)
		if err != nil {
			return apiError(c, fiber.StatusInternalServerError, "failed to load category")
		}
		if !owned {
			return apiError(c, fiber.StatusNotFound, "category not found")
		}
	}

	entry.CategoryID = input.CategoryID
	entry.OccurredAt = occurredAt
	entry.Note = input.Note
	entry.Data = input.Values
	if err := handler.repositories.Entries.Save(&entry); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to update entry")
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	entryID, err := parseIDParam(c, "id")
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid entry id")
	}

	entry, err := handler.repositories.Entries.FindByIDForUser(entryID, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apiError(c, fiber.StatusNotFound, "entry not found")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to load entry")
	}

	if err := handler.repositories.Entries.Delete(&entry); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to delete entry")
	}
	return c.JSON(fiber.Map{"status": "deleted", "id": entry.ID})
}

var (
	errEntryCategoryRequired = errors.New("category_id is required")
	errEntryValuesRequired   = errors.New("values are required")
	errEntryTimestampInvalid = errors.New("invalid occurred_at")
)

func (handler *Handler) parseEntryInput(c *fiber.Ctx) (entryInput, time.Time, error) {
	var input entryInput
	if err := c.BodyParser(&input); err != nil {
		return entryInput{}, time.Time{}, errors.New("invalid input")
	}
	if input.CategoryID == 0 {
		return entryInput{}, time.Time{}, errEntryCategoryRequired
	}
	if len(input.Values) == 0 {
		return entryInput{}, time.Time{}, errEntryValuesRequired
	}

	occurredAt, err := forms.ResolveTimestamp(input.OccurredAt, time.Now(), handler.location)
	if err != nil {
		return entryInput{}, time.Time{}, errEntryTimestampInvalid
	}
	return input, occurredAt, nil
}
