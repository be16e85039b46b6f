package api

import (
	"errors"
	"strings"

	"lifetrack/internal/models"
)

const maxCategoryNameLength = 50

var (
	errCategoryNameRequired = errors.New("category name is required")
	errCategoryNameTooLong  = errors.New("category name is too long")
	errCategoryNeedsField   = errors.New("at least one field must be defined")
	errInvalidFieldType     = errors.New("field data_type must be number or text")
	errFieldLabelRequired   = errors.New("field label is required")
	errDuplicateFieldLabel  = errors.New("field labels must be unique within a category")
)

type fieldInput struct {
	Label    string `json:"label"`
	DataType string `json:"data_type"`
	Unit     string `json:"unit"`
}

type categoryInput struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Fields      []fieldInput `json:"fields"`
}

type categoryUpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// validateCategoryInput normalizes a creation payload into model fields.
// Blank field rows are dropped the way the field builder drops them;
// duplicate labels are rejected because entry values are keyed by label.
func validateCategoryInput(input categoryInput) (models.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return models.Category{}, errCategoryNameRequired
	}
	if len([]rune(name)) > maxCategoryNameLength {
		return models.Category{}, errCategoryNameTooLong
	}

	fields := make([]models.CategoryField, 0, len(input.Fields))
	seenLabels := make(map[string]struct{}, len(input.Fields))
	for _, field := range input.Fields {
		label := strings.TrimSpace(field.Label)
		if label == "" {
			continue
		}
		if !models.IsValidFieldType(field.DataType) {
			return models.Category{}, errInvalidFieldType
		}
		loweredLabel := strings.ToLower(label)
		if _, duplicate := seenLabels[loweredLabel]; duplicate {
			return models.Category{}, errDuplicateFieldLabel
		}
		seenLabels[loweredLabel] = struct{}{}

		fields = append(fields, models.CategoryField{
			Label:    label,
			DataType: field.DataType,
			Unit:     strings.TrimSpace(field.Unit),
		})
	}
	if len(fields) == 0 {
		return models.Category{}, errCategoryNeedsField
	}

	return models.Category{
		Name:        name,
		Description: strings.TrimSpace(input.Description),
		Fields:      fields,
	}, nil
}
