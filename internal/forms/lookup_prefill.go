package forms

import (
	"strconv"

	"lifetrack/internal/models"
	"lifetrack/internal/nutrition"
	"lifetrack/internal/reporting"
)

// PrefillFromLookup maps a food lookup result onto a category's form
// inputs. Target fields are picked by their role under the vocabulary:
// the food name field gets the product name, the weight field the entered
// weight, and the energy field the calories scaled to that weight (or the
// raw per-100g value when no weight was entered). Fields without a
// matching role, and lookup values the product does not carry, are left
// alone so user input is never overwritten with blanks.
func PrefillFromLookup(category models.Category, product nutrition.Product, weightGrams float64, vocabulary reporting.Vocabulary) map[string]string {
	values := make(map[string]string)
	for _, field := range category.Fields {
		switch vocabulary.ClassifyField(field.Label) {
		case reporting.FieldRoleFoodName:
			if product.Name != "" {
				values[field.Label] = product.Name
			}
		case reporting.FieldRoleWeight:
			if weightGrams > 0 {
				values[field.Label] = formatNumber(weightGrams)
			}
		case reporting.FieldRoleEnergy:
			if product.KcalPer100g > 0 {
				kcal := product.KcalPer100g
				if weightGrams > 0 {
					kcal = nutrition.ScaleEnergy(product.KcalPer100g, weightGrams)
				}
				values[field.Label] = formatNumber(kcal)
			}
		}
	}
	return values
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
