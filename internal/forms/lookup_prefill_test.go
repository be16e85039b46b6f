package forms

import (
	"reflect"
	"testing"

	"lifetrack/internal/models"
	"lifetrack/internal/nutrition"
	"lifetrack/internal/reporting"
)

func nutritionTestCategory() models.Category {
	return models.Category{
		ID:   7,
		Name: "🍎 Ernährung",
		Fields: []models.CategoryField{
			{Position: 0, Label: "Lebensmittel", DataType: models.FieldTypeText},
			{Position: 1, Label: "Gewicht", DataType: models.FieldTypeNumber, Unit: "g"},
			{Position: 2, Label: "Energie", DataType: models.FieldTypeNumber, Unit: "kcal"},
		},
	}
}

func TestPrefillFromLookupFillsNameWeightAndScaledEnergy(t *testing.T) {
	t.Parallel()

	values := PrefillFromLookup(
		nutritionTestCategory(),
		nutrition.Product{Name: "Apfel", KcalPer100g: 52},
		200,
		reporting.DefaultVocabulary(),
	)

	expected := map[string]string{
		"Lebensmittel": "Apfel",
		"Gewicht":      "200",
		"Energie":      "104",
	}
	if !reflect.DeepEqual(values, expected) {
		t.Fatalf("unexpected prefill %v, want %v", values, expected)
	}
}

func TestPrefillFromLookupWithoutWeightUsesPer100gEnergy(t *testing.T) {
	t.Parallel()

	values := PrefillFromLookup(
		nutritionTestCategory(),
		nutrition.Product{Name: "Apfel", KcalPer100g: 52},
		0,
		reporting.DefaultVocabulary(),
	)

	if _, present := values["Gewicht"]; present {
		t.Fatalf("expected weight input untouched without an entered weight, got %v", values)
	}
	if values["Energie"] != "52" {
		t.Fatalf("expected per-100g energy, got %q", values["Energie"])
	}
}

func TestPrefillFromLookupSkipsAbsentProductData(t *testing.T) {
	t.Parallel()

	values := PrefillFromLookup(
		nutritionTestCategory(),
		nutrition.Product{Name: "Wasser"},
		100,
		reporting.DefaultVocabulary(),
	)

	if _, present := values["Energie"]; present {
		t.Fatalf("expected no energy prefill for a product without calories, got %v", values)
	}
	if values["Lebensmittel"] != "Wasser" {
		t.Fatalf("expected product name carried over, got %v", values)
	}
}

func TestPrefillFromLookupIgnoresUnmatchedFields(t *testing.T) {
	t.Parallel()

	category := models.Category{Fields: []models.CategoryField{
		{Label: "Highlight", DataType: models.FieldTypeText},
		{Label: "Laune", DataType: models.FieldTypeNumber},
	}}

	values := PrefillFromLookup(
		category,
		nutrition.Product{Name: "Apfel", KcalPer100g: 52},
		200,
		reporting.DefaultVocabulary(),
	)
	if len(values) != 0 {
		t.Fatalf("expected no prefill for a category without lookup roles, got %v", values)
	}
}
