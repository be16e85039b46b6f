package reporting

import (
	"strconv"
	"strings"
	"time"

	"lifetrack/internal/models"
)

// UnknownCategoryLabel buckets entries whose category no longer exists.
const UnknownCategoryLabel = "unknown"

// CountByCategory maps category name to entry count. Entries referencing
// a missing category land in the UnknownCategoryLabel bucket.
func CountByCategory(entries []models.Entry, categories []models.Category) map[string]int {
	names := make(map[uint]string, len(categories))
	for _, category := range categories {
		names[category.ID] = category.Name
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		name, known := names[entry.CategoryID]
		if !known {
			name = UnknownCategoryLabel
		}
		counts[name]++
	}
	return counts
}

type DayTotal struct {
	Day   time.Time `json:"day"`
	Total float64   `json:"total"`
}

type RollingSeries struct {
	Days    []DayTotal `json:"days"`
	Total   float64    `json:"total"`
	Average float64    `json:"average"`
}

// RollingDailySums sums a role-matching numeric field per local calendar
// day over the trailing windowDays days, today included. Days without
// entries contribute 0 and the average divides by the full window length,
// so inactivity pulls it down on purpose.
func (vocabulary Vocabulary) RollingDailySums(entries []models.Entry, categoryID uint, role FieldRole, windowDays int, now time.Time, location *time.Location) RollingSeries {
	if windowDays <= 0 {
		return RollingSeries{Days: []DayTotal{}}
	}

	series := RollingSeries{Days: make([]DayTotal, 0, windowDays)}
	for offset := windowDays - 1; offset >= 0; offset-- {
		day := DateAtLocation(now, location).AddDate(0, 0, -offset)

		var total float64
		for _, entry := range entries {
			if entry.CategoryID != categoryID {
				continue
			}
			if !DateAtLocation(entry.OccurredAt, location).Equal(day) {
				continue
			}
			total += vocabulary.sumMatchingValues(entry.Data, role)
		}

		series.Days = append(series.Days, DayTotal{Day: day, Total: total})
		series.Total += total
	}

	series.Average = series.Total / float64(windowDays)
	return series
}

type Balance struct {
	Intake float64 `json:"intake"`
	Burned float64 `json:"burned"`
	Value  float64 `json:"balance"`
}

// SameDayBalance sums the energy field across the intake and burn
// categories for the given local day and reports intake minus burned.
func (vocabulary Vocabulary) SameDayBalance(entries []models.Entry, categories []models.Category, day time.Time, location *time.Location) Balance {
	intakeCategory, hasIntake := vocabulary.FindCategoryByRole(categories, CategoryRoleIntake)
	burnCategory, hasBurn := vocabulary.FindCategoryByRole(categories, CategoryRoleBurn)

	balance := Balance{}
	target := DateAtLocation(day, location)
	for _, entry := range entries {
		if !DateAtLocation(entry.OccurredAt, location).Equal(target) {
			continue
		}
		value := vocabulary.sumMatchingValues(entry.Data, FieldRoleEnergy)
		if hasIntake && entry.CategoryID == intakeCategory.ID {
			balance.Intake += value
		}
		if hasBurn && entry.CategoryID == burnCategory.ID {
			balance.Burned += value
		}
	}

	balance.Value = balance.Intake - balance.Burned
	return balance
}

// Signed renders the balance with an explicit leading sign for positive
// values, e.g. "+300" or "-200".
func (balance Balance) Signed() string {
	formatted := strconv.FormatFloat(balance.Value, 'f', -1, 64)
	if balance.Value > 0 {
		return "+" + formatted
	}
	return formatted
}

// FindCategoryByRole returns the first category whose name matches the
// role vocabulary, in list order.
func (vocabulary Vocabulary) FindCategoryByRole(categories []models.Category, role CategoryRole) (models.Category, bool) {
	for _, category := range categories {
		if vocabulary.ClassifyCategory(category.Name) == role && role != CategoryRoleNone {
			return category, true
		}
	}
	return models.Category{}, false
}

func (vocabulary Vocabulary) sumMatchingValues(data map[string]any, role FieldRole) float64 {
	var total float64
	for label, value := range data {
		if !vocabulary.FieldMatches(label, role) {
			continue
		}
		total += numericValue(value)
	}
	return total
}

// DateAtLocation truncates to the local calendar day, the bucketing unit
// for every report.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// numericValue parses leniently: JSON numbers and numeric strings count,
// anything else contributes 0.
func numericValue(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case int:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(typed, ",", ".")), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
