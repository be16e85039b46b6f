package reporting

import "strings"

// FieldRole tags the semantic meaning of a category field, resolved from
// its label. Matching is substring based and therefore deliberately driven
// by configuration instead of hardcoded literals.
type FieldRole int

const (
	FieldRoleNone FieldRole = iota
	FieldRoleEnergy
	FieldRoleDuration
	FieldRoleFoodName
	FieldRoleWeight
)

// CategoryRole tags what a category contributes to reports.
type CategoryRole int

const (
	CategoryRoleNone CategoryRole = iota
	CategoryRoleIntake
	CategoryRoleBurn
	CategoryRoleSleep
)

// Vocabulary holds the keyword lists used to classify fields and
// categories. All matching is case-insensitive substring containment.
type Vocabulary struct {
	Energy         []string
	Duration       []string
	Name           []string
	Weight         []string
	IntakeCategory []string
	BurnCategory   []string
	SleepCategory  []string
}

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Energy:         []string{"energie", "kcal", "kalorien"},
		Duration:       []string{"dauer"},
		Name:           []string{"lebensmittel"},
		Weight:         []string{"gewicht"},
		IntakeCategory: []string{"ernährung", "essen"},
		BurnCategory:   []string{"fitness", "sport"},
		SleepCategory:  []string{"schlaf"},
	}
}

func (vocabulary Vocabulary) ClassifyField(label string) FieldRole {
	switch {
	case containsAny(label, vocabulary.Energy):
		return FieldRoleEnergy
	case containsAny(label, vocabulary.Duration):
		return FieldRoleDuration
	case containsAny(label, vocabulary.Name):
		return FieldRoleFoodName
	case containsAny(label, vocabulary.Weight):
		return FieldRoleWeight
	default:
		return FieldRoleNone
	}
}

func (vocabulary Vocabulary) FieldMatches(label string, role FieldRole) bool {
	switch role {
	case FieldRoleEnergy:
		return containsAny(label, vocabulary.Energy)
	case FieldRoleDuration:
		return containsAny(label, vocabulary.Duration)
	case FieldRoleFoodName:
		return containsAny(label, vocabulary.Name)
	case FieldRoleWeight:
		return containsAny(label, vocabulary.Weight)
	default:
		return false
	}
}

func (vocabulary Vocabulary) ClassifyCategory(name string) CategoryRole {
	switch {
	case containsAny(name, vocabulary.IntakeCategory):
		return CategoryRoleIntake
	case containsAny(name, vocabulary.BurnCategory):
		return CategoryRoleBurn
	case containsAny(name, vocabulary.SleepCategory):
		return CategoryRoleSleep
	default:
		return CategoryRoleNone
	}
}

func ParseCategoryRole(raw string) (CategoryRole, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "intake":
		return CategoryRoleIntake, true
	case "burn":
		return CategoryRoleBurn, true
	case "sleep":
		return CategoryRoleSleep, true
	default:
		return CategoryRoleNone, false
	}
}

func ParseFieldRole(raw string) (FieldRole, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "energy":
		return FieldRoleEnergy, true
	case "duration":
		return FieldRoleDuration, true
	case "name":
		return FieldRoleFoodName, true
	case "weight":
		return FieldRoleWeight, true
	default:
		return FieldRoleNone, false
	}
}

func containsAny(value string, keywords []string) bool {
	lowered := strings.ToLower(value)
	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}
