package models

const (
	FieldTypeNumber = "number"
	FieldTypeText   = "text"
)

type Category struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	UserID          uint            `gorm:"not null;index" json:"-"`
	Name            string          `gorm:"size:50;not null" json:"name"`
	Description     string          `json:"description"`
	IsSystemDefault bool            `gorm:"not null;default:false" json:"is_system_default"`
	Fields          []CategoryField `gorm:"constraint:OnDelete:CASCADE" json:"fields"`
}

// CategoryField is one schema slot of a Category. Position preserves the
// order the user defined, which is also the form layout order.
type CategoryField struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	CategoryID uint   `gorm:"not null;index" json:"-"`
	Position   int    `gorm:"not null;default:0" json:"-"`
	Label      string `gorm:"not null" json:"label"`
	DataType   string `gorm:"not null" json:"data_type"`
	Unit       string `json:"unit"`
}

func IsValidFieldType(dataType string) bool {
	return dataType == FieldTypeNumber || dataType == FieldTypeText
}

type CategorySeed struct {
	Name        string
	Description string
	Fields      []CategoryField
}

// DefaultCategories returns the system categories seeded for every new
// account. The reporting layer relies on their field labels matching the
// configured role vocabulary.
func DefaultCategories() []CategorySeed {
	return []CategorySeed{
		{
			Name:        "🚴 Fitness",
			Description: "Hier kannst du dein Training tracken.",
			Fields: []CategoryField{
				{Label: "Übung", DataType: FieldTypeText},
				{Label: "Dauer", DataType: FieldTypeNumber, Unit: "Minuten"},
				{Label: "Strecke", DataType: FieldTypeNumber, Unit: "km"},
				{Label: "Gewicht", DataType: FieldTypeNumber, Unit: "kg"},
				{Label: "Energie", DataType: FieldTypeNumber, Unit: "kcal"},
			},
		},
		{
			Name:        "🍎 Ernährung",
			Description: "Hier kannst du deine Ernährung tracken.",
			Fields: []CategoryField{
				{Label: "Lebensmittel", DataType: FieldTypeText},
				{Label: "Gewicht", DataType: FieldTypeNumber, Unit: "g"},
				{Label: "Energie", DataType: FieldTypeNumber, Unit: "kcal"},
			},
		},
		{
			Name:        "📖 Tagebuch",
			Description: "Hier kannst du deine Stimmung tracken.",
			Fields: []CategoryField{
				{Label: "Laune", DataType: FieldTypeNumber, Unit: "/10"},
				{Label: "Highlight", DataType: FieldTypeText},
			},
		},
		{
			Name:        "💤 Schlaf",
			Description: "Hier kannst du deinen Schlaf tracken.",
			Fields: []CategoryField{
				{Label: "Dauer", DataType: FieldTypeNumber, Unit: "Stunden"},
				{Label: "Erholung", DataType: FieldTypeNumber, Unit: "/10"},
			},
		},
	}
}
