package models

import "time"

// Entry is one recorded data point against a Category. Data holds the
// submitted values keyed by field label; the column is schemaless JSON so
// category schemas can differ without migrations.
type Entry struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	UserID     uint           `gorm:"not null;index" json:"-"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	OccurredAt time.Time      `gorm:"not null;index" json:"occurred_at"`
	Note       string         `json:"note"`
	Data       map[string]any `gorm:"serializer:json" json:"data"`
	CreatedAt  time.Time      `json:"-"`
	UpdatedAt  time.Time      `json:"-"`
}
