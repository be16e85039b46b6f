package db

import (
	"time"

	"lifetrack/internal/models"

	"gorm.io/gorm"
)

type EntryRepository struct {
	database *gorm.DB
}

func NewEntryRepository(database *gorm.DB) *EntryRepository {
	return &EntryRepository{database: database}
}

// EntryFilter narrows ListByUser; nil members are ignored. Start and End
// bound occurred_at inclusively, matching the original query semantics.
type EntryFilter struct {
	CategoryID *uint
	Start      *time.Time
	End        *time.Time
}

func (repo *EntryRepository) ListByUser(userID uint, filter EntryFilter) ([]models.Entry, error) {
	query := repo.database.Model(&models.Entry{}).Where("user_id = ?", userID)
	if filter.CategoryID != nil {
		query = query.Where("category_id = ?", *filter.CategoryID)
	}
	if filter.Start != nil {
		query = query.Where("occurred_at >= ?", *filter.Start)
	}
	if filter.End != nil {
		query = query.Where("occurred_at <= ?", *filter.End)
	}

	entries := make([]models.Entry, 0)
	if err := query.Order("occurred_at DESC, id DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *EntryRepository) FindByIDForUser(entryID uint, userID uint) (models.Entry, error) {
	var entry models.Entry
	if err := repo.database.
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error; err != nil {
		return models.Entry{}, err
	}
	return entry, nil
}

func (repo *EntryRepository) Create(entry *models.Entry) error {
	return repo.database.Create(entry).Error
}

func (repo *EntryRepository) Save(entry *models.Entry) error {
	return repo.database.Save(entry).Error
}

func (repo *EntryRepository) Delete(entry *models.Entry) error {
	return repo.database.Delete(entry).Error
}
