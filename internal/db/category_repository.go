package db

import (
	"lifetrack/internal/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	database *gorm.DB
}

func NewCategoryRepository(database *gorm.DB) *CategoryRepository {
	return &CategoryRepository{database: database}
}

func (repo *CategoryRepository) ListByUser(userID uint) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := repo.database.
		Preload("Fields", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (repo *CategoryRepository) FindByIDForUser(categoryID uint, userID uint) (models.Category, error) {
	var category models.Category
	if err := repo.database.
		Preload("Fields", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("position ASC, id ASC")
		}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		First(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (repo *CategoryRepository) ExistsForUser(categoryID uint, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Category{}).
		Where("id = ? AND user_id = ?", categoryID, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

// Create persists the category and its field rows in one transaction,
// numbering positions in the order the fields were given.
func (repo *CategoryRepository) Create(category *models.Category) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for index := range category.Fields {
			category.Fields[index].Position = index
		}
		return tx.Create(category).Error
	})
}

func (repo *CategoryRepository) UpdateNameAndDescription(categoryID uint, name string, description string) error {
	return repo.database.Model(&models.Category{}).Where("id = ?", categoryID).Updates(map[string]any{
		"name":        name,
		"description": description,
	}).Error
}

// Delete cascades to the category's fields and entries.
func (repo *CategoryRepository) Delete(category *models.Category) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("category_id = ?", category.ID).Delete(&models.CategoryField{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, category.ID).Error
	})
}

func (repo *CategoryRepository) CreateBatch(categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		for outer := range categories {
			for index := range categories[outer].Fields {
				categories[outer].Fields[index].Position = index
			}
			if err := tx.Create(&categories[outer]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
