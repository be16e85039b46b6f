package services

import "lifetrack/internal/models"

type SeedCategoryRepository interface {
	CreateBatch(categories []models.Category) error
}

type SeedService struct {
	categories SeedCategoryRepository
}

func NewSeedService(categories SeedCategoryRepository) *SeedService {
	return &SeedService{categories: categories}
}

// SeedDefaultCategories creates the system categories for a fresh
// account. They carry is_system_default and are protected from edits and
// deletion because reporting keys off their names and field labels.
func (service *SeedService) SeedDefaultCategories(userID uint) error {
	seeds := models.DefaultCategories()
	categories := make([]models.Category, 0, len(seeds))
	for _, seed := range seeds {
		categories = append(categories, models.Category{
			UserID:          userID,
			Name:            seed.Name,
			Description:     seed.Description,
			IsSystemDefault: true,
			Fields:          seed.Fields,
		})
	}
	return service.categories.CreateBatch(categories)
}
