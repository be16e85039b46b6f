package db

import (
	"time"

	"lifetrack/internal/models"

	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByName(name string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("name = ?", name).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

// FindByNameOrEmail backs the registration conflict check, which must
// catch either credential being taken.
func (repo *UserRepository) FindByNameOrEmail(name string, email string) (models.User, bool, error) {
	var user models.User
	result := repo.database.
		Where("name = ? OR lower(trim(email)) = ?", name, email).
		Limit(1).
		Find(&user)
	if result.Error != nil {
		return models.User{}, false, result.Error
	}
	return user, result.RowsAffected > 0, nil
}

func (repo *UserRepository) NameTakenByOther(name string, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("name = ? AND id <> ?", name, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) EmailTakenByOther(email string, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ? AND id <> ?", email, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) Activate(userID uint) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]any{
		"is_active":         true,
		"verification_code": "",
	}).Error
}

// DeleteAccountAndRelatedData removes the user together with every owned
// category, field and entry.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Entry{}).Error; err != nil {
			return err
		}
		if err := tx.
			Where("category_id IN (?)", tx.Model(&models.Category{}).Select("id").Where("user_id = ?", userID)).
			Delete(&models.CategoryField{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// ListExpiredPendingIDs returns inactive registrations created before the
// cutoff; deleting them frees the name and email for a fresh attempt.
func (repo *UserRepository) ListExpiredPendingIDs(cutoff time.Time) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.User{}).
		Where("is_active = ? AND created_at < ?", false, cutoff).
		Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
