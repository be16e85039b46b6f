package services

import (
	"errors"

	"lifetrack/internal/models"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNameTaken  = errors.New("name already taken")
	ErrEmailTaken = errors.New("email already taken")
)

type SettingsUserRepository interface {
	FindByID(userID uint) (models.User, error)
	NameTakenByOther(name string, userID uint) (bool, error)
	EmailTakenByOther(email string, userID uint) (bool, error)
	Save(user *models.User) error
	DeleteAccountAndRelatedData(userID uint) error
}

type SettingsService struct {
	users SettingsUserRepository
}

func NewSettingsService(users SettingsUserRepository) *SettingsService {
	return &SettingsService{users: users}
}

// ProfileUpdate patches selectively: empty members leave the stored value
// untouched, mirroring the optional fields of the profile form.
type ProfileUpdate struct {
	Name     string
	Email    string
	Password string
}

func (service *SettingsService) UpdateProfile(userID uint, update ProfileUpdate) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, err
	}

	if update.Name != "" {
		taken, err := service.users.NameTakenByOther(update.Name, userID)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrNameTaken
		}
		user.Name = update.Name
	}

	if update.Email != "" {
		taken, err := service.users.EmailTakenByOther(update.Email, userID)
		if err != nil {
			return models.User{}, err
		}
		if taken {
			return models.User{}, ErrEmailTaken
		}
		user.Email = update.Email
	}

	if update.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(update.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.User{}, err
		}
		user.PasswordHash = string(passwordHash)
	}

	if err := service.users.Save(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (service *SettingsService) DeleteAccount(userID uint) error {
	return service.users.DeleteAccountAndRelatedData(userID)
}
