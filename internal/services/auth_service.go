package services

import (
	"context"
	"errors"
	"time"

	"lifetrack/internal/models"
	"lifetrack/internal/security"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountInactive     = errors.New("account not activated")
	ErrUserExists          = errors.New("name or email already taken")
	ErrRegistrationPending = errors.New("registration already started, check email or wait")
	ErrUserNotFound        = errors.New("user not found")
	ErrWrongCode           = errors.New("wrong verification code")
)

const verificationCodeLength = 6

type AuthUserRepository interface {
	FindByName(name string) (models.User, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByNameOrEmail(name string, email string) (models.User, bool, error)
	Create(user *models.User) error
	Save(user *models.User) error
	Activate(userID uint) error
	DeleteAccountAndRelatedData(userID uint) error
}

type VerificationMailer interface {
	SendVerificationCode(ctx context.Context, to string, code string) error
}

type AuthService struct {
	users               AuthUserRepository
	mailer              VerificationMailer
	verificationEnabled bool
	pendingTTL          time.Duration
}

func NewAuthService(users AuthUserRepository, mailer VerificationMailer, verificationEnabled bool, pendingTTL time.Duration) *AuthService {
	return &AuthService{
		users:               users,
		mailer:              mailer,
		verificationEnabled: verificationEnabled,
		pendingTTL:          pendingTTL,
	}
}

// Register creates a new account. With verification enabled the user
// starts inactive with a 6-digit code delivered by mail; a stale inactive
// registration for the same name or email is replaced, a fresh one is
// rejected so the mailed code stays valid.
func (service *AuthService) Register(ctx context.Context, name string, email string, password string, now time.Time) (models.User, error) {
	existing, found, err := service.users.FindByNameOrEmail(name, email)
	if err != nil {
		return models.User{}, err
	}
	if found {
		if existing.IsActive {
			return models.User{}, ErrUserExists
		}
		if !PendingRegistrationExpired(existing.CreatedAt, now, service.pendingTTL) {
			return models.User{}, ErrRegistrationPending
		}
		if err := service.users.DeleteAccountAndRelatedData(existing.ID); err != nil {
			return models.User{}, err
		}
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		IsActive:     true,
		CreatedAt:    now,
	}

	if service.verificationEnabled {
		code, err := security.RandomString(verificationCodeLength, security.DigitsAlphabet)
		if err != nil {
			return models.User{}, err
		}
		user.IsActive = false
		user.VerificationCode = code

		if err := service.mailer.SendVerificationCode(ctx, email, code); err != nil {
			return models.User{}, err
		}
	}

	if err := service.users.Create(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Authenticate checks name and password, then the activation state; the
// credential error is identical for unknown name and wrong password.
func (service *AuthService) Authenticate(name string, password string) (models.User, error) {
	user, err := service.users.FindByName(name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, ErrAccountInactive
	}
	return user, nil
}

// Verify activates the account matching the mailed code. The returned
// flag reports an account that was already active.
func (service *AuthService) Verify(email string, code string) (bool, error) {
	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrUserNotFound
		}
		return false, err
	}

	if user.IsActive {
		return true, nil
	}
	if user.VerificationCode == "" || user.VerificationCode != code {
		return false, ErrWrongCode
	}

	return false, service.users.Activate(user.ID)
}

// PendingRegistrationExpired reports whether an unverified registration
// is old enough to be replaced by a new attempt.
func PendingRegistrationExpired(createdAt time.Time, now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return createdAt.Before(now.Add(-ttl))
}
