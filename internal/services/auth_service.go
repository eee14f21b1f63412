package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/terraincognita07/gentle75/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrAuthEmailTaken     = errors.New("auth email taken")
	ErrAuthRegisterFailed = errors.New("auth register failed")
	ErrAuthUserLookup     = errors.New("auth user lookup failed")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID uint) (models.User, error)
	Create(user *models.User) error
}

type UserSeeder interface {
	SeedUserData(userID uint, fullName string, now time.Time, location *time.Location) error
}

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FullName        string
}

type AuthService struct {
	users  AuthUserRepository
	seeder UserSeeder
}

func NewAuthService(users AuthUserRepository, seeder UserSeeder) *AuthService {
	return &AuthService{users: users, seeder: seeder}
}

// Register creates the account and runs the seed routine for it. A failed
// seed does not undo the account; the next dashboard read repairs it.
func (service *AuthService) Register(input RegisterInput, now time.Time, location *time.Location) (models.User, error) {
	email := NormalizeAuthEmail(input.Email)
	if email == "" {
		return models.User{}, ErrAuthEmailInvalid
	}
	password := strings.TrimSpace(input.Password)
	if confirm := strings.TrimSpace(input.ConfirmPassword); confirm != "" && confirm != password {
		return models.User{}, ErrAuthPasswordMismatch
	}
	if err := ValidatePasswordStrength(password); err != nil {
		return models.User{}, err
	}

	exists, err := service.users.ExistsByNormalizedEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}
	if exists {
		return models.User{}, ErrAuthEmailTaken
	}

	passwordHash, err := HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
	}
	if err := service.users.Create(&user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthRegisterFailed, err)
	}

	if service.seeder != nil {
		if err := service.seeder.SeedUserData(user.ID, input.FullName, now, location); err != nil {
			log.Printf("seed user %d after registration: %v", user.ID, err)
		}
	}
	return user, nil
}

func (service *AuthService) Authenticate(emailRaw string, passwordRaw string) (models.User, error) {
	email, password, err := NormalizeCredentialsInput(emailRaw, passwordRaw)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.users.FindByNormalizedEmail(email)
	if err != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrAuthCredentialsInvalid
	}
	return user, nil
}

func (service *AuthService) FindByID(userID uint) (models.User, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrAuthUserLookup, err)
	}
	return user, nil
}
