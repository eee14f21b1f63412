package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/security"
	"github.com/terraincognita07/gentle75/internal/services"
	"gorm.io/gorm"
)

const temporaryPasswordLength = 12

func lookupUser(repositories *db.Repositories, rawEmail string) (models.User, error) {
	if strings.TrimSpace(rawEmail) == "" {
		return models.User{}, errors.New("email is required")
	}
	email := services.NormalizeAuthEmail(rawEmail)
	if email == "" {
		return models.User{}, fmt.Errorf("invalid email address %q", rawEmail)
	}

	user, err := repositories.Users.FindByNormalizedEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user %s not found", email)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// RunResetPasswordCommand replaces the password with a printed temporary one
// and forces a change on the next login.
func RunResetPasswordCommand(database *gorm.DB, email string, out io.Writer) error {
	repositories := db.NewRepositories(database)
	user, err := lookupUser(repositories, email)
	if err != nil {
		return err
	}

	temporaryPassword, err := security.TemporaryPassword(temporaryPasswordLength)
	if err != nil {
		return fmt.Errorf("generate temporary password: %w", err)
	}
	passwordHash, err := services.HashPassword(temporaryPassword)
	if err != nil {
		return fmt.Errorf("hash temporary password: %w", err)
	}
	if err := repositories.Users.UpdatePassword(user.ID, passwordHash, true); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintln(out, "Password reset successful")
	fmt.Fprintf(out, "Temporary password: %s\n", temporaryPassword)
	fmt.Fprintln(out, "User must change password on next login.")
	return nil
}
