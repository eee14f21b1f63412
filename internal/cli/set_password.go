package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/services"
	"gorm.io/gorm"
)

// PasswordReader returns one secret line entered by the operator.
type PasswordReader func(prompt string) (string, error)

func TerminalPasswordReader(stdin *os.File, out io.Writer) PasswordReader {
	return func(prompt string) (string, error) {
		fmt.Fprint(out, prompt)
		secret, err := readSecretLine(stdin)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(secret), nil
	}
}

// RunSetPasswordCommand sets a chosen password without the temporary step.
func RunSetPasswordCommand(database *gorm.DB, email string, read PasswordReader, out io.Writer) error {
	repositories := db.NewRepositories(database)
	user, err := lookupUser(repositories, email)
	if err != nil {
		return err
	}

	password, err := read("New password: ")
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	confirmation, err := read("Repeat password: ")
	if err != nil {
		return fmt.Errorf("read password confirmation: %w", err)
	}

	password = strings.TrimSpace(password)
	if password != strings.TrimSpace(confirmation) {
		return errors.New("passwords do not match")
	}
	if err := services.ValidatePasswordStrength(password); err != nil {
		return errors.New("password must be at least 8 characters and include uppercase, lowercase and a digit")
	}

	passwordHash, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := repositories.Users.UpdatePassword(user.ID, passwordHash, false); err != nil {
		return fmt.Errorf("update user password: %w", err)
	}

	fmt.Fprintf(out, "Password updated for %s\n", user.Email)
	return nil
}
