package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/gentle75/internal/db"
	"github.com/terraincognita07/gentle75/internal/services"
	"gorm.io/gorm"
)

// RunSeedCommand re-runs the idempotent first-use routine for one account.
func RunSeedCommand(database *gorm.DB, email string, now time.Time, location *time.Location, out io.Writer) error {
	repositories := db.NewRepositories(database)
	user, err := lookupUser(repositories, email)
	if err != nil {
		return err
	}

	settingsService := services.NewSettingsService(repositories.Settings, repositories.Profiles, repositories.Users)
	challengeService := services.NewChallengeService(repositories.ChallengeDays, repositories.Tasks, settingsService)
	if err := challengeService.SeedUserData(user.ID, "", now, location); err != nil {
		return fmt.Errorf("seed user data: %w", err)
	}

	days, err := repositories.ChallengeDays.ListByUser(user.ID)
	if err != nil {
		return fmt.Errorf("count challenge days: %w", err)
	}
	tasks, err := repositories.Tasks.ListByUser(user.ID)
	if err != nil {
		return fmt.Errorf("count tasks: %w", err)
	}

	fmt.Fprintf(out, "Seeded %s: %d days, %d tasks\n", user.Email, len(days), len(tasks))
	return nil
}
