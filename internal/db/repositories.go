package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Profiles      *ProfileRepository
	Settings      *SettingsRepository
	ChallengeDays *ChallengeDayRepository
	Tasks         *TaskRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Profiles:      NewProfileRepository(database),
		Settings:      NewSettingsRepository(database),
		ChallengeDays: NewChallengeDayRepository(database),
		Tasks:         NewTaskRepository(database),
	}
}
