package services

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gentle75/internal/models"
	"gorm.io/gorm"
)

type challengeDayRepositoryStub struct {
	days        []models.ChallengeDay
	listErr     error
	createErr   error
	updateErr   error
	createCalls int
}

func newChallengeDayRepositoryStub() *challengeDayRepositoryStub {
	return &challengeDayRepositoryStub{days: make([]models.ChallengeDay, 0)}
}

func (stub *challengeDayRepositoryStub) ListByUser(userID uint) ([]models.ChallengeDay, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.ChallengeDay, 0)
	for _, day := range stub.days {
		if day.UserID == userID {
			result = append(result, day)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].DayNumber < result[j].DayNumber
	})
	return result, nil
}

func (stub *challengeDayRepositoryStub) ListByUserNewestFirst(userID uint) ([]models.ChallengeDay, error) {
	days, err := stub.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].DayNumber > days[j].DayNumber
	})
	return days, nil
}

func (stub *challengeDayRepositoryStub) ListAnchors(userID uint) ([]models.ChallengeDay, error) {
	return stub.ListByUser(userID)
}

func (stub *challengeDayRepositoryStub) CreateBatch(days []models.ChallengeDay) error {
	stub.createCalls++
	if stub.createErr != nil {
		return stub.createErr
	}
	for _, day := range days {
		if _, found, _ := stub.FindByUserAndNumber(day.UserID, day.DayNumber); found {
			continue
		}
		if day.ID == uuid.Nil {
			day.ID = uuid.New()
		}
		stub.days = append(stub.days, day)
	}
	return nil
}

func (stub *challengeDayRepositoryStub) FindByUserAndNumber(userID uint, dayNumber int) (models.ChallengeDay, bool, error) {
	if stub.listErr != nil {
		return models.ChallengeDay{}, false, stub.listErr
	}
	for _, day := range stub.days {
		if day.UserID == userID && day.DayNumber == dayNumber {
			return day, true, nil
		}
	}
	return models.ChallengeDay{}, false, nil
}

func (stub *challengeDayRepositoryStub) FindByIDForUser(dayID uuid.UUID, userID uint) (models.ChallengeDay, error) {
	for _, day := range stub.days {
		if day.ID == dayID && day.UserID == userID {
			return day, nil
		}
	}
	return models.ChallengeDay{}, gorm.ErrRecordNotFound
}

func (stub *challengeDayRepositoryStub) UpdateLog(dayID uuid.UUID, notes string, mood *string, symptoms []string) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	for index := range stub.days {
		if stub.days[index].ID == dayID {
			stub.days[index].Notes = notes
			stub.days[index].Mood = mood
			stub.days[index].Symptoms = symptoms
		}
	}
	return nil
}

func (stub *challengeDayRepositoryStub) UpdateCompletion(dayID uuid.UUID, completed bool, completedAt *time.Time) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	for index := range stub.days {
		if stub.days[index].ID == dayID {
			stub.days[index].IsCompleted = completed
			stub.days[index].CompletedAt = completedAt
		}
	}
	return nil
}

type taskRepositoryStub struct {
	tasks     []models.Task
	listErr   error
	createErr error
	updateErr error
}

func newTaskRepositoryStub() *taskRepositoryStub {
	return &taskRepositoryStub{tasks: make([]models.Task, 0)}
}

func (stub *taskRepositoryStub) ListKeysByDay(dayID uuid.UUID) ([]string, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	keys := make([]string, 0)
	for _, task := range stub.tasks {
		if task.ChallengeDayID == dayID {
			keys = append(keys, task.Key)
		}
	}
	return keys, nil
}

func (stub *taskRepositoryStub) ListByDay(dayID uuid.UUID) ([]models.Task, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Task, 0)
	for _, task := range stub.tasks {
		if task.ChallengeDayID == dayID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (stub *taskRepositoryStub) ListByUser(userID uint) ([]models.Task, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	result := make([]models.Task, 0)
	for _, task := range stub.tasks {
		if task.UserID == userID {
			result = append(result, task)
		}
	}
	return result, nil
}

func (stub *taskRepositoryStub) CreateBatch(tasks []models.Task) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	for _, task := range tasks {
		duplicate := false
		for _, existing := range stub.tasks {
			if existing.ChallengeDayID == task.ChallengeDayID && existing.Key == task.Key {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		if task.ID == uuid.Nil {
			task.ID = uuid.New()
		}
		stub.tasks = append(stub.tasks, task)
	}
	return nil
}

func (stub *taskRepositoryStub) FindByIDForUser(taskID uuid.UUID, userID uint) (models.Task, error) {
	for _, task := range stub.tasks {
		if task.ID == taskID && task.UserID == userID {
			return task, nil
		}
	}
	return models.Task{}, gorm.ErrRecordNotFound
}

func (stub *taskRepositoryStub) UpdateCompleted(taskID uuid.UUID, completed bool) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	for index := range stub.tasks {
		if stub.tasks[index].ID == taskID {
			stub.tasks[index].Completed = completed
		}
	}
	return nil
}

func (stub *taskRepositoryStub) UpdateVariant(taskID uuid.UUID, variant *string) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	for index := range stub.tasks {
		if stub.tasks[index].ID == taskID {
			stub.tasks[index].Variant = variant
		}
	}
	return nil
}

func (stub *taskRepositoryStub) tasksForDay(dayID uuid.UUID) []models.Task {
	tasks, _ := stub.ListByDay(dayID)
	return tasks
}

// findErrOnCall limits findErr to one 1-based FindByUserID call; zero fails every call.
type settingsRepositoryStub struct {
	settings      map[uint]models.UserSettings
	findErr       error
	findErrOnCall int
	findCalls     int
	createErr     error
	updateErr     error
}

func newSettingsRepositoryStub() *settingsRepositoryStub {
	return &settingsRepositoryStub{settings: make(map[uint]models.UserSettings)}
}

func (stub *settingsRepositoryStub) FindByUserID(userID uint) (models.UserSettings, bool, error) {
	stub.findCalls++
	if stub.findErr != nil && (stub.findErrOnCall == 0 || stub.findErrOnCall == stub.findCalls) {
		return models.UserSettings{}, false, stub.findErr
	}
	settings, ok := stub.settings[userID]
	return settings, ok, nil
}

func (stub *settingsRepositoryStub) CreateIfMissing(settings *models.UserSettings) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	if _, ok := stub.settings[settings.UserID]; !ok {
		stub.settings[settings.UserID] = *settings
	}
	return nil
}

func (stub *settingsRepositoryStub) UpdatePMSSettings(settings models.UserSettings) error {
	if stub.updateErr != nil {
		return stub.updateErr
	}
	stub.settings[settings.UserID] = settings
	return nil
}

type profileRepositoryStub struct {
	profiles      map[uint]models.Profile
	findErr       error
	findErrOnCall int
	findCalls     int
}

func newProfileRepositoryStub() *profileRepositoryStub {
	return &profileRepositoryStub{profiles: make(map[uint]models.Profile)}
}

func (stub *profileRepositoryStub) FindByUserID(userID uint) (models.Profile, bool, error) {
	stub.findCalls++
	if stub.findErr != nil && (stub.findErrOnCall == 0 || stub.findErrOnCall == stub.findCalls) {
		return models.Profile{}, false, stub.findErr
	}
	profile, ok := stub.profiles[userID]
	return profile, ok, nil
}

func (stub *profileRepositoryStub) CreateIfMissing(profile *models.Profile) error {
	if _, ok := stub.profiles[profile.UserID]; !ok {
		stub.profiles[profile.UserID] = *profile
	}
	return nil
}

func (stub *profileRepositoryStub) UpdateFullName(userID uint, fullName string) error {
	profile := stub.profiles[userID]
	profile.UserID = userID
	profile.FullName = fullName
	stub.profiles[userID] = profile
	return nil
}

type userRepositoryStub struct {
	users     map[uint]models.User
	nextID    uint
	createErr error
}

func newUserRepositoryStub() *userRepositoryStub {
	return &userRepositoryStub{users: make(map[uint]models.User), nextID: 1}
}

func (stub *userRepositoryStub) ExistsByNormalizedEmail(email string) (bool, error) {
	_, err := stub.FindByNormalizedEmail(email)
	return err == nil, nil
}

func (stub *userRepositoryStub) FindByNormalizedEmail(email string) (models.User, error) {
	for _, user := range stub.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (stub *userRepositoryStub) FindByID(userID uint) (models.User, error) {
	user, ok := stub.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (stub *userRepositoryStub) Create(user *models.User) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	user.ID = stub.nextID
	stub.nextID++
	stub.users[user.ID] = *user
	return nil
}

func (stub *userRepositoryStub) UpdatePassword(userID uint, passwordHash string, mustChangePassword bool) error {
	user := stub.users[userID]
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	stub.users[userID] = user
	return nil
}
