package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gentle75/internal/models"
	"github.com/terraincognita07/gentle75/internal/services"
)

type taskView struct {
	models.Task
	DisplayTitle string `json:"display_title"`
	Detail       string `json:"detail"`
	VariantTitle string `json:"variant_title,omitempty"`
}

type dayView struct {
	models.ChallengeDay
	Date              string   `json:"date"`
	IsToday           bool     `json:"is_today"`
	IsPMSWindow       bool     `json:"is_pms_window"`
	VariantsAvailable bool     `json:"variants_available"`
	MoodLabel         string   `json:"mood_label,omitempty"`
	SymptomLabels     []string `json:"symptom_labels"`
}

type timelineItem struct {
	DayNumber   int    `json:"day_number"`
	Date        string `json:"date"`
	IsCompleted bool   `json:"is_completed"`
	IsToday     bool   `json:"is_today"`
	IsFuture    bool   `json:"is_future"`
}

type catalogItem struct {
	Key      string `json:"key"`
	Title    string `json:"title"`
	Detail   string `json:"detail,omitempty"`
	Required bool   `json:"required,omitempty"`
	PMSOnly  bool   `json:"pms_only,omitempty"`
}

// buildTaskView localizes the catalog title. A chosen workout variant replaces the
// title the way the day view shows it.
func (handler *Handler) buildTaskView(c *fiber.Ctx, task models.Task) taskView {
	view := taskView{
		Task:         task,
		DisplayTitle: task.Title,
	}
	if _, known := models.FindTaskKind(task.Key); known {
		view.DisplayTitle = handler.translate(c, "task."+task.Key+".title")
		view.Detail = handler.translate(c, "task."+task.Key+".detail")
	}
	if task.Variant != nil && *task.Variant != "" {
		view.VariantTitle = handler.translate(c, "variant."+*task.Variant)
		view.DisplayTitle = view.VariantTitle
	}
	return view
}

func (handler *Handler) taskViews(c *fiber.Ctx, tasks []models.Task) []taskView {
	views := make([]taskView, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, handler.buildTaskView(c, task))
	}
	return views
}

func (handler *Handler) buildDayView(c *fiber.Ctx, day models.ChallengeDay, settings models.UserSettings, today time.Time) dayView {
	inWindow := services.IsInPMSWindow(day.Date, settings)
	view := dayView{
		ChallengeDay:      day,
		Date:              services.FormatCalendarDate(day.Date),
		IsToday:           services.StoredDate(day.Date).Equal(today),
		IsPMSWindow:       inWindow,
		VariantsAvailable: inWindow,
		SymptomLabels:     make([]string, 0, len(day.Symptoms)),
	}
	if day.Mood != nil {
		view.MoodLabel = handler.translate(c, "mood."+*day.Mood)
	}
	for _, symptom := range day.Symptoms {
		view.SymptomLabels = append(view.SymptomLabels, handler.translate(c, "symptom."+symptom))
	}
	return view
}

func buildTimeline(days []models.ChallengeDay, today time.Time) []timelineItem {
	items := make([]timelineItem, 0, len(days))
	for _, day := range days {
		date := services.StoredDate(day.Date)
		items = append(items, timelineItem{
			DayNumber:   day.DayNumber,
			Date:        services.FormatCalendarDate(date),
			IsCompleted: day.IsCompleted,
			IsToday:     date.Equal(today),
			IsFuture:    date.After(today),
		})
	}
	return items
}
