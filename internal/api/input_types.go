package api

import "encoding/json"

type registerInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	FullName        string `json:"full_name" form:"full_name"`
}

type loginInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type dayLogInput struct {
	Notes    string   `json:"notes"`
	Mood     string   `json:"mood"`
	Symptoms []string `json:"symptoms"`
}

type taskUpdateInput struct {
	Completed *bool   `json:"completed"`
	Variant   *string `json:"variant"`
}

// pmsSettingsInput keeps numbers raw so malformed values fall back to
// defaults instead of rejecting the whole form.
type pmsSettingsInput struct {
	Enabled            bool            `json:"pms_safe_enabled"`
	CycleLength        json.RawMessage `json:"cycle_length"`
	PMSWindowLength    json.RawMessage `json:"pms_window_length"`
	WaterGoalLiters    json.RawMessage `json:"water_goal_liters"`
	PMSWaterGoalLiters json.RawMessage `json:"pms_water_goal_liters"`
	CycleDay1Date      *string         `json:"cycle_day1_date"`
}

type profileInput struct {
	FullName string `json:"full_name" form:"full_name"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}
