package domain

import (
	"time"
)

type UserSettings struct {
	ID                 string    `json:"id"`
	UserID             string    `json:"userId"`
	Theme              string    `json:"theme"`
	Language           string    `json:"language"`
	EmailNotifications bool      `json:"emailNotifications"`
	PushNotifications  bool      `json:"pushNotifications"`
	WeeklyDigest       bool      `json:"weeklyDigest"`
	DefaultProjectID   *string   `json:"defaultProjectId"`
	WorkingHours       int       `json:"workingHours"`
	TimeZone           string    `json:"timeZone"`
	DateFormat         string    `json:"dateFormat"`
	TimeFormat         string    `json:"timeFormat"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultSettings is the record created on first access to a user's settings.
func DefaultSettings(userID string) *UserSettings {
	return &UserSettings{
		UserID:             userID,
		Theme:              "system",
		Language:           "en",
		EmailNotifications: true,
		PushNotifications:  true,
		WeeklyDigest:       true,
		WorkingHours:       8,
		TimeZone:           "UTC",
		DateFormat:         "MM/dd/yyyy",
		TimeFormat:         "HH:mm",
	}
}
