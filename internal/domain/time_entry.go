package domain

import (
	"time"
)

type TimeEntry struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	ProjectID   string    `json:"projectId"`
	Date        time.Time `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`

	// Denormalized for list views.
	UserName    string `json:"userName,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
}
