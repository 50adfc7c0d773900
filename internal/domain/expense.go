package domain

import (
	"time"
)

type ExpenseStatus string

const (
	ExpenseStatusPending  ExpenseStatus = "PENDING"
	ExpenseStatusApproved ExpenseStatus = "APPROVED"
	ExpenseStatusRejected ExpenseStatus = "REJECTED"
)

func (s ExpenseStatus) Valid() bool {
	switch s {
	case ExpenseStatusPending, ExpenseStatusApproved, ExpenseStatusRejected:
		return true
	}
	return false
}

type Expense struct {
	ID          string        `json:"id"`
	UserID      string        `json:"userId"`
	ProjectID   string        `json:"projectId"`
	Amount      float64       `json:"amount"`
	Description string        `json:"description"`
	Date        time.Time     `json:"date"`
	Status      ExpenseStatus `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`

	// Denormalized for list views.
	UserName    string `json:"userName,omitempty"`
	ProjectName string `json:"projectName,omitempty"`
}
