package utils

import (
	"errors"

	"github.com/tempohq/tempo/backend/internal/domain"
)

func ValidateProjectDates(project *domain.Project) error {
	if project.EndDate != nil && project.EndDate.Before(project.StartDate) {
		return errors.New("End date cannot be before start date")
	}
	return nil
}
