package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tempohq/tempo/backend/internal/domain"
)

var firstNames = []string{
	"James", "Mary", "Robert", "Patricia", "John", "Jennifer", "Michael", "Linda",
	"David", "Elizabeth", "William", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Daniel", "Lisa", "Matthew", "Nancy",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson", "Taylor",
}

func GenerateRandomFullName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

var roles = []domain.Role{
	domain.RoleAdmin,
	domain.RoleManager,
	domain.RoleEmployee,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

func GenerateEmailFromFullName(fullName string, emailDomainName string) string {
	local := strings.ToLower(strings.ReplaceAll(fullName, " ", "."))

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         fullName,
		Email:        GenerateEmailFromFullName(fullName, emailDomainName),
		PasswordHash: string(passwordHash),
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}

var projectStatuses = []domain.ProjectStatus{
	domain.ProjectStatusPlanning,
	domain.ProjectStatusActive,
	domain.ProjectStatusCompleted,
	domain.ProjectStatusOnHold,
}

var projectAdjectives = []string{"Internal", "Customer", "Mobile", "Cloud", "Legacy", "Annual"}
var projectNouns = []string{"Portal", "Migration", "Redesign", "Integration", "Rollout", "Audit"}

// GenerateRandomProject builds a project with a plausible status and date
// range. Completed projects always get an end date after the start date.
func GenerateRandomProject() *domain.Project {
	status := projectStatuses[rand.Intn(len(projectStatuses))]
	start := time.Now().AddDate(0, -rand.Intn(12), -rand.Intn(28))

	project := &domain.Project{
		Name:        projectAdjectives[rand.Intn(len(projectAdjectives))] + " " + projectNouns[rand.Intn(len(projectNouns))],
		Description: "Auto-generated project for demo data",
		Status:      status,
		StartDate:   start,
	}

	if status == domain.ProjectStatusCompleted || rand.Intn(2) == 0 {
		end := start.AddDate(0, rand.Intn(6)+1, rand.Intn(28))
		project.EndDate = &end
	}

	return project
}
