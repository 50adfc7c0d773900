package domain

type DashboardSummary struct {
	Employees       int     `json:"employees"`
	Projects        int     `json:"projects"`
	ActiveProjects  int     `json:"activeProjects"`
	HoursThisMonth  float64 `json:"hoursThisMonth"`
	PendingExpenses float64 `json:"pendingExpenses"`
}
