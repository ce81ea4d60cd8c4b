package domain

import (
	"encoding/json"
	"time"
)

type ReportType string

const (
	ReportProjectPerformance ReportType = "project_performance"
	ReportSales              ReportType = "sales"
	ReportClient             ReportType = "client"
	ReportFinancial          ReportType = "financial"
	ReportCustom             ReportType = "custom"
)

// Generated reports whether the server can build reports of type t on demand.
func (t ReportType) Generated() bool {
	switch t {
	case ReportProjectPerformance, ReportSales, ReportClient:
		return true
	}
	return false
}

type ProjectMetric struct {
	ID                   ID        `json:"id"`
	Project              ID        `json:"project"`
	ProjectName          string    `json:"project_name,omitempty"`
	CompletionPercentage string    `json:"completion_percentage"`
	BudgetUsed           string    `json:"budget_used"`
	TasksCompleted       int       `json:"tasks_completed"`
	TasksTotal           int       `json:"tasks_total"`
	DaysRemaining        int       `json:"days_remaining"`
	IsOnTrack            bool      `json:"is_on_track"`
	Notes                string    `json:"notes,omitempty"`
	RecordedAt           time.Time `json:"recorded_at"`
}

type SalesMetric struct {
	ID                  ID        `json:"id"`
	Client              *ID       `json:"client,omitempty"`
	ClientName          string    `json:"client_name,omitempty"`
	TotalRevenue        string    `json:"total_revenue"`
	TotalProjects       int       `json:"total_projects"`
	CompletedProjects   int       `json:"completed_projects"`
	ActiveProjects      int       `json:"active_projects"`
	AverageProjectValue string    `json:"average_project_value"`
	PeriodStart         string    `json:"period_start"`
	PeriodEnd           string    `json:"period_end"`
	RecordedAt          time.Time `json:"recorded_at"`
}

type ClientMetric struct {
	ID                ID        `json:"id"`
	Client            ID        `json:"client"`
	ClientName        string    `json:"client_name,omitempty"`
	TotalProjects     int       `json:"total_projects"`
	ActiveProjects    int       `json:"active_projects"`
	CompletedProjects int       `json:"completed_projects"`
	TotalSpent        string    `json:"total_spent"`
	SatisfactionScore string    `json:"satisfaction_score"` // 0 to 10
	LastProjectDate   string    `json:"last_project_date,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	RecordedAt        time.Time `json:"recorded_at"`
}

type Report struct {
	ID             ID              `json:"id"`
	Title          string          `json:"title"`
	ReportType     ReportType      `json:"report_type"`
	Description    string          `json:"description,omitempty"`
	CreatedBy      ID              `json:"created_by"`
	CreatedByName  string          `json:"created_by_name,omitempty"`
	StartDate      string          `json:"start_date,omitempty"`
	EndDate        string          `json:"end_date,omitempty"`
	Data           json.RawMessage `json:"data,omitempty"`
	ProjectMetrics []ProjectMetric `json:"project_metrics,omitempty"`
	SalesMetrics   []SalesMetric   `json:"sales_metrics,omitempty"`
	ClientMetrics  []ClientMetric  `json:"client_metrics,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func (r Report) Key() string { return r.ID.String() }

// DateRange bounds a generated report by project start date. Both ends are
// optional YYYY-MM-DD dates.
type DateRange struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// DashboardStats is the headline summary of the reports page. The server
// sends revenue as a plain number.
type DashboardStats struct {
	TotalProjects     int         `json:"total_projects"`
	ActiveProjects    int         `json:"active_projects"`
	CompletedProjects int         `json:"completed_projects"`
	TotalClients      int         `json:"total_clients"`
	TotalRevenue      json.Number `json:"total_revenue"`
	MonthlyProjects   int         `json:"monthly_projects"`
}
