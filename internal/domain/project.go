package domain

import "time"

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "draft"
	ProjectActive    ProjectStatus = "active"
	ProjectOnHold    ProjectStatus = "on_hold"
	ProjectCompleted ProjectStatus = "completed"
	ProjectCancelled ProjectStatus = "cancelled"
)

type Project struct {
	ID             ID            `json:"id"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	ProjectType    string        `json:"project_type,omitempty"`
	Status         ProjectStatus `json:"status"`
	Priority       string        `json:"priority,omitempty"`
	Client         *ID           `json:"client,omitempty"`
	ClientName     string        `json:"client_name,omitempty"`
	ProjectManager *ID           `json:"project_manager,omitempty"`
	StartDate      string        `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate        string        `json:"end_date,omitempty"`
	Deadline       string        `json:"deadline,omitempty"`
	Budget         string        `json:"budget,omitempty"` // decimal as sent by the server
	Cost           string        `json:"cost,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func (p Project) Key() string { return p.ID.String() }

// ProjectInput is the writable subset used by create and update.
type ProjectInput struct {
	Title          string        `json:"title,omitempty"`
	Description    string        `json:"description,omitempty"`
	ProjectType    string        `json:"project_type,omitempty"`
	Status         ProjectStatus `json:"status,omitempty"`
	Priority       string        `json:"priority,omitempty"`
	Client         *ID           `json:"client,omitempty"`
	ProjectManager *ID           `json:"project_manager,omitempty"`
	StartDate      string        `json:"start_date,omitempty"`
	EndDate        string        `json:"end_date,omitempty"`
	Deadline       string        `json:"deadline,omitempty"`
	Budget         string        `json:"budget,omitempty"`
}
