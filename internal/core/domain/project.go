package domain

import (
	"strings"
	"time"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectActive     ProjectStatus = "active"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectPaused     ProjectStatus = "paused"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// DefaultClientPIN applies when a project row carries no PIN.
const DefaultClientPIN = "000000"

// DateLayout is the wire format of calendar dates (start/end dates, events).
const DateLayout = "2006-01-02"

// Valid reports whether s is a known project status.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanning, ProjectActive, ProjectInProgress, ProjectPaused, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Closed reports whether the project no longer has a running schedule.
func (s ProjectStatus) Closed() bool {
	return s == ProjectCompleted || s == ProjectCancelled
}

// Project is the unit of work shared between the back-office and one client.
type Project struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description,omitempty" db:"description"`
	ClientID    string        `json:"client_id,omitempty" db:"client_id"`
	ClientName  string        `json:"client_name" db:"client_name"`
	ClientEmail string        `json:"client_email,omitempty" db:"client_email"`
	ClientPhone string        `json:"client_phone,omitempty" db:"client_phone"`
	Location    *string       `json:"location,omitempty" db:"location"`
	Status      ProjectStatus `json:"status" db:"status"`
	Progress    int           `json:"progress" db:"progress"`
	Budget      float64       `json:"budget" db:"budget"`
	StartDate   string        `json:"start_date,omitempty" db:"start_date"`
	EndDate     string        `json:"end_date,omitempty" db:"end_date"`
	PIN         string        `json:"pin,omitempty" db:"pin"`
	CreatedBy   string        `json:"created_by,omitempty" db:"created_by"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	Phases      []Phase       `json:"phases,omitempty" db:"-"`
}

// EffectivePIN returns the stored PIN or the default one.
func (p *Project) EffectivePIN() string {
	if pin := strings.TrimSpace(p.PIN); pin != "" {
		return pin
	}
	return DefaultClientPIN
}

// IsOverdue reports whether the end date lies before today while the project
// is still running. Projects without a parseable end date are never overdue.
func (p *Project) IsOverdue(today time.Time) bool {
	if p.Status.Closed() || p.EndDate == "" {
		return false
	}
	end, err := time.Parse(DateLayout, p.EndDate[:min(len(p.EndDate), len(DateLayout))])
	if err != nil {
		return false
	}
	y, m, d := today.Date()
	return end.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

// ProjectStats aggregates projects by status for the dashboard.
type ProjectStats struct {
	Total           int     `json:"total"`
	Planning        int     `json:"planning"`
	InProgress      int     `json:"inProgress"`
	Paused          int     `json:"paused"`
	Completed       int     `json:"completed"`
	Overdue         int     `json:"overdue"`
	AverageProgress float64 `json:"averageProgress"`
}

// ComputeProjectStats folds a project list into ProjectStats. "active" counts
// as in progress.
func ComputeProjectStats(projects []Project, today time.Time) ProjectStats {
	st := ProjectStats{Total: len(projects)}
	if len(projects) == 0 {
		return st
	}
	sum := 0
	for i := range projects {
		p := &projects[i]
		switch p.Status {
		case ProjectPlanning:
			st.Planning++
		case ProjectActive, ProjectInProgress:
			st.InProgress++
		case ProjectPaused:
			st.Paused++
		case ProjectCompleted:
			st.Completed++
		}
		if p.IsOverdue(today) {
			st.Overdue++
		}
		sum += p.Progress
	}
	st.AverageProgress = float64(sum) / float64(len(projects))
	return st
}
