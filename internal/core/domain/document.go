package domain

import "time"

// Storage buckets used by the portal.
const (
	BucketProjectDocuments = "project-documents"
	BucketProfilePhotos    = "profile-photos"
)

// MaxProfilePhotoBytes caps client profile photo uploads.
const MaxProfilePhotoBytes = 5 << 20

// Document is a file attached to a project. Public documents are visible in
// the client portal.
type Document struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	Name       string    `json:"name" db:"name"`
	FileURL    string    `json:"file_url" db:"file_url"`
	FileType   string    `json:"file_type,omitempty" db:"file_type"`
	Size       int64     `json:"size" db:"size"`
	IsPublic   bool      `json:"is_public" db:"is_public"`
	UploadedBy *string   `json:"uploaded_by,omitempty" db:"uploaded_by"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// SignedURL is a time-limited link to a stored object.
type SignedURL struct {
	URL       string    `json:"url"`
	Bucket    string    `json:"bucket"`
	PublicURL string    `json:"publicUrl,omitempty"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DashboardStats are the counters on the client dashboard.
type DashboardStats struct {
	PhasesCount     int `json:"phasesCount"`
	CompletedPhases int `json:"completedPhases"`
	DocumentsCount  int `json:"documentsCount"`
	OpenTickets     int `json:"openTickets"`
}

// DashboardSummary is everything the client dashboard renders.
type DashboardSummary struct {
	Project   *Project       `json:"project"`
	Phases    []Phase        `json:"phases"`
	Documents []Document     `json:"documents"`
	Tickets   []Ticket       `json:"tickets"`
	Stats     DashboardStats `json:"stats"`
}

// NewDashboardSummary computes the stats for the given collections.
func NewDashboardSummary(p *Project, phases []Phase, docs []Document, tickets []Ticket) DashboardSummary {
	s := DashboardSummary{
		Project:   p,
		Phases:    phases,
		Documents: docs,
		Tickets:   tickets,
		Stats: DashboardStats{
			PhasesCount:    len(phases),
			DocumentsCount: len(docs),
		},
	}
	for _, ph := range phases {
		if ph.Status == PhaseCompleted {
			s.Stats.CompletedPhases++
		}
	}
	for i := range tickets {
		if tickets[i].IsOpen() {
			s.Stats.OpenTickets++
		}
	}
	return s
}
