package domain

import (
	"strings"
	"time"
)

type PhaseStatus string

const (
	PhasePending    PhaseStatus = "pending"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// Phase is one step of a project's timeline.
type Phase struct {
	ID          string         `json:"id" db:"id"`
	ProjectID   string         `json:"project_id" db:"project_id"`
	Name        string         `json:"name" db:"name"`
	Description string         `json:"description,omitempty" db:"description"`
	Status      PhaseStatus    `json:"status" db:"status"`
	StartDate   string         `json:"start_date,omitempty" db:"start_date"`
	EndDate     string         `json:"end_date,omitempty" db:"end_date"`
	Progress    int            `json:"progress" db:"progress"`
	OrderIndex  int            `json:"order_index" db:"order_index"`
	Photos      []ProjectImage `json:"photos,omitempty" db:"-"`
}

// ProjectImage is a site photo, optionally tied to a phase by id or by name.
type ProjectImage struct {
	ID         string    `json:"id" db:"id"`
	ProjectID  string    `json:"project_id" db:"project_id"`
	PhaseID    *string   `json:"phase_id,omitempty" db:"phase_id"`
	PhaseName  *string   `json:"phase_name,omitempty" db:"phase_name"`
	URL        string    `json:"url" db:"url"`
	Caption    string    `json:"caption,omitempty" db:"caption"`
	UploadedAt time.Time `json:"uploaded_at" db:"uploaded_at"`
}

// MergeImagesIntoPhases attaches images to the phases they belong to, matched
// by phase id or case-insensitive phase name. Photos already on a phase are
// kept; duplicates (same id and url) are dropped.
func MergeImagesIntoPhases(phases []Phase, images []ProjectImage) []Phase {
	out := make([]Phase, len(phases))
	for i, ph := range phases {
		key := strings.ToLower(strings.TrimSpace(ph.Name))
		photos := append([]ProjectImage(nil), ph.Photos...)
		for _, img := range images {
			byID := img.PhaseID != nil && *img.PhaseID != "" && *img.PhaseID == ph.ID
			byName := img.PhaseName != nil && key != "" && strings.ToLower(strings.TrimSpace(*img.PhaseName)) == key
			if byID || byName {
				photos = append(photos, img)
			}
		}

		seen := make(map[string]struct{}, len(photos))
		dedup := photos[:0]
		for _, p := range photos {
			k := p.ID + "::" + p.URL
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			dedup = append(dedup, p)
		}

		ph.Photos = dedup
		out[i] = ph
	}
	return out
}
