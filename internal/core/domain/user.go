package domain

import (
	"strings"
	"time"
)

// Role is the authorization level stored on a profile row.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
	RoleClient     Role = "client"
)

// IsAdmin reports whether the role grants access to the back-office.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User is the principal known to the identity provider.
type User struct {
	ID           string            `json:"id" db:"id"`
	Email        string            `json:"email" db:"email"`
	PasswordHash string            `json:"-" db:"password_hash"`
	Metadata     map[string]string `json:"metadata,omitempty" db:"metadata"`
	CreatedAt    time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at" db:"updated_at"`
}

// DisplayName picks the name the identity metadata carries, if any.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	for _, k := range []string{"name", "full_name"} {
		if v := strings.TrimSpace(u.Metadata[k]); v != "" {
			return v
		}
	}
	return ""
}

// Profile is the application-side record attached to an identity user.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  string    `json:"full_name" db:"full_name"`
	Role      Role      `json:"role" db:"role"`
	Phone     string    `json:"phone,omitempty" db:"phone"`
	Company   string    `json:"company,omitempty" db:"company"`
	PhotoURL  string    `json:"photo_url,omitempty" db:"photo_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ClientProfile is what the client portal shows about the person behind a
// project.
type ClientProfile struct {
	ID                 string            `json:"id,omitempty"`
	ProjectID          string            `json:"project_id"`
	Name               string            `json:"name"`
	Email              string            `json:"email,omitempty"`
	Phone              string            `json:"phone,omitempty"`
	Company            string            `json:"company,omitempty"`
	PhotoURL           string            `json:"photo_url,omitempty"`
	ContactPreferences map[string]string `json:"contact_preferences,omitempty"`
}

// NormalizeEmail lowercases and trims an address for comparisons.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
