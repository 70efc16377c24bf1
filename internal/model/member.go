package model

import "time"

// Member maps an authentication identity to a display identity.
// Profiles are provisioned by the signup flow; this service only reads them.
type Member struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// DisplayName resolves the name used on certificates and watermarks.
// Falls back to the full legal name, then to a generic placeholder, so
// document generation never fails on an incomplete profile.
func (m *Member) DisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	if m.FullName != "" {
		return m.FullName
	}
	return "Student"
}
