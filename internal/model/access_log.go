package model

import "time"

// AccessLogEntry is an immutable audit record written whenever a signed URL
// is issued. Insert-only from this service's perspective.
type AccessLogEntry struct {
	ID            string    `db:"id" json:"id"`
	LessonID      string    `db:"lesson_id" json:"lesson_id"`
	EnrollmentID  string    `db:"enrollment_id" json:"enrollment_id"`
	UserID        string    `db:"user_id" json:"user_id"`
	AccessType    string    `db:"access_type" json:"access_type"`
	SignedURLUsed bool      `db:"signed_url_used" json:"signed_url_used"`
	IPAddress     string    `db:"ip_address" json:"ip_address"`
	UserAgent     string    `db:"user_agent" json:"user_agent"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}
