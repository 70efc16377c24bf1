package model

import "time"

// Certificate is a completion credential created by the completion workflow.
// This service reads it to render the PDF and writes back only the PDF URL.
type Certificate struct {
	ID                string    `db:"id" json:"id"`
	CertificateNumber string    `db:"certificate_number" json:"certificate_number"`
	CourseID          string    `db:"course_id" json:"course_id"`
	UserID            string    `db:"user_id" json:"user_id"`
	EnrollmentID      string    `db:"enrollment_id" json:"enrollment_id"`
	IssuedAt          time.Time `db:"issued_at" json:"issued_at"`
	PDFURL            *string   `db:"pdf_url" json:"pdf_url,omitempty"`

	// Joined for rendering.
	CourseTitle       string `db:"course_title" json:"course_title"`
	CourseDescription string `db:"course_description" json:"course_description"`
	StudentName       string `db:"student_name" json:"student_name"`
	StudentFullName   string `db:"student_full_name" json:"student_full_name"`
}

// HolderName resolves the name printed on the certificate, preferring the
// display name and falling back like Member.DisplayName.
func (c *Certificate) HolderName() string {
	if c.StudentName != "" {
		return c.StudentName
	}
	if c.StudentFullName != "" {
		return c.StudentFullName
	}
	return "Student"
}
