package model

import "time"

// Lesson is a unit of course content. Uploaded lessons live as opaque
// objects in the content bucket; inline and externally hosted lessons carry
// no storage coordinates.
type Lesson struct {
	ID            string    `db:"id" json:"id"`
	CourseID      string    `db:"course_id" json:"course_id"`
	Title         string    `db:"title" json:"title"`
	ContentType   string    `db:"content_type" json:"content_type"`
	IsUploaded    bool      `db:"is_uploaded" json:"is_uploaded"`
	StorageBucket string    `db:"storage_bucket" json:"storage_bucket"`
	StoragePath   string    `db:"storage_path" json:"storage_path"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// HasStoredObject reports whether the lesson is backed by a complete
// bucket/path pair. An uploaded lesson without one is a data-integrity
// error, not a recoverable condition.
func (l *Lesson) HasStoredObject() bool {
	return l.IsUploaded && l.StorageBucket != "" && l.StoragePath != ""
}
