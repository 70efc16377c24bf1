package dto

import "time"

// SignedURLRequestDTO is the payload for requesting a signed content URL.
type SignedURLRequestDTO struct {
	LessonID     string `json:"lessonId" validate:"required"`
	EnrollmentID string `json:"enrollmentId" validate:"required"`
}

// SignedURLResponseDTO is the successful signed-URL issuance response.
type SignedURLResponseDTO struct {
	SignedURL  string    `json:"signedUrl"`
	ExpiresIn  int       `json:"expiresIn"`
	AccessType string    `json:"accessType"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

// WatermarkRequestDTO is the payload for requesting a watermarked lesson PDF.
type WatermarkRequestDTO struct {
	LessonID     string `json:"lessonId" validate:"required"`
	EnrollmentID string `json:"enrollmentId" validate:"required"`
	Bucket       string `json:"bucket" validate:"required"`
	StoragePath  string `json:"storagePath" validate:"required"`
}
