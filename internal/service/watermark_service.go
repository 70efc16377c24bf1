package service

import (
	"context"
	"fmt"
	"time"

	"contentgate/internal/apperr"
	"contentgate/internal/pdf"
	"contentgate/internal/storage"

	"github.com/rs/zerolog"
)

// WatermarkedDocument is a per-viewer derivative of a stored lesson PDF. It
// exists only for the duration of the response and is never persisted.
type WatermarkedDocument struct {
	PDF      []byte
	Filename string
}

// WatermarkService downloads a stored lesson PDF and stamps every page with
// a viewer-identifying overlay. The enrollment check is re-run here; this
// path does not trust a capability granted by a different call.
type WatermarkService interface {
	WatermarkedLesson(ctx context.Context, userID, lessonID, enrollmentID, bucket, storagePath string) (*WatermarkedDocument, error)
}

type watermarkService struct {
	auth            AuthService
	store           storage.ObjectStore
	now             func() time.Time
	watermarkLogger zerolog.Logger
}

// NewWatermarkService creates a new WatermarkService.
func NewWatermarkService(auth AuthService, store storage.ObjectStore, logger zerolog.Logger) WatermarkService {
	return &watermarkService{
		auth:            auth,
		store:           store,
		now:             time.Now,
		watermarkLogger: logger.With().Str("service", "WatermarkService").Logger(),
	}
}

func (s *watermarkService) WatermarkedLesson(ctx context.Context, userID, lessonID, enrollmentID, bucket, storagePath string) (*WatermarkedDocument, error) {
	member, enrollment, err := s.auth.Authorize(ctx, userID, enrollmentID)
	if err != nil {
		return nil, err
	}

	src, err := s.store.Download(ctx, bucket, storagePath)
	if err != nil {
		s.watermarkLogger.Error().Err(err).Str("bucket", bucket).Str("path", storagePath).Msg("Failed to download lesson content")
		return nil, apperr.Upstream("failed to download lesson content", err)
	}

	// Parse before stamping so corruption surfaces as a data-integrity
	// error rather than a stamping failure.
	if _, err := pdf.PageCount(src); err != nil {
		s.watermarkLogger.Error().Err(err).Str("bucket", bucket).Str("path", storagePath).Msg("Stored lesson object is not a parseable PDF")
		return nil, apperr.InvalidState("stored lesson is not a valid PDF")
	}

	stamped, err := pdf.WatermarkLessonPDF(src, pdf.StampInfo{
		ViewerName:   member.DisplayName(),
		EnrollmentID: enrollment.ID,
		GeneratedAt:  s.now(),
	})
	if err != nil {
		s.watermarkLogger.Error().Err(err).Str("lesson_id", lessonID).Msg("Failed to stamp lesson PDF")
		return nil, apperr.InvalidState("stored lesson is not a valid PDF")
	}

	// The watermark itself is the forensic trace on this path; no access
	// log entry is written.
	return &WatermarkedDocument{
		PDF:      stamped,
		Filename: fmt.Sprintf("lesson-%s.pdf", lessonID),
	}, nil
}
