package service

import (
	"context"
	"encoding/json"
	"time"

	"contentgate/internal/apperr"
	"contentgate/internal/model"
	"contentgate/internal/pubsub"
	"contentgate/internal/repository"
	"contentgate/internal/storage"

	"github.com/rs/zerolog"
)

// RequestMeta carries caller network metadata captured at the HTTP boundary
// for the audit trail.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// SignedURLResult is the outcome of a successful signed-URL issuance.
type SignedURLResult struct {
	SignedURL   string
	ExpiresIn   int
	ExpiresAt   time.Time
	AccessType  string
	ContentType string
}

// ContentService issues time-limited signed URLs for uploaded lesson
// content. Every call mints a fresh URL; repeated calls grow the audit
// trail, which is accepted cost for simplicity over caching.
type ContentService interface {
	IssueSignedURL(ctx context.Context, userID, lessonID, enrollmentID string, meta RequestMeta) (*SignedURLResult, error)
}

type contentService struct {
	auth           AuthService
	lessonRepo     repository.LessonRepository
	accessLogRepo  repository.AccessLogRepository
	store          storage.ObjectStore
	publisher      pubsub.Publisher
	telemetryTopic string
	urlTTL         time.Duration
	now            func() time.Time
	contentLogger  zerolog.Logger
}

// NewContentService creates a new ContentService. urlTTL is the validity
// window of issued URLs.
func NewContentService(
	auth AuthService,
	lessonRepo repository.LessonRepository,
	accessLogRepo repository.AccessLogRepository,
	store storage.ObjectStore,
	publisher pubsub.Publisher,
	telemetryTopic string,
	urlTTL time.Duration,
	logger zerolog.Logger,
) ContentService {
	return &contentService{
		auth:           auth,
		lessonRepo:     lessonRepo,
		accessLogRepo:  accessLogRepo,
		store:          store,
		publisher:      publisher,
		telemetryTopic: telemetryTopic,
		urlTTL:         urlTTL,
		now:            time.Now,
		contentLogger:  logger.With().Str("service", "ContentService").Logger(),
	}
}

func (s *contentService) IssueSignedURL(ctx context.Context, userID, lessonID, enrollmentID string, meta RequestMeta) (*SignedURLResult, error) {
	member, enrollment, err := s.auth.Authorize(ctx, userID, enrollmentID)
	if err != nil {
		return nil, err
	}

	lesson, err := s.lessonRepo.GetLessonByID(ctx, lessonID)
	if err != nil {
		s.contentLogger.Error().Err(err).Str("lesson_id", lessonID).Msg("Failed to resolve lesson")
		return nil, apperr.Upstream("failed to resolve lesson", err)
	}
	// A lesson outside the enrollment's course must be indistinguishable
	// from a lesson that does not exist.
	if lesson == nil || lesson.CourseID != enrollment.CourseID {
		return nil, apperr.NotFound("lesson not found")
	}
	if !lesson.HasStoredObject() {
		s.contentLogger.Error().
			Str("lesson_id", lesson.ID).
			Bool("is_uploaded", lesson.IsUploaded).
			Str("storage_bucket", lesson.StorageBucket).
			Str("storage_path", lesson.StoragePath).
			Msg("Lesson flagged as uploaded but has no usable storage coordinates")
		return nil, apperr.InvalidState("lesson content is not available for signed access")
	}

	issuedAt := s.now()
	signedURL, err := s.store.PresignGetURL(ctx, lesson.StorageBucket, lesson.StoragePath, s.urlTTL)
	if err != nil {
		s.contentLogger.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to generate presigned URL")
		return nil, apperr.Upstream("failed to issue signed URL", err)
	}

	// Audit write is best-effort relative to the response: a failure is
	// surfaced to telemetry, never to the caller.
	entry := &model.AccessLogEntry{
		LessonID:      lesson.ID,
		EnrollmentID:  enrollment.ID,
		UserID:        member.UserID,
		AccessType:    "view",
		SignedURLUsed: true,
		IPAddress:     meta.IPAddress,
		UserAgent:     meta.UserAgent,
	}
	if err := s.accessLogRepo.InsertAccessLog(ctx, entry); err != nil {
		s.contentLogger.Error().Err(err).Str("lesson_id", lesson.ID).Msg("Failed to write access log entry")
		s.publishEvent(ctx, "access_log_write_failed", lesson.ID, enrollment.ID, member.UserID)
	} else {
		s.publishEvent(ctx, "content_access", lesson.ID, enrollment.ID, member.UserID)
	}

	return &SignedURLResult{
		SignedURL:   signedURL,
		ExpiresIn:   int(s.urlTTL.Seconds()),
		ExpiresAt:   issuedAt.Add(s.urlTTL),
		AccessType:  "view",
		ContentType: lesson.ContentType,
	}, nil
}

// publishEvent emits an operational telemetry event. Fire-and-forget: a
// publish failure is logged and dropped.
func (s *contentService) publishEvent(ctx context.Context, event, lessonID, enrollmentID, userID string) {
	if s.publisher == nil || s.telemetryTopic == "" {
		return
	}
	payload := struct {
		Event        string `json:"event"`
		LessonID     string `json:"lesson_id"`
		EnrollmentID string `json:"enrollment_id"`
		UserID       string `json:"user_id"`
	}{
		Event:        event,
		LessonID:     lessonID,
		EnrollmentID: enrollmentID,
		UserID:       userID,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		s.contentLogger.Error().Err(err).Str("event", event).Msg("Failed to marshal telemetry event")
		return
	}
	if _, err := s.publisher.Publish(ctx, s.telemetryTopic, data); err != nil {
		s.contentLogger.Error().Err(err).Str("topic", s.telemetryTopic).Str("event", event).Msg("Failed to publish telemetry event")
	}
}
