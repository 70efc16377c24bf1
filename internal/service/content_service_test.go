package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"contentgate/internal/apperr"
	"contentgate/internal/model"

	"github.com/rs/zerolog"
)

const testTTL = time.Hour

type contentFixture struct {
	svc       ContentService
	lessons   *fakeLessonRepo
	audit     *fakeAccessLogRepo
	store     *fakeObjectStore
	publisher *fakePublisher
}

func newContentFixture(enrollmentStatus string) *contentFixture {
	lessons := testLessonRepo()
	audit := &fakeAccessLogRepo{}
	store := &fakeObjectStore{presignURL: "https://storage.test/signed?sig=abc"}
	publisher := &fakePublisher{}

	auth := NewAuthService(testMemberRepo(), testEnrollmentRepo(enrollmentStatus), zerolog.Nop())
	svc := NewContentService(auth, lessons, audit, store, publisher, "access_events", testTTL, zerolog.Nop())
	return &contentFixture{svc: svc, lessons: lessons, audit: audit, store: store, publisher: publisher}
}

func issue(f *contentFixture) (*SignedURLResult, error) {
	return f.svc.IssueSignedURL(context.Background(), testUserID, testLessonID, testEnrollmentID,
		RequestMeta{IPAddress: "203.0.113.9", UserAgent: "test-agent"})
}

func TestIssueSignedURLSuccess(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)

	res, err := issue(f)
	if err != nil {
		t.Fatalf("IssueSignedURL returned error: %v", err)
	}
	if res.SignedURL != "https://storage.test/signed?sig=abc" {
		t.Fatalf("unexpected signed URL: %q", res.SignedURL)
	}
	if res.AccessType != "view" || res.ContentType != "pdf" {
		t.Fatalf("unexpected result metadata: %+v", res)
	}
	if f.store.presignBucket != "course-content" || f.store.presignKey != "lessons/lesson-1.pdf" {
		t.Fatalf("presigned wrong coordinates: %s/%s", f.store.presignBucket, f.store.presignKey)
	}
	if f.store.presignExpiry != testTTL {
		t.Fatalf("expected expiry %v, got %v", testTTL, f.store.presignExpiry)
	}
}

func TestIssueSignedURLExpiryWindow(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)
	issuedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	f.svc.(*contentService).now = func() time.Time { return issuedAt }

	res, err := issue(f)
	if err != nil {
		t.Fatalf("IssueSignedURL returned error: %v", err)
	}
	if res.ExpiresIn != int(testTTL.Seconds()) {
		t.Fatalf("expected expiresIn %d, got %d", int(testTTL.Seconds()), res.ExpiresIn)
	}
	if !res.ExpiresAt.Equal(issuedAt.Add(testTTL)) {
		t.Fatalf("expected expiresAt %v, got %v", issuedAt.Add(testTTL), res.ExpiresAt)
	}
}

func TestIssueSignedURLWritesAuditEntry(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)

	if _, err := issue(f); err != nil {
		t.Fatalf("IssueSignedURL returned error: %v", err)
	}
	if len(f.audit.entries) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(f.audit.entries))
	}
	entry := f.audit.entries[0]
	if entry.AccessType != "view" || !entry.SignedURLUsed {
		t.Fatalf("unexpected audit entry: %+v", entry)
	}
	if entry.IPAddress != "203.0.113.9" || entry.UserAgent != "test-agent" {
		t.Fatalf("caller metadata missing from audit entry: %+v", entry)
	}
}

func TestIssueSignedURLSurvivesAuditFailure(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)
	f.audit.err = errors.New("audit table unavailable")

	res, err := issue(f)
	if err != nil {
		t.Fatalf("expected success despite audit failure, got %v", err)
	}
	if res.SignedURL == "" {
		t.Fatal("expected a signed URL")
	}
	// The failure is surfaced to operational telemetry instead.
	if len(f.publisher.topics) != 1 || f.publisher.topics[0] != "access_events" {
		t.Fatalf("expected one telemetry event, got %v", f.publisher.topics)
	}
}

func TestIssueSignedURLInactiveEnrollment(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusCancelled)

	_, err := issue(f)
	if apperr.KindOf(err) != apperr.KindForbidden {
		t.Fatalf("expected Forbidden for inactive enrollment, got %v", err)
	}
	if f.store.presignKey != "" {
		t.Fatal("no presign should happen for an unauthorized request")
	}
}

func TestIssueSignedURLCrossCourseIndistinguishableFromMissing(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)
	f.lessons.lessons["lesson-b"] = &model.Lesson{
		ID: "lesson-b", CourseID: "course-other", ContentType: "pdf",
		IsUploaded: true, StorageBucket: "course-content", StoragePath: "lessons/lesson-b.pdf",
	}

	_, crossErr := f.svc.IssueSignedURL(context.Background(), testUserID, "lesson-b", testEnrollmentID, RequestMeta{})
	_, missingErr := f.svc.IssueSignedURL(context.Background(), testUserID, "lesson-missing", testEnrollmentID, RequestMeta{})

	if apperr.KindOf(crossErr) != apperr.KindNotFound || apperr.KindOf(missingErr) != apperr.KindNotFound {
		t.Fatalf("expected NotFound for both, got %v and %v", crossErr, missingErr)
	}
	if apperr.PublicMessage(crossErr) != apperr.PublicMessage(missingErr) {
		t.Fatalf("responses must be identical: %q vs %q",
			apperr.PublicMessage(crossErr), apperr.PublicMessage(missingErr))
	}
}

func TestIssueSignedURLMissingStorageCoordinates(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)
	f.lessons.lessons[testLessonID].StoragePath = ""

	_, err := issue(f)
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Fatalf("expected InvalidState for missing coordinates, got %v", err)
	}
}

func TestIssueSignedURLNotUploadedLesson(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)
	f.lessons.lessons[testLessonID].IsUploaded = false

	_, err := issue(f)
	if apperr.KindOf(err) != apperr.KindInvalidState {
		t.Fatalf("expected InvalidState for non-uploaded lesson, got %v", err)
	}
}

func TestIssueSignedURLPresignFailure(t *testing.T) {
	f := newContentFixture(model.EnrollmentStatusActive)
	f.store.presignErr = errors.New("signing backend down")

	_, err := issue(f)
	if apperr.KindOf(err) != apperr.KindUpstream {
		t.Fatalf("expected Upstream for presign failure, got %v", err)
	}
	if len(f.audit.entries) != 0 {
		t.Fatal("no audit entry should be written when issuance fails")
	}
}
