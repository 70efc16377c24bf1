package service

import (
	"context"
	"errors"
	"testing"

	"contentgate/internal/apperr"
	"contentgate/internal/model"

	"github.com/rs/zerolog"
)

func newAuthService(members *fakeMemberRepo, enrollments *fakeEnrollmentRepo) AuthService {
	return NewAuthService(members, enrollments, zerolog.Nop())
}

func TestAuthorizeSuccess(t *testing.T) {
	svc := newAuthService(testMemberRepo(), testEnrollmentRepo(model.EnrollmentStatusActive))

	member, enrollment, err := svc.Authorize(context.Background(), testUserID, testEnrollmentID)
	if err != nil {
		t.Fatalf("Authorize returned error: %v", err)
	}
	if member.UserID != testUserID {
		t.Fatalf("unexpected member: %+v", member)
	}
	if enrollment.ID != testEnrollmentID {
		t.Fatalf("unexpected enrollment: %+v", enrollment)
	}
}

func TestAuthorizeUnknownMember(t *testing.T) {
	svc := newAuthService(&fakeMemberRepo{members: map[string]*model.Member{}}, testEnrollmentRepo(model.EnrollmentStatusActive))

	_, _, err := svc.Authorize(context.Background(), "nobody", testEnrollmentID)
	if apperr.KindOf(err) != apperr.KindUnauthenticated {
		t.Fatalf("expected Unauthenticated, got %v", err)
	}
}

func TestAuthorizeMemberLookupFailure(t *testing.T) {
	svc := newAuthService(&fakeMemberRepo{err: errors.New("db down")}, testEnrollmentRepo(model.EnrollmentStatusActive))

	_, _, err := svc.Authorize(context.Background(), testUserID, testEnrollmentID)
	if apperr.KindOf(err) != apperr.KindUpstream {
		t.Fatalf("expected Upstream, got %v", err)
	}
}

func TestAuthorizeMissingAndForeignEnrollmentIndistinguishable(t *testing.T) {
	enrollments := testEnrollmentRepo(model.EnrollmentStatusActive)
	enrollments.enrollments["enr-other"] = &model.Enrollment{
		ID: "enr-other", CourseID: testCourseID, UserID: "someone-else", Status: model.EnrollmentStatusActive,
	}
	svc := newAuthService(testMemberRepo(), enrollments)

	_, _, missingErr := svc.Authorize(context.Background(), testUserID, "enr-missing")
	_, _, foreignErr := svc.Authorize(context.Background(), testUserID, "enr-other")

	if apperr.KindOf(missingErr) != apperr.KindForbidden || apperr.KindOf(foreignErr) != apperr.KindForbidden {
		t.Fatalf("expected Forbidden for both, got %v and %v", missingErr, foreignErr)
	}
	if apperr.PublicMessage(missingErr) != apperr.PublicMessage(foreignErr) {
		t.Fatalf("messages must match to prevent enumeration: %q vs %q",
			apperr.PublicMessage(missingErr), apperr.PublicMessage(foreignErr))
	}
}

func TestAuthorizeInactiveEnrollment(t *testing.T) {
	statuses := []string{
		model.EnrollmentStatusPending,
		model.EnrollmentStatusCompleted,
		model.EnrollmentStatusCancelled,
	}
	for _, status := range statuses {
		svc := newAuthService(testMemberRepo(), testEnrollmentRepo(status))
		_, _, err := svc.Authorize(context.Background(), testUserID, testEnrollmentID)
		if apperr.KindOf(err) != apperr.KindForbidden {
			t.Errorf("status %q: expected Forbidden, got %v", status, err)
		}
		if apperr.PublicMessage(err) != "inactive enrollment" {
			t.Errorf("status %q: unexpected message %q", status, apperr.PublicMessage(err))
		}
	}
}
