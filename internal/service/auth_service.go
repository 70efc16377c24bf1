package service

import (
	"context"

	"contentgate/internal/apperr"
	"contentgate/internal/model"
	"contentgate/internal/repository"

	"github.com/rs/zerolog"
)

// AuthService verifies that a caller is an active, enrolled student before
// any content operation proceeds. Authorization failures are terminal for
// the request; there are no retries.
type AuthService interface {
	// Authorize resolves the member behind userID and verifies that the
	// enrollment belongs to them and is active.
	Authorize(ctx context.Context, userID, enrollmentID string) (*model.Member, *model.Enrollment, error)
}

type authService struct {
	memberRepo     repository.MemberRepository
	enrollmentRepo repository.EnrollmentRepository
	authLogger     zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	memberRepo repository.MemberRepository,
	enrollmentRepo repository.EnrollmentRepository,
	logger zerolog.Logger,
) AuthService {
	return &authService{
		memberRepo:     memberRepo,
		enrollmentRepo: enrollmentRepo,
		authLogger:     logger.With().Str("service", "AuthService").Logger(),
	}
}

func (s *authService) Authorize(ctx context.Context, userID, enrollmentID string) (*model.Member, *model.Enrollment, error) {
	member, err := s.memberRepo.GetMemberByUserID(ctx, userID)
	if err != nil {
		s.authLogger.Error().Err(err).Str("user_id", userID).Msg("Failed to resolve member profile")
		return nil, nil, apperr.Upstream("failed to resolve member", err)
	}
	if member == nil {
		s.authLogger.Warn().Str("user_id", userID).Msg("Credential does not resolve to a known member")
		return nil, nil, apperr.Unauthenticated("unknown member")
	}

	enrollment, err := s.enrollmentRepo.GetEnrollmentByID(ctx, enrollmentID)
	if err != nil {
		s.authLogger.Error().Err(err).Str("enrollment_id", enrollmentID).Msg("Failed to resolve enrollment")
		return nil, nil, apperr.Upstream("failed to resolve enrollment", err)
	}
	// "not found" and "not yours" share one message so callers cannot
	// enumerate other members' enrollments.
	if enrollment == nil || enrollment.UserID != member.UserID {
		s.authLogger.Warn().Str("user_id", userID).Str("enrollment_id", enrollmentID).Msg("Enrollment missing or not owned by caller")
		return nil, nil, apperr.Forbidden("enrollment not found")
	}
	if !enrollment.IsActive() {
		s.authLogger.Warn().Str("enrollment_id", enrollmentID).Str("status", enrollment.Status).Msg("Enrollment is not active")
		return nil, nil, apperr.Forbidden("inactive enrollment")
	}

	return member, enrollment, nil
}
