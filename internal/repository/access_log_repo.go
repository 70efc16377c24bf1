package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contentgate/internal/model"

	"github.com/google/uuid"
)

// AccessLogRepository appends audit records. Insert-only; entries are never
// read back by this service.
type AccessLogRepository interface {
	InsertAccessLog(ctx context.Context, entry *model.AccessLogEntry) error
}

type accessLogRepo struct {
	db *sql.DB
}

// NewAccessLogRepo creates a new AccessLogRepository.
func NewAccessLogRepo(db *sql.DB) AccessLogRepository {
	return &accessLogRepo{db: db}
}

func (r *accessLogRepo) InsertAccessLog(ctx context.Context, entry *model.AccessLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	query := `
		INSERT INTO access_logs
			(id, lesson_id, enrollment_id, user_id, access_type, signed_url_used, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.ID,
		entry.LessonID,
		entry.EnrollmentID,
		entry.UserID,
		entry.AccessType,
		entry.SignedURLUsed,
		entry.IPAddress,
		entry.UserAgent,
	); err != nil {
		return fmt.Errorf("failed to insert access log: %w", err)
	}
	return nil
}
