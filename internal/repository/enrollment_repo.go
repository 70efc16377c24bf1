package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contentgate/internal/model"
)

// EnrollmentRepository reads enrollment records. Status transitions are
// owned by the registration system; this service never writes them.
type EnrollmentRepository interface {
	GetEnrollmentByID(ctx context.Context, enrollmentID string) (*model.Enrollment, error)
}

type enrollmentRepo struct {
	db *sql.DB
}

// NewEnrollmentRepo creates a new EnrollmentRepository.
func NewEnrollmentRepo(db *sql.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) GetEnrollmentByID(ctx context.Context, enrollmentID string) (*model.Enrollment, error) {
	query := `
		SELECT id, course_id, user_id, status, created_at, updated_at
		FROM enrollments
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, enrollmentID)
	var e model.Enrollment
	if err := row.Scan(
		&e.ID,
		&e.CourseID,
		&e.UserID,
		&e.Status,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan enrollment row: %w", err)
	}
	return &e, nil
}
