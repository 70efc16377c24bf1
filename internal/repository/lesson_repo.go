package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contentgate/internal/model"
)

// LessonRepository reads lesson records and their storage coordinates.
type LessonRepository interface {
	GetLessonByID(ctx context.Context, lessonID string) (*model.Lesson, error)
}

type lessonRepo struct {
	db *sql.DB
}

// NewLessonRepo creates a new LessonRepository.
func NewLessonRepo(db *sql.DB) LessonRepository {
	return &lessonRepo{db: db}
}

func (r *lessonRepo) GetLessonByID(ctx context.Context, lessonID string) (*model.Lesson, error) {
	query := `
		SELECT id, course_id, title, content_type, is_uploaded,
		       COALESCE(storage_bucket, ''), COALESCE(storage_path, ''), created_at
		FROM lessons
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, query, lessonID)
	var l model.Lesson
	if err := row.Scan(
		&l.ID,
		&l.CourseID,
		&l.Title,
		&l.ContentType,
		&l.IsUploaded,
		&l.StorageBucket,
		&l.StoragePath,
		&l.CreatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan lesson row: %w", err)
	}
	return &l, nil
}
