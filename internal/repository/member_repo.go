package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contentgate/internal/model"
)

// MemberRepository resolves member profiles by authenticated identity.
type MemberRepository interface {
	GetMemberByUserID(ctx context.Context, userID string) (*model.Member, error)
}

type memberRepo struct {
	db *sql.DB
}

// NewMemberRepo creates a new MemberRepository.
func NewMemberRepo(db *sql.DB) MemberRepository {
	return &memberRepo{db: db}
}

func (r *memberRepo) GetMemberByUserID(ctx context.Context, userID string) (*model.Member, error) {
	query := `
		SELECT user_id, name, full_name, email, created_at, updated_at
		FROM members
		WHERE user_id = $1
	`
	row := r.db.QueryRowContext(ctx, query, userID)
	var m model.Member
	if err := row.Scan(
		&m.UserID,
		&m.Name,
		&m.FullName,
		&m.Email,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan member row: %w", err)
	}
	return &m, nil
}
