package repository

import (
	"context"
	"database/sql"
	"fmt"

	"contentgate/internal/model"
)

// CertificateRepository reads certificate records joined with course and
// member data for rendering, and writes back the generated PDF URL.
type CertificateRepository interface {
	GetCertificateByID(ctx context.Context, certificateID string) (*model.Certificate, error)
	UpdatePDFURL(ctx context.Context, certificateID, pdfURL string) error
}

type certificateRepo struct {
	db *sql.DB
}

// NewCertificateRepo creates a new CertificateRepository.
func NewCertificateRepo(db *sql.DB) CertificateRepository {
	return &certificateRepo{db: db}
}

func (r *certificateRepo) GetCertificateByID(ctx context.Context, certificateID string) (*model.Certificate, error) {
	query := `
		SELECT c.id, c.certificate_number, c.course_id, c.user_id, c.enrollment_id,
		       c.issued_at, c.pdf_url,
		       co.title, COALESCE(co.description, ''),
		       COALESCE(m.name, ''), COALESCE(m.full_name, '')
		FROM certificates c
		JOIN courses co ON co.id = c.course_id
		JOIN members m ON m.user_id = c.user_id
		WHERE c.id = $1
	`
	row := r.db.QueryRowContext(ctx, query, certificateID)
	var c model.Certificate
	if err := row.Scan(
		&c.ID,
		&c.CertificateNumber,
		&c.CourseID,
		&c.UserID,
		&c.EnrollmentID,
		&c.IssuedAt,
		&c.PDFURL,
		&c.CourseTitle,
		&c.CourseDescription,
		&c.StudentName,
		&c.StudentFullName,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan certificate row: %w", err)
	}
	return &c, nil
}

func (r *certificateRepo) UpdatePDFURL(ctx context.Context, certificateID, pdfURL string) error {
	query := `UPDATE certificates SET pdf_url = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, pdfURL, certificateID); err != nil {
		return fmt.Errorf("failed to update certificate pdf_url: %w", err)
	}
	return nil
}
