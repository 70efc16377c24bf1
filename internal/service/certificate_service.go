package service

import (
	"context"
	"fmt"

	"contentgate/internal/apperr"
	"contentgate/internal/model"
	"contentgate/internal/pdf"
	"contentgate/internal/repository"
	"contentgate/internal/storage"

	"github.com/rs/zerolog"
)

// GeneratedCertificate is the outcome of a certificate generation call.
type GeneratedCertificate struct {
	PDF         []byte
	Filename    string
	Certificate *model.Certificate
}

// CertificateService renders completion certificates and persists them to
// the certificate bucket. Persistence is best-effort: generation succeeds
// even when the upload does not.
type CertificateService interface {
	Generate(ctx context.Context, certificateID string) (*GeneratedCertificate, error)
}

type certificateService struct {
	certificateRepo repository.CertificateRepository
	store           storage.ObjectStore
	bucket          string
	certLogger      zerolog.Logger
}

// NewCertificateService creates a new CertificateService writing into the
// given certificate bucket.
func NewCertificateService(
	certificateRepo repository.CertificateRepository,
	store storage.ObjectStore,
	bucket string,
	logger zerolog.Logger,
) CertificateService {
	return &certificateService{
		certificateRepo: certificateRepo,
		store:           store,
		bucket:          bucket,
		certLogger:      logger.With().Str("service", "CertificateService").Logger(),
	}
}

func (s *certificateService) Generate(ctx context.Context, certificateID string) (*GeneratedCertificate, error) {
	cert, err := s.certificateRepo.GetCertificateByID(ctx, certificateID)
	if err != nil {
		s.certLogger.Error().Err(err).Str("certificate_id", certificateID).Msg("Failed to fetch certificate record")
		return nil, apperr.Upstream("failed to fetch certificate", err)
	}
	if cert == nil {
		return nil, apperr.NotFound("certificate not found")
	}

	rendered, err := pdf.RenderCertificate(pdf.CertificateData{
		StudentName:       cert.HolderName(),
		CourseTitle:       cert.CourseTitle,
		CertificateNumber: cert.CertificateNumber,
		IssuedAt:          cert.IssuedAt,
	})
	if err != nil {
		s.certLogger.Error().Err(err).Str("certificate_id", cert.ID).Msg("Failed to render certificate PDF")
		return nil, apperr.Upstream("failed to render certificate", err)
	}

	// Deterministic key: regeneration overwrites the previous object.
	key := fmt.Sprintf("certificates/%s.pdf", cert.CertificateNumber)
	if err := s.store.Upload(ctx, s.bucket, key, "application/pdf", rendered); err != nil {
		s.certLogger.Error().Err(err).Str("certificate_id", cert.ID).Str("key", key).Msg("Failed to upload certificate PDF, returning bytes anyway")
	} else {
		pdfURL := s.store.PublicURL(s.bucket, key)
		if err := s.certificateRepo.UpdatePDFURL(ctx, cert.ID, pdfURL); err != nil {
			s.certLogger.Error().Err(err).Str("certificate_id", cert.ID).Msg("Failed to write certificate PDF URL back to record")
		} else {
			cert.PDFURL = &pdfURL
		}
	}

	return &GeneratedCertificate{
		PDF:         rendered,
		Filename:    fmt.Sprintf("certificate-%s.pdf", cert.CertificateNumber),
		Certificate: cert,
	}, nil
}
