package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"contentgate/internal/api/v1/dto"
	"contentgate/internal/apperr"
	"contentgate/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// CertificateHandler handles certificate generation, both the direct
// endpoint and the completion-event push subscription.
type CertificateHandler struct {
	certificateService service.CertificateService
	validate           *validator.Validate
	certLogger         zerolog.Logger
}

// NewCertificateHandler creates a new CertificateHandler.
func NewCertificateHandler(
	certificateService service.CertificateService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *CertificateHandler {
	return &CertificateHandler{
		certificateService: certificateService,
		validate:           validate,
		certLogger:         logger.With().Str("handler", "CertificateHandler").Logger(),
	}
}

// RegisterRoutes mounts the direct generation route and the Pub/Sub push
// route for the completion workflow.
func (h *CertificateHandler) RegisterRoutes(mux *http.ServeMux, pubsubAuthMw func(http.Handler) http.Handler) {
	mux.Handle("/certificates/generate", http.HandlerFunc(h.generateCertificate))
	mux.Handle("/events/completion", pubsubAuthMw(http.HandlerFunc(h.completionEvent)))
}

func (h *CertificateHandler) generateCertificate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.CertificateGenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.certLogger, apperr.InvalidState("invalid JSON payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.certLogger, apperr.InvalidState("certificateId is required"))
		return
	}

	out, err := h.certificateService.Generate(r.Context(), req.CertificateID)
	if err != nil {
		writeError(w, h.certLogger, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", out.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(out.PDF)))
	w.WriteHeader(http.StatusOK)
	w.Write(out.PDF)
}

func (h *CertificateHandler) completionEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	var envelope dto.PubSubPushDTO
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		writeError(w, h.certLogger, apperr.InvalidState("invalid push envelope"))
		return
	}
	var event dto.CompletionEventDTO
	if err := json.Unmarshal(envelope.Message.Data, &event); err != nil || event.CertificateID == "" {
		// A malformed message will never become valid; ack it so the
		// subscription does not redeliver forever.
		h.certLogger.Error().Str("message_id", envelope.Message.MessageID).Msg("Dropping malformed completion event")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if _, err := h.certificateService.Generate(r.Context(), event.CertificateID); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			// Same reasoning: a missing record will not appear on retry.
			h.certLogger.Error().Str("certificate_id", event.CertificateID).Msg("Dropping completion event for unknown certificate")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		// Upstream failures are retryable; a non-2xx status makes the
		// subscription redeliver.
		writeError(w, h.certLogger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
