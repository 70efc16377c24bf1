package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"contentgate/internal/api/v1/dto"
	"contentgate/internal/apperr"
	"contentgate/internal/middleware"
	"contentgate/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// ContentHandler handles gated lesson-content endpoints.
type ContentHandler struct {
	contentService   service.ContentService
	watermarkService service.WatermarkService
	validate         *validator.Validate
	contentLogger    zerolog.Logger
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(
	contentService service.ContentService,
	watermarkService service.WatermarkService,
	validate *validator.Validate,
	logger zerolog.Logger,
) *ContentHandler {
	return &ContentHandler{
		contentService:   contentService,
		watermarkService: watermarkService,
		validate:         validate,
		contentLogger:    logger.With().Str("handler", "ContentHandler").Logger(),
	}
}

// RegisterRoutes mounts content routes behind the bearer-auth middleware.
func (h *ContentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/content/signed-url", authMw(http.HandlerFunc(h.issueSignedURL)))
	mux.Handle("/content/watermarked", authMw(http.HandlerFunc(h.watermarkedLesson)))
}

func (h *ContentHandler) issueSignedURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, h.contentLogger, apperr.Unauthenticated("missing credential"))
		return
	}

	var req dto.SignedURLRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.contentLogger, apperr.InvalidState("invalid JSON payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.contentLogger, apperr.InvalidState("lessonId and enrollmentId are required"))
		return
	}

	meta := service.RequestMeta{IPAddress: clientIP(r), UserAgent: r.UserAgent()}
	res, err := h.contentService.IssueSignedURL(r.Context(), userID, req.LessonID, req.EnrollmentID, meta)
	if err != nil {
		writeError(w, h.contentLogger, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SignedURLResponseDTO{
		SignedURL:  res.SignedURL,
		ExpiresIn:  res.ExpiresIn,
		AccessType: res.AccessType,
		ExpiresAt:  res.ExpiresAt,
	})
}

func (h *ContentHandler) watermarkedLesson(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}
	userID, ok := r.Context().Value(middleware.UserContextKey).(string)
	if !ok || userID == "" {
		writeError(w, h.contentLogger, apperr.Unauthenticated("missing credential"))
		return
	}

	var req dto.WatermarkRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.contentLogger, apperr.InvalidState("invalid JSON payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, h.contentLogger, apperr.InvalidState("lessonId, enrollmentId, bucket and storagePath are required"))
		return
	}

	doc, err := h.watermarkService.WatermarkedLesson(r.Context(), userID, req.LessonID, req.EnrollmentID, req.Bucket, req.StoragePath)
	if err != nil {
		writeError(w, h.contentLogger, err)
		return
	}

	// The derivative streams inline and is never persisted.
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.PDF)))
	w.WriteHeader(http.StatusOK)
	w.Write(doc.PDF)
}
