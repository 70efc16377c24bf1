package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"strings"

	"contentgate/internal/api/v1/dto"
	"contentgate/internal/apperr"

	"github.com/rs/zerolog"
)

// writeError maps an error onto the taxonomy's HTTP status and serializes
// only the public message. Full detail stays in server-side logs.
func writeError(w http.ResponseWriter, logger zerolog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Msg("Request failed")
	} else {
		logger.Warn().Err(err).Msg("Request rejected")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponseDTO{Error: apperr.PublicMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

// clientIP extracts the caller address, honoring the load balancer's
// X-Forwarded-For header.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
