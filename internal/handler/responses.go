package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tervalon/delveforge/internal/domain"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent, nothing left to do but log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgTemplateNotFoundError    = "Item template not found"
	ErrMsgNoEligibleTemplatesError = "No item templates are eligible at that item level"
	ErrMsgAffixPoolExhaustedError  = "Not enough affixes available at that item level"
	ErrMsgMapNotFoundError         = "Map not found"
	ErrMsgInvalidImageError        = "Image could not be decoded. PNG, JPEG and GIF are supported"
	ErrMsgNoFloorTilesError        = "Image contains no floor tiles"
	ErrMsgCorruptedTileError       = "Stored tile data is corrupted"
	ErrMsgInvalidInputError        = "Invalid request. Please check your inputs."
)

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrTemplateNotFound):
		return http.StatusNotFound, ErrMsgTemplateNotFoundError
	case errors.Is(err, domain.ErrNoEligibleTemplates):
		return http.StatusBadRequest, ErrMsgNoEligibleTemplatesError
	case errors.Is(err, domain.ErrAffixPoolExhausted):
		return http.StatusBadRequest, ErrMsgAffixPoolExhaustedError
	case errors.Is(err, domain.ErrMapNotFound):
		return http.StatusNotFound, ErrMsgMapNotFoundError
	case errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest, ErrMsgInvalidImageError
	case errors.Is(err, domain.ErrNoFloorTiles):
		return http.StatusBadRequest, ErrMsgNoFloorTilesError
	case errors.Is(err, domain.ErrCorruptedTile):
		return http.StatusInternalServerError, ErrMsgCorruptedTileError
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, ErrMsgInvalidInputError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
