package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sant0-9/hacktwin/internal/llm"
	"github.com/sant0-9/hacktwin/internal/studio"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, studio.ErrInvalidInput),
		errors.Is(err, studio.ErrNoParticipants),
		errors.Is(err, studio.ErrEmptySubmission):
		return http.StatusBadRequest
	case errors.Is(err, llm.ErrGeneration):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}
