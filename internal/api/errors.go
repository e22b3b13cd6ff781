package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/biodynlabs/cellculture-simulator/core"
	"github.com/biodynlabs/cellculture-simulator/kb"
)

// statusFromError distinguishes "bad input" from "internal failure" for
// status reporting. Configuration problems (unknown cell line, invalid
// parameters) are the caller's fault; anything unrecognised is ours.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownCellLine),
		errors.Is(err, core.ErrInvalidParameter),
		errors.Is(err, kb.ErrLineInvalid),
		errors.Is(err, kb.ErrLineExists):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding failures past this point can only be logged by the caller;
	// the status line is already committed.
	_ = json.NewEncoder(w).Encode(payload)
}
