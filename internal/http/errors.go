package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"habitsync/internal/middleware"
	"habitsync/internal/service"
	"habitsync/internal/sync"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

// respondError maps an error to the response taxonomy: 400 for validation,
// 404 for missing rows, 409 for unique constraint conflicts, 500 otherwise.
// notFound is the message used for the 404 case.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, sync.ErrMissingOwner):
		badRequest(w, err.Error())
	case errors.Is(err, gorm.ErrRecordNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: notFound})
	case errors.Is(err, gorm.ErrDuplicatedKey):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "duplicate key"})
	default:
		h.log.WithError(err).
			WithField("request_id", middleware.GetRequestID(r.Context())).
			Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
