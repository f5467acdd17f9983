package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	cverrors "github.com/matzehuels/causeview/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Code    cverrors.Code `json:"code"`
	Message string        `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// writeError maps coded errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	code := cverrors.GetCode(err)
	status := http.StatusInternalServerError
	switch {
	case code == cverrors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if code == "" {
		code = cverrors.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: cverrors.UserMessage(err)}})
}
