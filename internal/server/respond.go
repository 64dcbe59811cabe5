package server

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/viewmorph/viewmorph/pkg/errors"
	"github.com/viewmorph/viewmorph/pkg/store"
	"github.com/viewmorph/viewmorph/pkg/transition"
)

// errorBody is the wire form of every error response.
type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    apperrors.Code `json:"code"`
	Message string         `json:"message"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError maps an error to a structured JSON response. Unclassified
// errors become INTERNAL_ERROR and are logged; classified ones carry
// their own message to the client.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := classify(err)
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorBody{Error: errorDetail{
		Code:    code,
		Message: apperrors.UserMessage(err),
	}})
}

// storeError wraps a store failure, keeping not-found distinct from
// backend trouble so an unreachable backend does not report as 404.
func storeError(err error, notFound apperrors.Code, format string, args ...any) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperrors.Wrap(notFound, err, format, args...)
	}
	return apperrors.Wrap(apperrors.ErrCodeStore, err, format, args...)
}

// classify resolves the error code for an arbitrary error, translating
// engine and store sentinels that reach the handler unwrapped.
func classify(err error) apperrors.Code {
	if code := apperrors.GetCode(err); code != "" {
		return code
	}

	var preparing *apperrors.PreparingError
	if errors.As(err, &preparing) {
		return preparing.Code()
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return apperrors.ErrCodeNotFound
	case errors.Is(err, transition.ErrNotReady):
		return apperrors.ErrCodeNotReady
	case errors.Is(err, transition.ErrPreparation):
		return apperrors.ErrCodePreparationFailed
	case errors.Is(err, transition.ErrIncompatibleViews):
		return apperrors.ErrCodeIncompatibleViews
	case errors.Is(err, transition.ErrInvalidParam):
		return apperrors.ErrCodeInvalidParams
	case errors.Is(err, transition.ErrTooFewViews), errors.Is(err, transition.ErrNoData):
		return apperrors.ErrCodeInvalidInput
	default:
		return apperrors.ErrCodeInternal
	}
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidStrategy,
		apperrors.ErrCodeInvalidParams, apperrors.ErrCodeInvalidDataset,
		apperrors.ErrCodeInvalidDimension, apperrors.ErrCodeInvalidView,
		apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeDatasetNotFound,
		apperrors.ErrCodeAnimationNotFound, apperrors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeNotReady:
		return http.StatusConflict
	case apperrors.ErrCodeIncompatibleViews, apperrors.ErrCodePreparationFailed:
		return http.StatusUnprocessableEntity
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
