package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentacar-backend/internal/domain"
	"rentacar-backend/internal/logger"
	"rentacar-backend/internal/service"
	"rentacar-backend/internal/validation"
)

const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeValidation    = "VALIDATION_ERROR"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotFound      = "NOT_FOUND"
	CodeConflict      = "CONFLICT"
	CodeUnprocessable = "UNPROCESSABLE"
	CodeInternal      = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

type ErrorBody struct {
	Code    string                       `json:"code"`
	Message string                       `json:"message"`
	Details []validation.ValidationError `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeErrorCode(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// writeError maps domain and service errors to a status code.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validation.ValidationErrors
	if errors.As(err, &verrs) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
			Code: CodeValidation, Message: "request validation failed", Details: verrs,
		}})
		return
	}

	status, code := classify(err)
	if status == http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "Request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeErrorCode(w, status, code, "an internal error occurred")
		return
	}
	writeErrorCode(w, status, code, err.Error())
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrInvalidOdometer),
		errors.Is(err, domain.ErrUnknownCategory),
		errors.Is(err, domain.ErrPeriodRequired),
		errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, CodeBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrAlreadyExists),
		errors.Is(err, domain.ErrVehicleUnavailable),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrReservationNotValid),
		errors.Is(err, domain.ErrRentalNotActive):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrRentalNotFinished):
		return http.StatusUnprocessableEntity, CodeUnprocessable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// nonNil keeps empty lists encoded as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// decodeAndValidate reads a JSON body into dst and runs the struct validations.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return &badRequestError{msg: "invalid JSON body: " + err.Error()}
	}
	return validation.Validate(dst)
}

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func (e *badRequestError) Unwrap() error { return service.ErrInvalidArgument }
