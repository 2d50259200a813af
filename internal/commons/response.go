package commons

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	apperrors "restaurante/internal/errors"
)

type traceIDKey struct{}

func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}

type ErrorResponse struct {
	TraceID string                       `json:"traceId,omitempty"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, data interface{}, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// DecodeJSON decodes the request body into dst. An empty body leaves dst
// untouched so required-field validation can report what is missing.
func DecodeJSON(r *http.Request, dst interface{}) error {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
		Field:   "body",
		Message: "request body must be valid JSON",
	})
}

// WriteError maps an application error to its HTTP status and writes the
// error envelope. Unknown errors are logged and answered with a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	traceID := TraceID(r.Context())

	if ve, ok := apperrors.IsValidationError(err); ok {
		writeErrorResponse(w, http.StatusBadRequest, traceID, "VALIDATION_ERROR", ve.Message, ve.Details, logger)
		return
	}

	if ce, ok := apperrors.IsConflictError(err); ok {
		writeErrorResponse(w, http.StatusConflict, traceID, "CONFLICT", ce.Message, nil, logger)
		return
	}

	if ae, ok := apperrors.IsAuthenticationError(err); ok {
		writeErrorResponse(w, http.StatusUnauthorized, traceID, "UNAUTHORIZED", ae.Message, nil, logger)
		return
	}

	if nfe, ok := apperrors.IsNotFoundError(err); ok {
		writeErrorResponse(w, http.StatusNotFound, traceID, "NOT_FOUND", nfe.Message, nil, logger)
		return
	}

	if ite, ok := apperrors.IsInvalidTransitionError(err); ok {
		writeErrorResponse(w, http.StatusBadRequest, traceID, "INVALID_TRANSITION", ite.Message, nil, logger)
		return
	}

	logger.Error("unexpected error",
		zap.String("traceId", traceID),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	writeErrorResponse(w, http.StatusInternalServerError, traceID, "INTERNAL_ERROR", "an unexpected error occurred", nil, logger)
}

func writeErrorResponse(w http.ResponseWriter, status int, traceID, code, message string, details []apperrors.ValidationDetail, logger *zap.Logger) {
	WriteJSON(w, status, ErrorResponse{
		TraceID: traceID,
		Error:   code,
		Message: message,
		Details: details,
	}, logger)
}
