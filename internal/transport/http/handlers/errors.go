package handlers

import (
	"errors"
	"net/http"

	"github.com/renwic/trusthub/internal/domain/apperr"
	authsvc "github.com/renwic/trusthub/internal/services/auth"
	ratesvc "github.com/renwic/trusthub/internal/services/rate"
	httperrors "github.com/renwic/trusthub/internal/transport/http/errors"
)

// writeServiceError maps the domain error taxonomy onto HTTP statuses.
// fallback is the message used for unclassified failures.
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	if tf, ok := ratesvc.IsTooFast(err); ok {
		httperrors.WriteTooFast(w, tf.RetryAfter())
		return
	}

	switch {
	case apperr.IsValidation(err):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case apperr.IsNotFound(err):
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: "NOT_FOUND", Message: "resource not found"})
	case apperr.IsConflict(err):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{Code: "CONFLICT", Message: "resource already exists"})
	case apperr.IsDependency(err):
		httperrors.Write(w, http.StatusServiceUnavailable, httperrors.APIError{
			Code:    "DEPENDENCY_UNAVAILABLE",
			Message: "a backing service is unavailable, please retry",
		})
	case errors.Is(err, authsvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "authentication failed")
	default:
		writeInternal(w, "INTERNAL_ERROR", fallback)
	}
}
