package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"

	"go.uber.org/zap"
)

// RespondWithJSON sends a JSON response
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// RespondWithAPIError renders the API error envelope {status, message,
// error?, detail?} with the error's own status code.
func RespondWithAPIError(w http.ResponseWriter, apiErr *apierror.Error) {
	RespondWithJSON(w, apiErr.Status, apiErr)
}

// RespondWithError sends an error envelope built from a status and message.
func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithAPIError(w, &apierror.Error{
		Kind:    apierror.KindUnexpected,
		Status:  statusCode,
		Message: message,
	})
}

// ErrorHandlingMiddleware catches panics and converts them to 500 errors
func ErrorHandlingMiddleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("Panic recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
					)

					RespondWithError(w, http.StatusInternalServerError, "Unexpected error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
