package transport

import (
	"net/http"

	"github.com/aliffy-benevides/restaurants-manager-api/internal/apierror"
	"github.com/aliffy-benevides/restaurants-manager-api/internal/middleware"

	"go.uber.org/zap"
)

// respondError classifies err (typed API errors pass through, anything else
// becomes a 500 with defaultMessage) and renders the error envelope.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error, defaultMessage string) {
	apiErr := apierror.Parse(err, defaultMessage)

	if apiErr.Status >= http.StatusInternalServerError {
		logger.Error(apiErr.Message, zap.Error(err))
	} else {
		logger.Debug(apiErr.Message,
			zap.Int("status", apiErr.Status),
			zap.String("detail", apiErr.Detail),
		)
	}

	middleware.RespondWithAPIError(w, apiErr)
}
