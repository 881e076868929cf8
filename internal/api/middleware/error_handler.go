package middleware

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"audio-api/internal/api/errors"
)

const internalErrorMessage = "internal server error"

// ErrorHandler recovers from panics and answers with a JSON error body.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *errors.APIError

		switch err := recovered.(type) {
		case *errors.APIError:
			apiErr = err
			apiErr.RequestID = requestID
		case error:
			logger.Error("Internal server error",
				zap.Error(err),
				zap.String("request_id", requestID),
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   internalErrorMessage,
				RequestID: requestID,
			}
		default:
			logger.Error("Unknown panic occurred",
				zap.Any("recovered", recovered),
				zap.String("request_id", requestID),
			)
			apiErr = &errors.APIError{
				Kind:      errors.KindInternal,
				Message:   internalErrorMessage,
				RequestID: requestID,
			}
		}

		c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
	})
}

// HandleError writes err as a JSON error body with its own status.
func HandleError(c *gin.Context, err error) {
	HandleErrorWithStatus(c, err, 0)
}

// HandleErrorWithStatus writes err as a JSON error body. A non-zero status
// overrides the status derived from the error kind.
func HandleErrorWithStatus(c *gin.Context, err error, status int) {
	if err == nil {
		return
	}

	apiErr := errors.AsAPIError(err)
	apiErr.RequestID = c.GetString(RequestIDKey)
	_ = c.Error(err)

	if status == 0 {
		status = apiErr.HTTPStatus()
	}
	c.AbortWithStatusJSON(status, apiErr)
}
