package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// AppError carries the HTTP status a service failure should surface as.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func BadRequest(message string) *AppError   { return NewAppError(http.StatusBadRequest, message, nil) }
func Unauthorized(message string) *AppError { return NewAppError(http.StatusUnauthorized, message, nil) }
func Forbidden(message string) *AppError    { return NewAppError(http.StatusForbidden, message, nil) }
func NotFound(message string) *AppError     { return NewAppError(http.StatusNotFound, message, nil) }
func Conflict(message string) *AppError     { return NewAppError(http.StatusConflict, message, nil) }

// StatusOf maps an error to its HTTP status; unknown errors are 500.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}
	return http.StatusInternalServerError
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.Request.URL.Path))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError writes err using its AppError status and message. Internal
// errors are logged in full and answered with fallback.
func RespondError(c *gin.Context, err error, fallback string) {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Status < http.StatusInternalServerError {
		c.JSON(appErr.Status, ErrorResponse{Message: appErr.Message})
		return
	}
	GetLogger().Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: fallback, Details: err.Error()})
}
